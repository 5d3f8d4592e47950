//go:build gocv
// +build gocv

package maskio

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

// decodeImageFile reads an image through OpenCV, which handles any format
// the installed OpenCV build supports.
func decodeImageFile(path string) (image.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer mat.Close()

	if mat.Empty() {
		return nil, errors.New("failed to decode image")
	}
	return mat.ToImage()
}
