//go:build !gocv
// +build !gocv

package maskio

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/tiff"
)

// decodeImageFile reads an image with the pure-Go decoders (PNG, JPEG,
// TIFF). Build with the gocv tag for OpenCV-backed decoding of other
// formats.
func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
