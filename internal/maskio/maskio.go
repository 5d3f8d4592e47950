// Package maskio loads segmentation masks and confidence maps from files.
//
// Masks are grayscale images whose pixel value is the class id. Confidence
// maps are either grayscale images (value/255) or raw little-endian float32
// grids (.bin, row-major, dimensions taken from the mask).
package maskio

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
	"os"
	"strings"

	"github.com/Satria0ibnu/deftection-sub000/internal/defect"
)

// LoadImage reads an arbitrary image file, for use as an annotation
// backdrop.
func LoadImage(path string) (image.Image, error) {
	img, err := decodeImageFile(path)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return img, nil
}

// LoadMask reads a class-id mask from a grayscale image file.
func LoadMask(path string) (*defect.Mask, error) {
	img, err := decodeImageFile(path)
	if err != nil {
		return nil, fmt.Errorf("load mask %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	classes := make([]uint8, w*h)

	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < h; y++ {
			copy(classes[y*w:(y+1)*w], gray.Pix[y*gray.Stride:y*gray.Stride+w])
		}
	} else {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				classes[y*w+x] = uint8(r >> 8)
			}
		}
	}

	return defect.NewMask(w, h, classes)
}

// LoadConfidence reads a confidence map matching the given mask dimensions.
func LoadConfidence(path string, width, height int) (*defect.ConfidenceMap, error) {
	if strings.HasSuffix(path, ".bin") {
		return loadRawConfidence(path, width, height)
	}

	img, err := decodeImageFile(path)
	if err != nil {
		return nil, fmt.Errorf("load confidence %s: %w", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != width || bounds.Dy() != height {
		return nil, fmt.Errorf("%w: confidence image %dx%d, mask %dx%d",
			defect.ErrInvalidInput, bounds.Dx(), bounds.Dy(), width, height)
	}

	values := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			values[y*width+x] = float32(r>>8) / 255
		}
	}
	return defect.NewConfidenceMap(width, height, values)
}

// loadRawConfidence reads a row-major little-endian float32 grid.
func loadRawConfidence(path string, width, height int) (*defect.ConfidenceMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load confidence %s: %w", path, err)
	}

	want := width * height * 4
	if len(data) != want {
		return nil, fmt.Errorf("%w: confidence file %s has %d bytes, want %d",
			defect.ErrInvalidInput, path, len(data), want)
	}

	values := make([]float32, width*height)
	for i := range values {
		bits := binary.LittleEndian.Uint32(data[i*4:])
		v := math.Float32frombits(bits)
		if v < 0 || v > 1 || v != v {
			return nil, fmt.Errorf("%w: confidence value %v at index %d outside [0,1]",
				defect.ErrInvalidInput, v, i)
		}
		values[i] = v
	}
	return defect.NewConfidenceMap(width, height, values)
}
