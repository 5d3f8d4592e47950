package defect

import "fmt"

// Mask is an H×W grid of class ids produced by an upstream segmentation
// model, stored row-major. It is read-only to the engine.
type Mask struct {
	Width  int
	Height int
	// Classes holds one class id per pixel, row-major.
	Classes []uint8
}

// NewMask wraps a row-major class-id buffer. The buffer length must be
// exactly width*height.
func NewMask(width, height int, classes []uint8) (*Mask, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: mask dimensions %dx%d", ErrInvalidInput, width, height)
	}
	if len(classes) != width*height {
		return nil, fmt.Errorf("%w: mask buffer has %d pixels, want %d",
			ErrInvalidInput, len(classes), width*height)
	}
	return &Mask{Width: width, Height: height, Classes: classes}, nil
}

// At returns the class id at (x, y). Bounds are not checked.
func (m *Mask) At(x, y int) uint8 {
	return m.Classes[y*m.Width+x]
}

// Pixels returns the total pixel count.
func (m *Mask) Pixels() int {
	return m.Width * m.Height
}

// ConfidenceMap is an H×W grid of per-pixel confidences in [0, 1], aligned
// with a Mask.
type ConfidenceMap struct {
	Width  int
	Height int
	// Values holds one confidence per pixel, row-major.
	Values []float32
}

// NewConfidenceMap wraps a row-major confidence buffer. The buffer length
// must be exactly width*height.
func NewConfidenceMap(width, height int, values []float32) (*ConfidenceMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: confidence dimensions %dx%d", ErrInvalidInput, width, height)
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("%w: confidence buffer has %d pixels, want %d",
			ErrInvalidInput, len(values), width*height)
	}
	return &ConfidenceMap{Width: width, Height: height, Values: values}, nil
}

// At returns the confidence at (x, y). Bounds are not checked.
func (c *ConfidenceMap) At(x, y int) float32 {
	return c.Values[y*c.Width+x]
}
