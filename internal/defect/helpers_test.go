package defect

import (
	"testing"

	"github.com/Satria0ibnu/deftection-sub000/internal/taxonomy"
)

// newGrids returns an all-background mask and a zeroed confidence map.
func newGrids(t *testing.T, width, height int) (*Mask, *ConfidenceMap) {
	t.Helper()
	mask, err := NewMask(width, height, make([]uint8, width*height))
	if err != nil {
		t.Fatalf("NewMask: %v", err)
	}
	conf, err := NewConfidenceMap(width, height, make([]float32, width*height))
	if err != nil {
		t.Fatalf("NewConfidenceMap: %v", err)
	}
	return mask, conf
}

// paintRect stamps a class id and confidence over a rectangle.
func paintRect(m *Mask, c *ConfidenceMap, id uint8, conf float32, x0, y0, w, h int) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			m.Classes[y*m.Width+x] = id
			c.Values[y*m.Width+x] = conf
		}
	}
}

// paintPixel stamps a single pixel.
func paintPixel(m *Mask, c *ConfidenceMap, id uint8, conf float32, x, y int) {
	m.Classes[y*m.Width+x] = id
	c.Values[y*m.Width+x] = conf
}

func testEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(taxonomy.Default(), cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}
