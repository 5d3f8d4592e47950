package maskio

import (
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Satria0ibnu/deftection-sub000/internal/defect"
)

func writeGrayPNG(t *testing.T, path string, w, h int, fill func(x, y int) uint8) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: fill(x, y)})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadMask_GrayPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mask.png")
	writeGrayPNG(t, path, 8, 6, func(x, y int) uint8 {
		if x >= 2 && x < 5 && y >= 1 && y < 4 {
			return 4
		}
		return 0
	})

	mask, err := LoadMask(path)
	require.NoError(t, err)
	require.Equal(t, 8, mask.Width)
	require.Equal(t, 6, mask.Height)
	require.Equal(t, uint8(4), mask.At(3, 2))
	require.Equal(t, uint8(0), mask.At(0, 0))

	count := 0
	for _, id := range mask.Classes {
		if id == 4 {
			count++
		}
	}
	require.Equal(t, 9, count)
}

func TestLoadMask_MissingFile(t *testing.T) {
	_, err := LoadMask(filepath.Join(t.TempDir(), "absent.png"))
	require.Error(t, err)
}

func TestLoadConfidence_GrayPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.png")
	writeGrayPNG(t, path, 4, 4, func(x, y int) uint8 { return 255 })

	conf, err := LoadConfidence(path, 4, 4)
	require.NoError(t, err)
	require.InDelta(t, 1.0, float64(conf.At(2, 2)), 1e-6)
}

func TestLoadConfidence_DimensionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.png")
	writeGrayPNG(t, path, 4, 4, func(x, y int) uint8 { return 128 })

	_, err := LoadConfidence(path, 5, 5)
	require.ErrorIs(t, err, defect.ErrInvalidInput)
}

func TestLoadConfidence_RawFloat32(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.bin")
	values := []float32{0, 0.25, 0.5, 1}
	data := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	require.NoError(t, os.WriteFile(path, data, 0644))

	conf, err := LoadConfidence(path, 2, 2)
	require.NoError(t, err)
	require.InDelta(t, 0.25, float64(conf.At(1, 0)), 1e-6)
	require.InDelta(t, 1.0, float64(conf.At(1, 1)), 1e-6)
}

func TestLoadConfidence_RawRejectsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.bin")
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, math.Float32bits(1.5))
	require.NoError(t, os.WriteFile(path, data, 0644))

	_, err := LoadConfidence(path, 1, 1)
	require.ErrorIs(t, err, defect.ErrInvalidInput)
}

func TestLoadConfidence_RawSizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 10), 0644))

	_, err := LoadConfidence(path, 2, 2)
	require.ErrorIs(t, err, defect.ErrInvalidInput)
}
