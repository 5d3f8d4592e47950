package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPercentile_Interpolation(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	require.InDelta(t, 0.45, Percentile(values, 5), 1e-9)
	require.InDelta(t, 8.55, Percentile(values, 95), 1e-9)
	require.InDelta(t, 4.5, Percentile(values, 50), 1e-9)
}

func TestPercentile_Edges(t *testing.T) {
	require.Equal(t, 0.0, Percentile(nil, 50))
	require.Equal(t, 7.0, Percentile([]float64{7}, 95))

	values := []float64{3, 1, 2}
	require.Equal(t, 1.0, Percentile(values, 0))
	require.Equal(t, 3.0, Percentile(values, 100))
	// Input must not be mutated by the sort.
	require.Equal(t, []float64{3, 1, 2}, values)
}

func TestBounds_Inclusive(t *testing.T) {
	pts := []PointInt{{X: 5, Y: 7}, {X: 9, Y: 7}, {X: 5, Y: 12}}
	r := Bounds(pts)
	require.Equal(t, RectInt{X: 5, Y: 7, Width: 5, Height: 6}, r)

	single := Bounds([]PointInt{{X: 3, Y: 3}})
	require.Equal(t, RectInt{X: 3, Y: 3, Width: 1, Height: 1}, single)
}

func TestCentroid(t *testing.T) {
	pts := []PointInt{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}}
	c := Centroid(pts)
	require.Equal(t, Point2D{X: 1, Y: 1}, c)
	require.Equal(t, Point2D{}, Centroid(nil))
}

func TestRectInt_ContainsAndCenter(t *testing.T) {
	r := RectInt{X: 10, Y: 10, Width: 4, Height: 2}
	require.True(t, r.Contains(PointInt{X: 10, Y: 10}))
	require.True(t, r.Contains(PointInt{X: 13, Y: 11}))
	require.False(t, r.Contains(PointInt{X: 14, Y: 10}))
	require.Equal(t, Point2D{X: 12, Y: 11}, r.Center())
	require.Equal(t, 8, r.Area())
}

func TestClamp(t *testing.T) {
	require.Equal(t, 5, ClampInt(7, 0, 5))
	require.Equal(t, 0, ClampInt(-2, 0, 5))
	require.Equal(t, 3, ClampInt(3, 0, 5))
	require.Equal(t, 1.5, ClampFloat(2.0, 0, 1.5))
	require.Equal(t, 0.5, ClampFloat(0.5, 0, 1.5))
}
