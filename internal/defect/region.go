package defect

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/Satria0ibnu/deftection-sub000/pkg/geometry"
)

// Percentiles used for outlier-robust bounding boxes. A naive min/max box
// would stretch to every stray noise pixel.
const (
	bboxLowPercentile  = 5
	bboxHighPercentile = 95
)

// Fraction of the image extent within which a region center counts as near
// an edge.
const edgeProximityFraction = 0.1

// extractRegion computes the robust bounding region and spatial descriptors
// for a winning candidate. It returns nil when the candidate has no
// detection pixels or its area is below the minimum; the caller resolves
// that into a no-detection verdict.
func extractRegion(c *Candidate, imgWidth, imgHeight int, cfg Config) *Region {
	if len(c.Pixels) == 0 {
		return nil
	}

	// Area is the defect's pixel count; check it before doing any
	// geometry.
	area := c.PixelCount
	if area < cfg.MinBBoxArea {
		return nil
	}

	xs := make([]float64, len(c.Pixels))
	ys := make([]float64, len(c.Pixels))
	for i, p := range c.Pixels {
		xs[i] = float64(p.X)
		ys[i] = float64(p.Y)
	}

	x1 := geometry.ClampInt(int(math.Floor(geometry.Percentile(xs, bboxLowPercentile))), 0, imgWidth-1)
	x2 := geometry.ClampInt(int(math.Floor(geometry.Percentile(xs, bboxHighPercentile))), 0, imgWidth-1)
	y1 := geometry.ClampInt(int(math.Floor(geometry.Percentile(ys, bboxLowPercentile))), 0, imgHeight-1)
	y2 := geometry.ClampInt(int(math.Floor(geometry.Percentile(ys, bboxHighPercentile))), 0, imgHeight-1)

	width := x2 - x1 + 1
	height := y2 - y1 + 1

	r := &Region{
		X:              x1,
		Y:              y1,
		Width:          width,
		Height:         height,
		Area:           area,
		AreaPercentage: c.AreaPercentage,
		CenterX:        geometry.ClampFloat(stat.Mean(xs, nil), float64(x1), float64(x2)),
		CenterY:        geometry.ClampFloat(stat.Mean(ys, nil), float64(y1), float64(y2)),
		AspectRatio:    float64(width) / float64(height),
		Compactness:    float64(area) / float64(width*height),
	}

	r.ShapeType = shapeType(r.AspectRatio, r.Compactness)
	r.Severity = severityFor(r.AreaPercentage)
	r.Quadrant = quadrantFor(r.CenterX, r.CenterY, imgWidth, imgHeight)
	r.EdgeProximity = edgeProximityFor(r.CenterX, r.CenterY, imgWidth, imgHeight)

	return r
}

// shapeType labels the region shape from its aspect ratio and compactness.
func shapeType(aspectRatio, compactness float64) string {
	switch {
	case aspectRatio > 3:
		return ShapeLinear
	case aspectRatio > 1.8:
		return ShapeStreak
	case compactness > 0.7:
		return ShapeCompact
	case compactness < 0.3:
		return ShapeIrregular
	default:
		return ShapeModerate
	}
}

// severityFor grades a defect by its share of the image.
func severityFor(areaPct float64) Severity {
	switch {
	case areaPct < 0.5:
		return SeverityMinor
	case areaPct < 2.0:
		return SeverityModerate
	case areaPct < 6.0:
		return SeveritySignificant
	default:
		return SeverityCritical
	}
}

// quadrantFor places the region center relative to the image midpoint.
func quadrantFor(cx, cy float64, imgWidth, imgHeight int) string {
	vertical := "Top"
	if cy >= float64(imgHeight)/2 {
		vertical = "Bottom"
	}
	horizontal := "Left"
	if cx >= float64(imgWidth)/2 {
		horizontal = "Right"
	}
	return vertical + "-" + horizontal
}

// edgeProximityFor flags borders within 10% of the image extent from the
// center and records center-to-edge distances in percent.
func edgeProximityFor(cx, cy float64, imgWidth, imgHeight int) EdgeProximity {
	w := float64(imgWidth)
	h := float64(imgHeight)

	return EdgeProximity{
		NearLeft:   cx < w*edgeProximityFraction,
		NearRight:  cx > w*(1-edgeProximityFraction),
		NearTop:    cy < h*edgeProximityFraction,
		NearBottom: cy > h*(1-edgeProximityFraction),

		DistanceLeftPct:   cx / w * 100,
		DistanceRightPct:  (w - cx) / w * 100,
		DistanceTopPct:    cy / h * 100,
		DistanceBottomPct: (h - cy) / h * 100,
	}
}
