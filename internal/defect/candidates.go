package defect

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/Satria0ibnu/deftection-sub000/internal/taxonomy"
	"github.com/Satria0ibnu/deftection-sub000/pkg/geometry"
)

// Quality score weights: confidence and area plausibility dominate, spatial
// compactness breaks the remainder.
const (
	weightConfidence = 0.4
	weightArea       = 0.4
	weightSpatial    = 0.2
)

// generateCandidates builds the filtered list of plausible per-class defect
// candidates. Classes are visited in taxonomy order, so the output order is
// deterministic for identical inputs.
func generateCandidates(m *Mask, conf *ConfidenceMap, tax *taxonomy.Taxonomy, cfg Config) []Candidate {
	// One pass over the mask: collect full and confidence-filtered
	// coordinate sets per non-background class.
	full := make(map[uint8][]geometry.PointInt)
	confident := make(map[uint8][]geometry.PointInt)

	threshold := float32(cfg.ConfidenceThreshold)
	for y := 0; y < m.Height; y++ {
		row := y * m.Width
		for x := 0; x < m.Width; x++ {
			id := m.Classes[row+x]
			if tax.IsBackground(id) {
				continue
			}
			p := geometry.PointInt{X: x, Y: y}
			full[id] = append(full[id], p)
			if conf.Values[row+x] > threshold {
				confident[id] = append(confident[id], p)
			}
		}
	}

	total := m.Pixels()
	minPixels := cfg.minPixels(total)

	var candidates []Candidate
	for _, class := range tax.Classes() {
		if tax.IsBackground(class.ID) {
			continue
		}
		pixels := full[class.ID]
		if len(pixels) == 0 {
			continue
		}

		confPixels := confident[class.ID]
		admitted := float64(len(confPixels)) > minPixels ||
			(len(confPixels) > 0 && float64(len(pixels)) > minPixels)
		if !admitted {
			continue
		}

		detection := confPixels
		if len(detection) == 0 {
			detection = pixels
		}

		cand := Candidate{
			ClassID:             class.ID,
			ClassName:           class.Name,
			PixelCount:          len(pixels),
			ConfidentPixelCount: len(confPixels),
			AreaPercentage:      float64(len(pixels)) / float64(total) * 100,
			Pixels:              detection,
		}

		confScore, confAvg := confidenceScore(conf, detection)
		cand.ConfidenceAvg = confAvg

		xSpan, ySpan := spans(detection, m.Width, m.Height)
		cand.QualityScore = weightConfidence*confScore +
			weightArea*areaScore(cand.AreaPercentage) +
			weightSpatial*spatialScore(xSpan, ySpan)

		if !validCandidate(cand.AreaPercentage, xSpan, ySpan) {
			continue
		}
		candidates = append(candidates, cand)
	}

	return candidates
}

// confidenceScore returns the blended score (mean+max)/2 and the plain mean
// over the detection pixels' confidences. Both are 0 for an empty set.
func confidenceScore(conf *ConfidenceMap, pixels []geometry.PointInt) (score, avg float64) {
	if len(pixels) == 0 {
		return 0, 0
	}
	values := make([]float64, len(pixels))
	for i, p := range pixels {
		values[i] = float64(conf.At(p.X, p.Y))
	}
	avg = stat.Mean(values, nil)
	return (avg + floats.Max(values)) / 2, avg
}

// areaScore buckets the area percentage by plausibility: small-but-visible
// defects score highest, image-dominating blobs lowest.
func areaScore(areaPct float64) float64 {
	switch {
	case areaPct > 0.1 && areaPct < 8:
		return 1.0
	case areaPct >= 8 && areaPct < 20:
		return 0.9
	case areaPct >= 20 && areaPct < 35:
		return 0.7
	case areaPct >= 35 && areaPct < 50:
		return 0.5
	case areaPct >= 50:
		return 0.2
	default:
		return 0.4
	}
}

// spatialScore rewards spatially compact detections. Spans are the
// fractional bounding extents of the detection pixels.
func spatialScore(xSpan, ySpan float64) float64 {
	s := 1 - (xSpan+ySpan)/2
	if s < 0.1 {
		return 0.1
	}
	return s
}

// spans returns the fractional x/y bounding extents of a pixel set relative
// to the image dimensions.
func spans(pixels []geometry.PointInt, width, height int) (xSpan, ySpan float64) {
	if len(pixels) == 0 {
		return 0, 0
	}
	b := geometry.Bounds(pixels)
	return float64(b.Width-1) / float64(width), float64(b.Height-1) / float64(height)
}

// validCandidate rejects detections that cannot be a localized defect:
// near-full coverage, spans stretching over almost the whole image in both
// axes, or vanishingly small coverage.
func validCandidate(areaPct, xSpan, ySpan float64) bool {
	if areaPct > 80 {
		return false
	}
	if xSpan > 0.9 && ySpan > 0.9 {
		return false
	}
	if areaPct < 0.05 {
		return false
	}
	return true
}
