package defect

import "fmt"

// Reclassification bonus for candidates in the plausible mid-range area
// band.
const (
	reclassAreaBonus    = 0.3
	reclassAreaBandLow  = 1.0
	reclassAreaBandHigh = 25.0
)

// BBoxOverride replaces the reported bounding box of a verdict.
type BBoxOverride struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CorrectionDirective is a structured post-hoc instruction from an external
// reviewer: relabel the defect, replace its geometry, or both.
type CorrectionDirective struct {
	// ReclassifyTo names the taxonomy class to relabel the verdict to.
	// Empty means the directive only carries a geometry override.
	ReclassifyTo string `json:"reclassify_to,omitempty"`

	Reason string `json:"reason,omitempty"`

	BBox *BBoxOverride `json:"bbox,omitempty"`
}

// ApplyCorrections rewrites a verdict according to an ordered directive
// list, last write winning per field. The input result is not mutated.
// Unknown target classes drop their directive with a recorded warning.
func (e *Engine) ApplyCorrections(res *SelectionResult, directives []CorrectionDirective) *SelectionResult {
	out := cloneResult(res)
	if len(directives) == 0 {
		return out
	}

	applied := false
	for _, d := range directives {
		if d.ReclassifyTo != "" {
			if !e.applyReclassify(out, d) {
				continue
			}
			applied = true
			continue
		}
		if d.BBox != nil {
			if out.Region == nil {
				warn(out, "bbox override ignored: no region to replace")
				continue
			}
			applyBBox(out, *d.BBox)
			applied = true
		}
	}

	if applied {
		out.Provenance.Corrected = true
		if out.Provenance.OriginalDefect == "" {
			out.Provenance.OriginalDefect = res.DetectedDefect
			out.Provenance.OriginalRegion = res.Region
		}
	}
	return out
}

// applyReclassify relabels the verdict to the directive's target class,
// rebuilding the region from the best-scoring original candidate. Returns
// false when the directive cannot apply.
func (e *Engine) applyReclassify(out *SelectionResult, d CorrectionDirective) bool {
	if !e.tax.Has(d.ReclassifyTo) {
		warn(out, fmt.Sprintf("unknown correction type %q, directive dropped", d.ReclassifyTo))
		e.log.Warn("unknown correction type", "type", d.ReclassifyTo)
		return false
	}
	if len(out.candidates) == 0 {
		warn(out, fmt.Sprintf("reclassify to %q ignored: no candidates recorded", d.ReclassifyTo))
		return false
	}

	src := bestReclassSource(out.candidates)
	region := extractRegion(src, out.ImageWidth, out.ImageHeight, e.cfg)
	if region == nil {
		warn(out, fmt.Sprintf("reclassify to %q ignored: source candidate %q has no usable region",
			d.ReclassifyTo, src.ClassName))
		return false
	}

	out.DetectedDefect = d.ReclassifyTo
	out.Confidence = src.ConfidenceAvg
	out.Region = region

	// A geometry override in the same directive takes precedence over the
	// source candidate's own geometry.
	if d.BBox != nil {
		applyBBox(out, *d.BBox)
	}
	return true
}

// bestReclassSource picks the candidate whose geometry backs a
// reclassification: highest average confidence, with a bonus for areas in
// the plausible mid-range band.
func bestReclassSource(candidates []Candidate) *Candidate {
	best := 0
	bestScore := reclassScore(&candidates[0])
	for i := 1; i < len(candidates); i++ {
		if s := reclassScore(&candidates[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	return &candidates[best]
}

func reclassScore(c *Candidate) float64 {
	s := c.ConfidenceAvg
	if c.AreaPercentage > reclassAreaBandLow && c.AreaPercentage < reclassAreaBandHigh {
		s += reclassAreaBonus
	}
	return s
}

// applyBBox overwrites the region geometry and recomputes the derived
// fields. Area becomes the box area: an external box has no pixel set.
func applyBBox(out *SelectionResult, b BBoxOverride) {
	r := *out.Region
	r.X = b.X
	r.Y = b.Y
	r.Width = b.Width
	r.Height = b.Height
	r.CenterX = float64(b.X) + float64(b.Width)/2
	r.CenterY = float64(b.Y) + float64(b.Height)/2
	r.Area = b.Width * b.Height
	total := float64(out.ImageWidth * out.ImageHeight)
	r.AreaPercentage = float64(r.Area) / total * 100
	out.Region = &r
}

// cloneResult copies a result deeply enough that corrections never mutate
// the caller's verdict.
func cloneResult(res *SelectionResult) *SelectionResult {
	out := *res
	if res.Region != nil {
		region := *res.Region
		out.Region = &region
	}
	if res.Provenance.Warnings != nil {
		out.Provenance.Warnings = append([]string(nil), res.Provenance.Warnings...)
	}
	return &out
}

func warn(res *SelectionResult, msg string) {
	res.Provenance.Warnings = append(res.Provenance.Warnings, msg)
}
