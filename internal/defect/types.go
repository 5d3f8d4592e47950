// Package defect implements the defect-candidate selection and localization
// engine: it reduces a per-pixel class mask and confidence map to at most
// one well-justified defect verdict with a bounding region and spatial
// metadata.
package defect

import (
	"errors"

	"github.com/Satria0ibnu/deftection-sub000/pkg/geometry"
)

// ErrInvalidInput marks structural input violations (dimension mismatch,
// malformed taxonomy). Callers must not proceed after receiving it.
var ErrInvalidInput = errors.New("defect: invalid input")

// Selection reasons recorded in Provenance.
const (
	ReasonClearAreaDominance  = "clear_area_dominance"
	ReasonConfidenceTiebreak  = "confidence_tiebreak"
	ReasonAreaReasonableness  = "area_reasonableness_tiebreak"
	ReasonQualityScore        = "quality_score_tiebreak"
	ReasonStableOrderFallback = "stable_order_fallback"
	ReasonNoCandidates        = "no_candidates"
	ReasonExtractionFailed    = "region_extraction_failed"
)

// Severity grades a defect by its share of the image.
type Severity string

const (
	SeverityMinor       Severity = "minor"
	SeverityModerate    Severity = "moderate"
	SeveritySignificant Severity = "significant"
	SeverityCritical    Severity = "critical"
)

// Shape type labels assigned by the region extractor.
const (
	ShapeLinear    = "Linear/Elongated"
	ShapeStreak    = "Rectangular/Streak"
	ShapeCompact   = "Compact/Circular"
	ShapeIrregular = "Irregular/Distributed"
	ShapeModerate  = "Moderate/Oval"
)

// ClassStat holds per-class pixel statistics over the mask.
type ClassStat struct {
	PixelCount int     `json:"pixel_count"`
	Percentage float64 `json:"percentage"`
}

// Candidate is a per-class provisional detection. Candidates live only for
// the duration of one engine invocation.
type Candidate struct {
	ClassID             uint8
	ClassName           string
	PixelCount          int
	ConfidentPixelCount int
	AreaPercentage      float64
	QualityScore        float64
	ConfidenceAvg       float64

	// Pixels is the coordinate set used for region extraction: the
	// confidence-filtered subset when non-empty, otherwise the full class
	// subset.
	Pixels []geometry.PointInt
}

// EdgeProximity flags borders the region center sits close to (within 10%
// of the image extent) and records center-to-edge distances in percent.
type EdgeProximity struct {
	NearLeft   bool `json:"near_left"`
	NearRight  bool `json:"near_right"`
	NearTop    bool `json:"near_top"`
	NearBottom bool `json:"near_bottom"`

	DistanceLeftPct   float64 `json:"distance_left_pct"`
	DistanceRightPct  float64 `json:"distance_right_pct"`
	DistanceTopPct    float64 `json:"distance_top_pct"`
	DistanceBottomPct float64 `json:"distance_bottom_pct"`
}

// Region is the robust bounding region of a selected defect plus its shape,
// severity, and spatial descriptors.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`

	// Area is the defect's pixel count, not the bounding-box area. The
	// percentile-clipped box can be smaller than the pixel set it covers.
	Area           int     `json:"area"`
	AreaPercentage float64 `json:"area_percentage"`

	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`

	AspectRatio float64 `json:"aspect_ratio"`
	Compactness float64 `json:"compactness"`

	ShapeType string   `json:"shape_type"`
	Severity  Severity `json:"severity"`

	Quadrant      string        `json:"quadrant"`
	EdgeProximity EdgeProximity `json:"edge_proximity"`
}

// Rect returns the bounding box as a geometry rectangle.
func (r *Region) Rect() geometry.RectInt {
	return geometry.RectInt{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Provenance records how the verdict was reached.
type Provenance struct {
	SelectionReason string   `json:"selection_reason"`
	Corrected       bool     `json:"corrected"`
	OriginalDefect  string   `json:"original_defect,omitempty"`
	OriginalRegion  *Region  `json:"original_region,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}

// SelectionResult is the engine's verdict for one mask. At most one defect
// type is ever reported per invocation; multi-label output is deliberately
// not produced.
type SelectionResult struct {
	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`

	// DetectedDefect is empty when no defect was selected.
	DetectedDefect string  `json:"detected_defect,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
	Region         *Region `json:"region,omitempty"`

	ClassDistribution map[string]ClassStat `json:"class_distribution"`
	Provenance        Provenance           `json:"provenance"`

	// candidates keeps the full valid-candidate list for the correction
	// boundary; it is not serialized.
	candidates []Candidate
}

// HasDefect reports whether a defect type was selected.
func (r *SelectionResult) HasDefect() bool {
	return r.DetectedDefect != ""
}

// Candidates returns the valid candidates of the invocation, winner
// included. The slice is shared; callers must treat it as read-only.
func (r *SelectionResult) Candidates() []Candidate {
	return r.candidates
}
