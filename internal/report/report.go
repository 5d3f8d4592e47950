// Package report flattens a selection verdict into the serializable
// analysis report consumed by downstream tooling, plus a human-readable
// summary for the CLI.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Satria0ibnu/deftection-sub000/internal/defect"
)

// DefectStatistics aggregates the verdict's confidence and coverage.
type DefectStatistics struct {
	DefectType     string  `json:"defect_type"`
	Confidence     float64 `json:"confidence"`
	PixelCount     int     `json:"pixel_count"`
	AreaPercentage float64 `json:"area_percentage"`
	Severity       string  `json:"severity"`
}

// SpatialAnalysis describes where and how the defect sits in the image.
type SpatialAnalysis struct {
	Quadrant      string               `json:"quadrant"`
	CenterX       float64              `json:"center_x"`
	CenterY       float64              `json:"center_y"`
	ShapeType     string               `json:"shape_type"`
	AspectRatio   float64              `json:"aspect_ratio"`
	Compactness   float64              `json:"compactness"`
	EdgeProximity defect.EdgeProximity `json:"edge_proximity"`
}

// Report is the full analysis output for one inspected image.
type Report struct {
	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`

	// DetectedDefects holds zero or one entries. The engine never reports
	// more than one defect type per image.
	DetectedDefects []string `json:"detected_defects"`

	ClassDistribution map[string]defect.ClassStat `json:"class_distribution"`
	BoundingBoxes     map[string][]defect.Region  `json:"bounding_boxes"`

	DefectStatistics *DefectStatistics `json:"defect_statistics,omitempty"`
	SpatialAnalysis  *SpatialAnalysis  `json:"spatial_analysis,omitempty"`

	Provenance defect.Provenance `json:"provenance"`
}

// Build assembles the report for a verdict.
func Build(res *defect.SelectionResult) *Report {
	rep := &Report{
		ImageWidth:        res.ImageWidth,
		ImageHeight:       res.ImageHeight,
		DetectedDefects:   []string{},
		ClassDistribution: res.ClassDistribution,
		BoundingBoxes:     map[string][]defect.Region{},
		Provenance:        res.Provenance,
	}
	if !res.HasDefect() {
		return rep
	}

	rep.DetectedDefects = []string{res.DetectedDefect}
	r := res.Region
	rep.BoundingBoxes[res.DetectedDefect] = []defect.Region{*r}
	rep.DefectStatistics = &DefectStatistics{
		DefectType:     res.DetectedDefect,
		Confidence:     res.Confidence,
		PixelCount:     r.Area,
		AreaPercentage: r.AreaPercentage,
		Severity:       string(r.Severity),
	}
	rep.SpatialAnalysis = &SpatialAnalysis{
		Quadrant:      r.Quadrant,
		CenterX:       r.CenterX,
		CenterY:       r.CenterY,
		ShapeType:     r.ShapeType,
		AspectRatio:   r.AspectRatio,
		Compactness:   r.Compactness,
		EdgeProximity: r.EdgeProximity,
	}
	return rep
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Summary renders a short human-readable account of the report.
func (r *Report) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Image: %dx%d\n", r.ImageWidth, r.ImageHeight)
	if len(r.DetectedDefects) == 0 {
		fmt.Fprintf(&b, "Verdict: no defect (%s)\n", r.Provenance.SelectionReason)
	} else {
		stats := r.DefectStatistics
		fmt.Fprintf(&b, "Verdict: %s (%s, confidence %.2f)\n",
			stats.DefectType, r.Provenance.SelectionReason, stats.Confidence)
		fmt.Fprintf(&b, "Severity: %s, %d px (%.2f%% of image)\n",
			stats.Severity, stats.PixelCount, stats.AreaPercentage)

		box := r.BoundingBoxes[stats.DefectType][0]
		fmt.Fprintf(&b, "Region: x=%d y=%d w=%d h=%d, center (%.1f, %.1f)\n",
			box.X, box.Y, box.Width, box.Height, box.CenterX, box.CenterY)
		fmt.Fprintf(&b, "Shape: %s, location %s\n",
			r.SpatialAnalysis.ShapeType, r.SpatialAnalysis.Quadrant)
	}
	if r.Provenance.Corrected {
		fmt.Fprintf(&b, "Corrected: yes (was %q)\n", r.Provenance.OriginalDefect)
	}
	for _, w := range r.Provenance.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", w)
	}

	names := make([]string, 0, len(r.ClassDistribution))
	for name := range r.ClassDistribution {
		names = append(names, name)
	}
	sort.Strings(names)
	b.WriteString("Class distribution:\n")
	for _, name := range names {
		stat := r.ClassDistribution[name]
		fmt.Fprintf(&b, "  %-20s %8d px %6.2f%%\n", name, stat.PixelCount, stat.Percentage)
	}
	return b.String()
}
