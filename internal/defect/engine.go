package defect

import (
	"fmt"
	"log/slog"

	"github.com/Satria0ibnu/deftection-sub000/internal/logging"
	"github.com/Satria0ibnu/deftection-sub000/internal/taxonomy"
)

// Engine runs the full candidate selection and localization pipeline. An
// Engine is immutable after construction and safe for concurrent use; each
// Analyze call is a pure function of its inputs.
type Engine struct {
	tax *taxonomy.Taxonomy
	cfg Config
	log *slog.Logger
}

// NewEngine builds an engine over a validated taxonomy and threshold set.
func NewEngine(tax *taxonomy.Taxonomy, cfg Config) (*Engine, error) {
	if tax == nil {
		return nil, fmt.Errorf("%w: nil taxonomy", ErrInvalidInput)
	}
	if _, ok := tax.Name(taxonomy.BackgroundID); !ok {
		return nil, fmt.Errorf("%w: taxonomy has no background class", ErrInvalidInput)
	}
	return &Engine{
		tax: tax,
		cfg: cfg,
		log: logging.Component("defect-engine"),
	}, nil
}

// Taxonomy returns the engine's class taxonomy.
func (e *Engine) Taxonomy() *taxonomy.Taxonomy {
	return e.tax
}

// Analyze turns a mask and its confidence map into a selection verdict.
// A defect-free outcome is a valid result, not an error; only structural
// input violations are returned as errors.
func (e *Engine) Analyze(mask *Mask, conf *ConfidenceMap) (*SelectionResult, error) {
	if mask == nil || conf == nil {
		return nil, fmt.Errorf("%w: nil mask or confidence map", ErrInvalidInput)
	}
	if mask.Width != conf.Width || mask.Height != conf.Height {
		return nil, fmt.Errorf("%w: mask %dx%d vs confidence %dx%d",
			ErrInvalidInput, mask.Width, mask.Height, conf.Width, conf.Height)
	}

	result := &SelectionResult{
		ImageWidth:        mask.Width,
		ImageHeight:       mask.Height,
		ClassDistribution: classDistribution(mask, e.tax),
	}

	candidates := generateCandidates(mask, conf, e.tax, e.cfg)
	result.candidates = candidates

	winner, reason := selectCandidate(candidates)
	result.Provenance.SelectionReason = reason
	if winner == nil {
		return result, nil
	}

	region := extractRegion(winner, mask.Width, mask.Height, e.cfg)
	if region == nil {
		// The selected candidate has no usable geometry; resolve to a
		// defect-free verdict rather than failing.
		e.log.Debug("region extraction failed, discarding winner",
			"class", winner.ClassName, "pixels", winner.PixelCount)
		result.Provenance.SelectionReason = ReasonExtractionFailed
		return result, nil
	}

	result.DetectedDefect = winner.ClassName
	result.Confidence = winner.ConfidenceAvg
	result.Region = region

	e.log.Debug("defect selected",
		"class", winner.ClassName,
		"reason", reason,
		"area_pct", winner.AreaPercentage,
		"quality", winner.QualityScore)

	return result, nil
}
