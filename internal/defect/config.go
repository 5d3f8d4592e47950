package defect

// Config holds the tunable thresholds of the engine. A Config value is
// immutable once handed to an Engine and safe to share across invocations.
type Config struct {
	// ConfidenceThreshold is the minimum per-pixel confidence for a pixel
	// to count as confident.
	ConfidenceThreshold float64

	// MinDefectPixels is the absolute pixel floor for candidate admission.
	MinDefectPixels int

	// MinDefectPercentage is the relative pixel floor, as a fraction of
	// the image (0.001 = 0.1%).
	MinDefectPercentage float64

	// MinBBoxArea is the minimum defect pixel count for region extraction.
	MinBBoxArea int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 0.15,
		MinDefectPixels:     50,
		MinDefectPercentage: 0.001,
		MinBBoxArea:         100,
	}
}

// minPixels returns the admission floor for a given image size: the larger
// of the absolute and relative thresholds.
func (c Config) minPixels(totalPixels int) float64 {
	rel := float64(totalPixels) * c.MinDefectPercentage
	abs := float64(c.MinDefectPixels)
	if rel > abs {
		return rel
	}
	return abs
}
