// Package store persists scan verdicts. The SQLite implementation is the
// production store; MemStore backs tests and dry runs.
package store

import (
	"errors"
	"time"

	"github.com/Satria0ibnu/deftection-sub000/internal/defect"
)

// DefaultDBPath is the default relative path for the scan database.
const DefaultDBPath = ".deftect/scans.db"

// ErrNotFound is returned when a scan id does not exist.
var ErrNotFound = errors.New("store: scan not found")

// Scan is one persisted inspection verdict.
type Scan struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Source identifies the inspected input (file name, camera id, ...).
	Source string `json:"source"`

	ImageWidth  int `json:"image_width"`
	ImageHeight int `json:"image_height"`

	DetectedDefect  string  `json:"detected_defect,omitempty"`
	Confidence      float64 `json:"confidence,omitempty"`
	SelectionReason string  `json:"selection_reason"`
	Corrected       bool    `json:"corrected"`
	Severity        string  `json:"severity,omitempty"`

	Region       *defect.Region              `json:"region,omitempty"`
	Distribution map[string]defect.ClassStat `json:"distribution,omitempty"`
}

// NewScan builds a Scan record from a verdict.
func NewScan(source string, res *defect.SelectionResult) *Scan {
	s := &Scan{
		Source:          source,
		ImageWidth:      res.ImageWidth,
		ImageHeight:     res.ImageHeight,
		DetectedDefect:  res.DetectedDefect,
		Confidence:      res.Confidence,
		SelectionReason: res.Provenance.SelectionReason,
		Corrected:       res.Provenance.Corrected,
		Region:          res.Region,
		Distribution:    res.ClassDistribution,
	}
	if res.Region != nil {
		s.Severity = string(res.Region.Severity)
	}
	return s
}

// Store is the persistence facade for scan verdicts.
type Store interface {
	// SaveScan persists a scan, assigning ID and CreatedAt when unset,
	// and returns the id.
	SaveScan(s *Scan) (string, error)
	// GetScan fetches one scan by id.
	GetScan(id string) (*Scan, error)
	// ListScans returns the most recent scans, newest first. limit <= 0
	// means no limit.
	ListScans(limit int) ([]*Scan, error)
	// Close releases the underlying resources.
	Close() error
}
