package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Satria0ibnu/deftection-sub000/internal/defect"
)

func sampleScan(source string) *Scan {
	return &Scan{
		Source:          source,
		ImageWidth:      100,
		ImageHeight:     80,
		DetectedDefect:  "scratch",
		Confidence:      0.92,
		SelectionReason: "clear_area_dominance",
		Severity:        "moderate",
		Region: &defect.Region{
			X: 10, Y: 20, Width: 30, Height: 8,
			Area: 200, AreaPercentage: 2.5,
			CenterX: 24, CenterY: 23.5,
			Severity: defect.SeverityModerate,
			Quadrant: "Top-Left",
		},
		Distribution: map[string]defect.ClassStat{
			"background": {PixelCount: 7800, Percentage: 97.5},
			"scratch":    {PixelCount: 200, Percentage: 2.5},
		},
	}
}

// eachStore runs the test body against both implementations.
func eachStore(t *testing.T, body func(t *testing.T, s Store)) {
	t.Run("sqlite", func(t *testing.T) {
		s, err := OpenSql(filepath.Join(t.TempDir(), "scans.db"))
		require.NoError(t, err)
		defer s.Close()
		body(t, s)
	})
	t.Run("memory", func(t *testing.T) {
		s := NewMemStore()
		defer s.Close()
		body(t, s)
	})
}

func TestStore_SaveAndGet(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		in := sampleScan("line-a/frame-001.png")
		id, err := s.SaveScan(in)
		require.NoError(t, err)
		require.NotEmpty(t, id)
		require.False(t, in.CreatedAt.IsZero())

		got, err := s.GetScan(id)
		require.NoError(t, err)
		require.Equal(t, id, got.ID)
		require.Equal(t, in.Source, got.Source)
		require.Equal(t, in.DetectedDefect, got.DetectedDefect)
		require.Equal(t, in.SelectionReason, got.SelectionReason)
		require.InDelta(t, in.Confidence, got.Confidence, 1e-9)
		require.NotNil(t, got.Region)
		require.Equal(t, in.Region.X, got.Region.X)
		require.Equal(t, in.Region.Area, got.Region.Area)
		require.Equal(t, in.Distribution["scratch"].PixelCount, got.Distribution["scratch"].PixelCount)
	})
}

func TestStore_GetMissing(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		_, err := s.GetScan("no-such-id")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_SaveWithoutRegion(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		in := &Scan{
			Source:          "clean.png",
			ImageWidth:      64,
			ImageHeight:     64,
			SelectionReason: "no_candidates",
		}
		id, err := s.SaveScan(in)
		require.NoError(t, err)

		got, err := s.GetScan(id)
		require.NoError(t, err)
		require.Nil(t, got.Region)
		require.Empty(t, got.DetectedDefect)
	})
}

func TestStore_ListNewestFirst(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			scan := sampleScan("frame")
			scan.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			scan.Source = []string{"oldest", "middle", "newest"}[i]
			_, err := s.SaveScan(scan)
			require.NoError(t, err)
		}

		scans, err := s.ListScans(0)
		require.NoError(t, err)
		require.Len(t, scans, 3)
		require.Equal(t, "newest", scans[0].Source)
		require.Equal(t, "oldest", scans[2].Source)

		limited, err := s.ListScans(2)
		require.NoError(t, err)
		require.Len(t, limited, 2)
		require.Equal(t, "newest", limited[0].Source)
	})
}

func TestNewScan_FromResult(t *testing.T) {
	res := &defect.SelectionResult{
		ImageWidth:     100,
		ImageHeight:    80,
		DetectedDefect: "stained",
		Confidence:     0.71,
		Region: &defect.Region{
			X: 5, Y: 5, Width: 10, Height: 10,
			Severity: defect.SeverityMinor,
		},
		ClassDistribution: map[string]defect.ClassStat{
			"stained": {PixelCount: 100, Percentage: 1.25},
		},
		Provenance: defect.Provenance{
			SelectionReason: "quality_score_tiebreak",
			Corrected:       true,
		},
	}

	scan := NewScan("cam-2/shot.png", res)
	require.Equal(t, "cam-2/shot.png", scan.Source)
	require.Equal(t, "stained", scan.DetectedDefect)
	require.Equal(t, "quality_score_tiebreak", scan.SelectionReason)
	require.True(t, scan.Corrected)
	require.Equal(t, string(defect.SeverityMinor), scan.Severity)
	require.Equal(t, 100, scan.ImageWidth)
}
