package defect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func cand(name string, areaPct, confAvg, quality float64) Candidate {
	return Candidate{
		ClassName:      name,
		AreaPercentage: areaPct,
		ConfidenceAvg:  confAvg,
		QualityScore:   quality,
	}
}

func TestSelectCandidate_Empty(t *testing.T) {
	winner, reason := selectCandidate(nil)
	require.Nil(t, winner)
	require.Equal(t, ReasonNoCandidates, reason)
}

func TestSelectCandidate_AreaDominance(t *testing.T) {
	// P3: areas differing by more than 15% never reach the tie-break; the
	// larger area wins regardless of confidence.
	cands := []Candidate{
		cand("stained", 3.0, 0.99, 0.95),
		cand("scratch", 5.0, 0.20, 0.40),
	}

	winner, reason := selectCandidate(cands)
	require.Equal(t, "scratch", winner.ClassName)
	require.Equal(t, ReasonClearAreaDominance, reason)
}

func TestSelectCandidate_ConfidenceTiebreak(t *testing.T) {
	// P4: within 15% area of each other, the clearly more confident
	// candidate wins stage (a) before area reasonableness is consulted.
	cands := []Candidate{
		cand("stained", 3.0, 0.50, 0.90),
		cand("scratch", 2.9, 0.90, 0.80),
	}

	winner, reason := selectCandidate(cands)
	require.Equal(t, "scratch", winner.ClassName)
	require.Equal(t, ReasonConfidenceTiebreak, reason)
}

func TestSelectCandidate_AreaReasonablenessTiebreak(t *testing.T) {
	// Comparable areas and confidences; the candidate in the credible
	// [2, 15] band beats the one past 15.
	cands := []Candidate{
		cand("stained", 16.0, 0.90, 0.95),
		cand("scratch", 14.0, 0.89, 0.70),
	}

	winner, reason := selectCandidate(cands)
	require.Equal(t, "scratch", winner.ClassName)
	require.Equal(t, ReasonAreaReasonableness, reason)
}

func TestSelectCandidate_QualityTiebreak(t *testing.T) {
	cands := []Candidate{
		cand("stained", 5.0, 0.90, 0.75),
		cand("scratch", 5.0, 0.90, 0.85),
	}

	winner, reason := selectCandidate(cands)
	require.Equal(t, "scratch", winner.ClassName)
	require.Equal(t, ReasonQualityScore, reason)
}

func TestSelectCandidate_StableFallback(t *testing.T) {
	// Identical on every criterion except area: the fallback returns the
	// head of the (area, quality)-sorted order, deterministically.
	cands := []Candidate{
		cand("stained", 4.9, 0.90, 0.80),
		cand("scratch", 5.0, 0.90, 0.80),
	}

	winner, reason := selectCandidate(cands)
	require.Equal(t, "scratch", winner.ClassName)
	require.Equal(t, ReasonStableOrderFallback, reason)
}

func TestSelectCandidate_InsensitiveToInputOrder(t *testing.T) {
	a := []Candidate{
		cand("stained", 3.0, 0.50, 0.90),
		cand("scratch", 2.9, 0.90, 0.80),
		cand("damaged", 2.8, 0.88, 0.85),
	}
	b := []Candidate{a[2], a[0], a[1]}

	wa, ra := selectCandidate(a)
	wb, rb := selectCandidate(b)
	require.Equal(t, wa.ClassName, wb.ClassName)
	require.Equal(t, ra, rb)
}

func TestSelectCandidate_DoesNotMutateInput(t *testing.T) {
	cands := []Candidate{
		cand("stained", 1.0, 0.5, 0.5),
		cand("scratch", 9.0, 0.9, 0.9),
	}
	selectCandidate(cands)
	require.Equal(t, "stained", cands[0].ClassName)
	require.Equal(t, "scratch", cands[1].ClassName)
}

func TestReasonablenessBucket(t *testing.T) {
	require.Equal(t, 1.0, reasonablenessBucket(2))
	require.Equal(t, 1.0, reasonablenessBucket(15))
	require.Equal(t, 0.8, reasonablenessBucket(1.5))
	require.Equal(t, 0.8, reasonablenessBucket(20))
	require.Equal(t, 0.6, reasonablenessBucket(0.7))
	require.Equal(t, 0.6, reasonablenessBucket(30))
	require.Equal(t, 0.4, reasonablenessBucket(0.2))
	require.Equal(t, 0.4, reasonablenessBucket(40))
}
