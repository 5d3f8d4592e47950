package defect

import "sort"

// Candidates whose area is within this relative factor of the largest are
// considered comparably large and go through the tie-break cascade.
const areaDominanceFactor = 0.85

// Confidence tie-break keeps candidates within 95% of the best average
// confidence.
const confidenceTieFactor = 0.95

// selectCandidate reduces a candidate list to at most one winner using an
// area-dominance rule with a deterministic tie-break cascade. The cascade
// never consults class identity or name order, so the outcome is stable
// under any input ordering.
func selectCandidate(candidates []Candidate) (*Candidate, string) {
	if len(candidates) == 0 {
		return nil, ReasonNoCandidates
	}

	// Work on a sorted copy: descending by area, then quality.
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].AreaPercentage != ordered[j].AreaPercentage {
			return ordered[i].AreaPercentage > ordered[j].AreaPercentage
		}
		return ordered[i].QualityScore > ordered[j].QualityScore
	})

	largest := ordered[0].AreaPercentage
	large := ordered[:0:0]
	for _, c := range ordered {
		if c.AreaPercentage >= largest*areaDominanceFactor {
			large = append(large, c)
		}
	}

	if len(large) == 1 {
		return &large[0], ReasonClearAreaDominance
	}

	// Stage a: confidence. Keep candidates close to the best average
	// confidence.
	maxConf := large[0].ConfidenceAvg
	for _, c := range large[1:] {
		if c.ConfidenceAvg > maxConf {
			maxConf = c.ConfidenceAvg
		}
	}
	kept := large[:0:0]
	for _, c := range large {
		if c.ConfidenceAvg >= maxConf*confidenceTieFactor {
			kept = append(kept, c)
		}
	}
	if len(kept) == 1 {
		return &kept[0], ReasonConfidenceTiebreak
	}

	// Stage b: area reasonableness. Keep the maximal-bucket subset.
	best := reasonablenessBucket(kept[0].AreaPercentage)
	for _, c := range kept[1:] {
		if b := reasonablenessBucket(c.AreaPercentage); b > best {
			best = b
		}
	}
	narrowed := kept[:0:0]
	for _, c := range kept {
		if reasonablenessBucket(c.AreaPercentage) == best {
			narrowed = append(narrowed, c)
		}
	}
	if len(narrowed) == 1 {
		return &narrowed[0], ReasonAreaReasonableness
	}

	// Stage c: quality score. Wins only on a strict margin over the
	// runner-up.
	byQuality := make([]Candidate, len(narrowed))
	copy(byQuality, narrowed)
	sort.SliceStable(byQuality, func(i, j int) bool {
		return byQuality[i].QualityScore > byQuality[j].QualityScore
	})
	if byQuality[0].QualityScore > byQuality[1].QualityScore {
		return &byQuality[0], ReasonQualityScore
	}

	// Stage d: deterministic fallback. narrowed preserves the initial
	// (area, quality) descending order.
	return &narrowed[0], ReasonStableOrderFallback
}

// reasonablenessBucket scores how plausible an area percentage is for a
// real surface defect. Mid-range areas are most credible.
func reasonablenessBucket(areaPct float64) float64 {
	switch {
	case areaPct >= 2 && areaPct <= 15:
		return 1.0
	case (areaPct >= 1 && areaPct < 2) || (areaPct > 15 && areaPct <= 25):
		return 0.8
	case (areaPct >= 0.5 && areaPct < 1) || (areaPct > 25 && areaPct <= 35):
		return 0.6
	default:
		return 0.4
	}
}
