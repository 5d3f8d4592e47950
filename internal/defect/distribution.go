package defect

import "github.com/Satria0ibnu/deftection-sub000/internal/taxonomy"

// classDistribution counts mask pixels per taxonomy class, background
// included, and converts counts to percentages of the whole image.
func classDistribution(m *Mask, tax *taxonomy.Taxonomy) map[string]ClassStat {
	var counts [256]int
	for _, id := range m.Classes {
		counts[id]++
	}

	total := float64(m.Pixels())
	dist := make(map[string]ClassStat, tax.Len())
	for _, c := range tax.Classes() {
		n := counts[c.ID]
		dist[c.Name] = ClassStat{
			PixelCount: n,
			Percentage: float64(n) / total * 100,
		}
	}
	return dist
}
