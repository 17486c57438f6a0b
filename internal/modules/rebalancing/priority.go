package rebalancing

import "sort"

// RankCandidates attaches combined priorities and sorts descending.
//
//	combined = total score * priority multiplier
//
// A zero or negative multiplier is treated as the neutral 1.0. The
// sort is stable so equal priorities keep their input order. The input
// slice is not modified.
func RankCandidates(candidates []Candidate) []RankedCandidate {
	ranked := make([]RankedCandidate, len(candidates))
	for i, c := range candidates {
		multiplier := c.Security.PriorityMultiplier
		if multiplier <= 0 {
			multiplier = 1.0
		}

		ranked[i] = RankedCandidate{
			Candidate:        c,
			CombinedPriority: c.Score.TotalScore * multiplier,
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CombinedPriority > ranked[j].CombinedPriority
	})

	return ranked
}
