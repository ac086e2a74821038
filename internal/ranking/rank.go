// Package ranking implements the multi-factor scoring engine: eligibility
// filtering, dense-rank composite scores for four strategy formulas, and the
// report assembler that merges them into one row per asset.
package ranking

import "sort"

// DenseRank assigns ordinal positions to values. Equal values share a rank
// and the next distinct value's rank increases by exactly 1, so the result
// is a gapless sequence 1..K where K is the number of distinct values.
//
// descending=true gives rank 1 to the largest value (higher is better);
// descending=false gives rank 1 to the smallest (lower is better).
func DenseRank(values []float64, descending bool) []int {
	if len(values) == 0 {
		return nil
	}

	distinct := make(map[float64]struct{}, len(values))
	for _, v := range values {
		distinct[v] = struct{}{}
	}

	sorted := make([]float64, 0, len(distinct))
	for v := range distinct {
		sorted = append(sorted, v)
	}
	if descending {
		sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	} else {
		sort.Float64s(sorted)
	}

	rankOf := make(map[float64]int, len(sorted))
	for i, v := range sorted {
		rankOf[v] = i + 1
	}

	ranks := make([]int, len(values))
	for i, v := range values {
		ranks[i] = rankOf[v]
	}
	return ranks
}
