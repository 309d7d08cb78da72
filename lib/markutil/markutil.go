// Package markutil implements the weighted grade math used by the
// diary's progress reports: a mark with weight N counts as N ordinary
// marks when averaging.
package markutil

// WeightedMark is one graded entry from a progress report period.
type WeightedMark struct {
	Mark   float64
	Weight int
}

// ExpandWeighted repeats every mark according to its weight, in the
// order given.
func ExpandWeighted(marks []WeightedMark) []float64 {
	var result []float64
	for _, m := range marks {
		for i := 0; i < m.Weight; i++ {
			result = append(result, m.Mark)
		}
	}
	return result
}

// Average returns the arithmetic mean of the marks, or 0 for empty
// input (never NaN).
func Average(marks []float64) float64 {
	if len(marks) == 0 {
		return 0
	}
	var sum float64
	for _, m := range marks {
		sum += m
	}
	return sum / float64(len(marks))
}
