package markutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestExpandWeighted(t *testing.T) {
	cases := []struct {
		marks  []WeightedMark
		expect []float64
	}{
		{
			marks:  []WeightedMark{{Mark: 5, Weight: 2}, {Mark: 3, Weight: 1}},
			expect: []float64{5, 5, 3},
		},
		{
			marks:  []WeightedMark{{Mark: 4, Weight: 0}},
			expect: nil,
		},
		{
			marks:  nil,
			expect: nil,
		},
	}

	for _, test := range cases {
		diff := cmp.Diff(test.expect, ExpandWeighted(test.marks))
		if diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestAverage(t *testing.T) {
	require.Equal(t, float64(0), Average(nil))
	require.Equal(t, float64(0), Average(ExpandWeighted(nil)))
	require.InDelta(t, 13.0/3.0, Average([]float64{5, 5, 3}), 1e-9)
	require.InDelta(
		t, 13.0/3.0,
		Average(ExpandWeighted([]WeightedMark{{Mark: 5, Weight: 2}, {Mark: 3, Weight: 1}})),
		1e-9,
	)
}
