package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDay(t *testing.T) {
	cases := []struct {
		in           time.Time
		expect       string
		expectDotted string
	}{
		{
			// 21:30 UTC is already past midnight in Moscow
			in:           time.Date(2024, time.September, 1, 21, 30, 0, 0, time.UTC),
			expect:       "2024-09-02",
			expectDotted: "02.09.2024",
		},
		{
			in:           time.Date(2024, time.September, 1, 12, 0, 0, 0, time.UTC),
			expect:       "2024-09-01",
			expectDotted: "01.09.2024",
		},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, FormatDay(test.in))
		require.Equal(t, test.expectDotted, FormatDayDotted(test.in))
	}
}

func TestAtClock(t *testing.T) {
	day := time.Date(2024, time.September, 2, 0, 0, 0, 0, Location)
	at := AtClock(day, 8, 45)
	require.Equal(t, 8, at.Hour())
	require.Equal(t, 45, at.Minute())
	require.Equal(t, day.Day(), at.Day())
	require.Equal(t, Location, at.Location())
}
