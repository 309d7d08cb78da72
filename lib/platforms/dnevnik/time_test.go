package dnevnik

import (
	"encoding/json"
	"testing"
	"time"

	"dnevnik-sdk/lib/timezone"

	"github.com/stretchr/testify/require"
)

func TestDateDecoding(t *testing.T) {
	payload := `{
		"dotted": "01.09.2024",
		"dotted_clock": "01.09.2024 08:30",
		"iso": "2024-09-01",
		"iso_clock": "2024-09-01T08:30:00+03:00",
		"stamp": "2024-09-01 08:30:15",
		"stamp_ms": "2024-09-01 08:30:15.250",
		"short": "24-09-01",
		"epoch": 1725168600
	}`

	var decoded struct {
		Dotted      DottedDate      `json:"dotted"`
		DottedClock DottedDateTime  `json:"dotted_clock"`
		Iso         IsoDate         `json:"iso"`
		IsoClock    IsoDateTime     `json:"iso_clock"`
		Stamp       Timestamp       `json:"stamp"`
		StampMs     TimestampMillis `json:"stamp_ms"`
		Short       ShortYearDate   `json:"short"`
		Epoch       EpochSeconds    `json:"epoch"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))

	day := time.Date(2024, time.September, 1, 0, 0, 0, 0, timezone.Location)
	require.True(t, decoded.Dotted.Equal(day))
	require.True(t, decoded.Iso.Equal(day))
	require.True(t, decoded.Short.Equal(day))

	clock := time.Date(2024, time.September, 1, 8, 30, 0, 0, timezone.Location)
	require.True(t, decoded.DottedClock.Equal(clock))
	require.True(t, decoded.IsoClock.Equal(clock))
	require.True(t, decoded.Stamp.Equal(clock.Add(15*time.Second)))
	require.True(t, decoded.StampMs.Equal(clock.Add(15*time.Second+250*time.Millisecond)))
	require.True(t, decoded.Epoch.Equal(time.Unix(1725168600, 0)))
	require.Equal(t, time.UTC, decoded.Epoch.Location())
}

func TestDateDecodingTolerantOfMissing(t *testing.T) {
	payload := `{"a": null, "b": "", "c": null}`

	var decoded struct {
		A DottedDateTime `json:"a"`
		B DottedDate     `json:"b"`
		C EpochSeconds   `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))
	require.True(t, decoded.A.IsZero())
	require.True(t, decoded.B.IsZero())
	require.True(t, decoded.C.IsZero())
}

func TestDateRoundTrip(t *testing.T) {
	day := DottedDate{time.Date(2024, time.September, 1, 0, 0, 0, 0, timezone.Location)}
	encoded, err := json.Marshal(day)
	require.NoError(t, err)
	require.Equal(t, `"01.09.2024"`, string(encoded))

	var zero DottedDate
	encoded, err = json.Marshal(zero)
	require.NoError(t, err)
	require.Equal(t, "null", string(encoded))
}

func TestClockTime(t *testing.T) {
	var visit Visit
	require.NoError(t, json.Unmarshal([]byte(`{"in": "08:45", "out": "-"}`), &visit))

	require.True(t, visit.In.Valid)
	require.Equal(t, 8, visit.In.Hour)
	require.Equal(t, 45, visit.In.Minute)
	require.False(t, visit.Out.Valid)

	day := time.Date(2024, time.September, 2, 0, 0, 0, 0, timezone.Location)
	at, ok := visit.In.On(day)
	require.True(t, ok)
	require.Equal(t, time.Date(2024, time.September, 2, 8, 45, 0, 0, timezone.Location), at)

	_, ok = visit.Out.On(day)
	require.False(t, ok)
}
