package dnevnik

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dnevnik-sdk/lib/timezone"
)

// The portal is wildly inconsistent about date encodings: legacy
// endpoints use day-month-year with or without a clock, the family
// api uses iso dates, notifications carry second or millisecond
// timestamps and the mobile schedule uses epoch seconds. Each format
// gets its own field type so response structs stay declarative.

const (
	layoutDotted      = "02.01.2006"
	layoutDottedClock = "02.01.2006 15:04"
	layoutIso         = "2006-01-02"
	layoutTimestamp   = "2006-01-02 15:04:05"
	layoutTimestampMs = "2006-01-02 15:04:05.000"
	layoutShortYear   = "06-01-02"
)

func unmarshalInLocation(data []byte, layout string) (time.Time, error) {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return time.Time{}, nil
	}
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return time.Time{}, err
	}
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(layout, s, timezone.Location)
}

func marshalInLayout(t time.Time, layout string) ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.In(timezone.Location).Format(layout))
}

// DottedDate decodes "02.01.2006".
type DottedDate struct{ time.Time }

func (d *DottedDate) UnmarshalJSON(data []byte) error {
	t, err := unmarshalInLocation(data, layoutDotted)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DottedDate) MarshalJSON() ([]byte, error) {
	return marshalInLayout(d.Time, layoutDotted)
}

// DottedDateTime decodes "02.01.2006 15:04".
type DottedDateTime struct{ time.Time }

func (d *DottedDateTime) UnmarshalJSON(data []byte) error {
	t, err := unmarshalInLocation(data, layoutDottedClock)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d DottedDateTime) MarshalJSON() ([]byte, error) {
	return marshalInLayout(d.Time, layoutDottedClock)
}

// IsoDate decodes "2006-01-02".
type IsoDate struct{ time.Time }

func (d *IsoDate) UnmarshalJSON(data []byte) error {
	t, err := unmarshalInLocation(data, layoutIso)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d IsoDate) MarshalJSON() ([]byte, error) {
	return marshalInLayout(d.Time, layoutIso)
}

// IsoDateTime decodes a full RFC3339 timestamp.
type IsoDateTime struct{ time.Time }

func (d *IsoDateTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d IsoDateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// Timestamp decodes "2006-01-02 15:04:05".
type Timestamp struct{ time.Time }

func (d *Timestamp) UnmarshalJSON(data []byte) error {
	t, err := unmarshalInLocation(data, layoutTimestamp)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Timestamp) MarshalJSON() ([]byte, error) {
	return marshalInLayout(d.Time, layoutTimestamp)
}

// TimestampMillis decodes "2006-01-02 15:04:05.000".
type TimestampMillis struct{ time.Time }

func (d *TimestampMillis) UnmarshalJSON(data []byte) error {
	t, err := unmarshalInLocation(data, layoutTimestampMs)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d TimestampMillis) MarshalJSON() ([]byte, error) {
	return marshalInLayout(d.Time, layoutTimestampMs)
}

// ShortYearDate decodes "06-01-02" (academic year bounds).
type ShortYearDate struct{ time.Time }

func (d *ShortYearDate) UnmarshalJSON(data []byte) error {
	t, err := unmarshalInLocation(data, layoutShortYear)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d ShortYearDate) MarshalJSON() ([]byte, error) {
	return marshalInLayout(d.Time, layoutShortYear)
}

// EpochSeconds decodes a unix timestamp number, rendered in UTC.
type EpochSeconds struct{ time.Time }

func (d *EpochSeconds) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	var secs int64
	err := json.Unmarshal(data, &secs)
	if err != nil {
		return err
	}
	if secs == 0 {
		return nil
	}
	d.Time = time.Unix(secs, 0).UTC()
	return nil
}

func (d EpochSeconds) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Unix())
}

// ClockTime decodes a wall-clock "HH:mm" reading. Turnstile data uses
// "-" for a missing reading.
type ClockTime struct {
	Hour   int
	Minute int
	Valid  bool
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}
	if !strings.Contains(s, ":") {
		return nil
	}
	parts := strings.SplitN(s, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return err
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return err
	}
	c.Hour = hour
	c.Minute = minute
	c.Valid = true
	return nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(fmt.Sprintf("%02d:%02d", c.Hour, c.Minute))
}

// On anchors the clock reading to a concrete day in Moscow time.
func (c ClockTime) On(day time.Time) (time.Time, bool) {
	if !c.Valid {
		return time.Time{}, false
	}
	return timezone.AtClock(day, c.Hour, c.Minute), true
}
