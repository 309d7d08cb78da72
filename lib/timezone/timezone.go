package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic(err)
	}
}

// force timezone to be Moscow because the portal renders every
// day-month-year field in Moscow time regardless of where the
// process runs, which will cause disturbances when manipulating
// dates based on <time.Time>.Year()/Month()/Day()/Hour()/...
func Now() time.Time {
	return time.Now().In(Location)
}

// FormatDay renders a date the way the family endpoints expect it,
// e.g. "2024-09-01".
func FormatDay(t time.Time) string {
	return t.In(Location).Format("2006-01-02")
}

// FormatDayDotted renders a date the way the legacy diary endpoints
// expect it, e.g. "01.09.2024".
func FormatDayDotted(t time.Time) string {
	return t.In(Location).Format("02.01.2006")
}

// AtClock combines a day with a wall-clock reading taken in Moscow
// time. The clock values come from entry/exit turnstile data.
func AtClock(day time.Time, hour, minute int) time.Time {
	day = day.In(Location)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, Location)
}
