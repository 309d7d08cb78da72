package dnevnik

import (
	"context"
	"strings"
	"time"

	"dnevnik-sdk/lib/timezone"
)

// EventExpand toggles the extra payloads the calendar can attach to
// each event.
type EventExpand struct {
	Marks         bool
	Homework      bool
	Absence       bool
	HealthStatus  bool
	NonAttendance bool
}

func (e EventExpand) queryValue() string {
	flags := []struct {
		name    string
		enabled bool
	}{
		{"marks", e.Marks},
		{"homework", e.Homework},
		{"absence_reason_id", e.Absence},
		{"health_status", e.HealthStatus},
		{"nonattendance_reason_id", e.NonAttendance},
	}
	var enabled []string
	for _, flag := range flags {
		if flag.enabled {
			enabled = append(enabled, flag.name)
		}
	}
	return strings.Join(enabled, ",")
}

type EventHomework struct {
	PresenceStatusID int64    `json:"presence_status_id"`
	TotalCount       int      `json:"total_count"`
	ReadyCount       int      `json:"ready_count"`
	Descriptions     []string `json:"descriptions"`
}

type Event struct {
	ID          int64  `json:"id"`
	AuthorID    string `json:"author_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	SourceID    string `json:"source_id"`
	Place       string `json:"place"`
	SubjectID   int64  `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	LessonType  string `json:"lesson_type"`
	IsAllDay    bool   `json:"is_all_day"`
	Cancelled   bool   `json:"cancelled"`

	StartAt             IsoDateTime `json:"start_at"`
	FinishAt            IsoDateTime `json:"finish_at"`
	CreatedAt           IsoDateTime `json:"created_at"`
	UpdatedAt           IsoDateTime `json:"updated_at"`
	RegistrationStartAt IsoDateTime `json:"registration_start_at"`
	RegistrationEndAt   IsoDateTime `json:"registration_end_at"`

	Homework *EventHomework `json:"homework"`
}

type EventsResponse struct {
	Total    int     `json:"total_count"`
	Response []Event `json:"response"`
}

// GetEvents queries the event calendar for a person over a date range.
// The person id comes from Profile.PersonID.
func (c *Client) GetEvents(ctx context.Context, personID string, from, to time.Time, expand EventExpand) (EventsResponse, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetEvents")
	defer span.End()

	headers, err := c.webHeaders(ctx)
	if err != nil {
		return EventsResponse{}, recordFailure(span, err, "missing credentials")
	}

	token, err := c.auth.Token(ctx)
	if err != nil {
		return EventsResponse{}, recordFailure(span, err, "missing credentials")
	}
	headers["authorization"] = "Bearer " + token
	headers["x-mes-role"] = "student"

	var events EventsResponse
	err = c.get(ctx, c.family+"/api/eventcalendar/v1/api/events", headers, map[string]string{
		"person_ids": personID,
		"begin_date": timezone.FormatDay(from),
		"end_date":   timezone.FormatDay(to),
		"expand":     expand.queryValue(),
	}, &events)
	if err != nil {
		return EventsResponse{}, recordFailure(span, err, "failed to fetch events")
	}
	return events, nil
}
