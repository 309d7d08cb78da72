package dnevnik

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"dnevnik-sdk/lib/timezone"
)

type AttendanceDay struct {
	Date        IsoDate `json:"date"`
	ReasonID    int64   `json:"reason_id"`
	Description string  `json:"description"`
}

type Attendance struct {
	Attendance []AttendanceDay `json:"attendance"`
}

// GetAttendance lists planned absences reported for the student.
func (c *Client) GetAttendance(ctx context.Context) (Attendance, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetAttendance")
	defer span.End()

	headers, err := c.mobileHeaders(ctx)
	if err != nil {
		return Attendance{}, recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return Attendance{}, recordFailure(span, err, "missing credentials")
	}

	var attendance Attendance
	err = c.get(ctx, c.family+"/api/family/mobile/v1/attendance/", headers, map[string]string{
		"student_id": id,
	}, &attendance)
	if err != nil {
		return Attendance{}, recordFailure(span, err, "failed to fetch attendance")
	}
	return attendance, nil
}

type attendanceNotification struct {
	Date        string `json:"date"`
	ReasonID    int64  `json:"reason_id,omitempty"`
	Description string `json:"description,omitempty"`
}

type attendanceRequest struct {
	StudentID     string                   `json:"student_id"`
	Notifications []attendanceNotification `json:"notifications"`
}

// DefaultAbsenceReasonID is the portal's "illness" reason.
const DefaultAbsenceReasonID = 6

// PostAttendance reports a planned absence for the given day. An empty
// description defaults to illness.
func (c *Client) PostAttendance(ctx context.Context, date time.Time, description string, reasonID int64) error {
	ctx, span := tracer.Start(ctx, "dnevnik:PostAttendance")
	defer span.End()

	if description == "" {
		description = "болезнь"
	}
	if reasonID == 0 {
		reasonID = DefaultAbsenceReasonID
	}

	headers, err := c.mobileHeaders(ctx)
	if err != nil {
		return recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return recordFailure(span, err, "missing credentials")
	}

	body := attendanceRequest{
		StudentID: id,
		Notifications: []attendanceNotification{{
			Date:        timezone.FormatDay(date),
			ReasonID:    reasonID,
			Description: description,
		}},
	}
	err = c.do(ctx, http.MethodPost, c.family+"/api/family/mobile/v1/attendance/", headers, nil, body, nil)
	if err != nil {
		return recordFailure(span, err, "failed to report absence")
	}
	return nil
}

// DeleteAttendance withdraws a previously reported absence.
func (c *Client) DeleteAttendance(ctx context.Context, date time.Time) error {
	ctx, span := tracer.Start(ctx, "dnevnik:DeleteAttendance")
	defer span.End()

	headers, err := c.mobileHeaders(ctx)
	if err != nil {
		return recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return recordFailure(span, err, "missing credentials")
	}

	body := attendanceRequest{
		StudentID: id,
		Notifications: []attendanceNotification{{
			Date: timezone.FormatDay(date),
		}},
	}
	err = c.do(ctx, http.MethodDelete, c.family+"/api/family/mobile/v1/attendance/", headers, nil, body, nil)
	if err != nil {
		return recordFailure(span, err, "failed to withdraw absence")
	}
	return nil
}

type Visit struct {
	In       ClockTime `json:"in"`
	Out      ClockTime `json:"out"`
	Duration string    `json:"duration"`
	Address  string    `json:"address"`
	Type     string    `json:"type"`
}

type VisitDay struct {
	Date   IsoDate `json:"date"`
	Visits []Visit `json:"visits"`
}

type visitsEnvelope struct {
	Payload []VisitDay `json:"payload"`
}

// GetVisits lists building entry/exit turnstile events for a date
// range. The contract id comes from Profile.IsppAccount or from
// the matching Child.ContractID on ProfileV2.
func (c *Client) GetVisits(ctx context.Context, from, to time.Time, contractID int64) ([]VisitDay, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetVisits")
	defer span.End()

	headers, err := c.webHeaders(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	var envelope visitsEnvelope
	err = c.get(ctx, c.family+"/api/family/web/v1/visits", headers, map[string]string{
		"from":        timezone.FormatDay(from),
		"to":          timezone.FormatDay(to),
		"contract_id": strconv.FormatInt(contractID, 10),
	}, &envelope)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch visits")
	}
	return envelope.Payload, nil
}
