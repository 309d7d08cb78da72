package dnevnik

import (
	"context"
	"time"

	"dnevnik-sdk/lib/timezone"
)

type Homework struct {
	ID              int64          `json:"id"`
	Text            string         `json:"text"`
	SubjectID       int64          `json:"subject_id"`
	TeacherID       int64          `json:"teacher_id"`
	IsRequired      bool           `json:"is_required"`
	DateAssignedOn  DottedDate     `json:"date_assigned_on"`
	DatePreparedFor DottedDate     `json:"date_prepared_for"`
	CreatedAt       DottedDateTime `json:"created_at"`
	UpdatedAt       DottedDateTime `json:"updated_at"`
	DeletedAt       DottedDateTime `json:"deleted_at"`
}

type HomeworkEntry struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	Duration    int            `json:"duration"`
	Homework    Homework       `json:"homework"`
	Attachments []Attachment   `json:"attachments"`
	CreatedAt   DottedDateTime `json:"created_at"`
	UpdatedAt   DottedDateTime `json:"updated_at"`
	DeletedAt   DottedDateTime `json:"deleted_at"`
}

type Attachment struct {
	ID       int64  `json:"id"`
	Path     string `json:"path"`
	FileName string `json:"file_file_name"`
	FileSize int64  `json:"file_file_size"`
}

// StudentHomework is the core api's per-student homework assignment.
type StudentHomework struct {
	ID            int64          `json:"id"`
	StudentID     int64          `json:"student_id"`
	IsReady       bool           `json:"is_ready"`
	Comment       string         `json:"comment"`
	HomeworkEntry HomeworkEntry  `json:"homework_entry"`
	CreatedAt     DottedDateTime `json:"created_at"`
	UpdatedAt     DottedDateTime `json:"updated_at"`
	DeletedAt     DottedDateTime `json:"deleted_at"`
}

// GetHomework lists assignments prepared for the given date range via
// the legacy core api.
func (c *Client) GetHomework(ctx context.Context, from, to time.Time) ([]StudentHomework, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetHomework")
	defer span.End()

	headers, err := c.coreHeaders(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	var homework []StudentHomework
	err = c.get(ctx, c.core+"/core/api/student_homeworks", headers, map[string]string{
		"begin_prepared_date": timezone.FormatDayDotted(from),
		"end_prepared_date":   timezone.FormatDayDotted(to),
		"student_profile_id":  id,
	}, &homework)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch homework")
	}
	return homework, nil
}

type MobileHomeworkItem struct {
	Description        string             `json:"description"`
	SubjectName        string             `json:"subject_name"`
	SubjectID          int64              `json:"subject_id"`
	Date               IsoDate            `json:"date"`
	DateAssigned       IsoDate            `json:"date_assigned_on"`
	HomeworkID         int64              `json:"homework_id"`
	EntryID            int64              `json:"homework_entry_student_id"`
	IsDone             bool               `json:"is_done"`
	HasTeacherComments bool               `json:"has_teacher_comments"`
	Materials          []HomeworkMaterial `json:"materials"`
}

type HomeworkMaterial struct {
	UUID  string `json:"uuid"`
	Type  string `json:"type"`
	Title string `json:"title"`
	Urls  []struct {
		URL  string `json:"url"`
		Type string `json:"url_type"`
	} `json:"urls"`
}

type mobileHomeworkEnvelope struct {
	Payload []MobileHomeworkItem `json:"payload"`
}

func (c *Client) mobileHomeworks(ctx context.Context, path string, from, to time.Time) ([]MobileHomeworkItem, error) {
	headers, err := c.mobileHeaders(ctx)
	if err != nil {
		return nil, err
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return nil, err
	}

	var envelope mobileHomeworkEnvelope
	err = c.get(ctx, c.family+path, headers, map[string]string{
		"student_id": id,
		"from":       timezone.FormatDay(from),
		"to":         timezone.FormatDay(to),
	}, &envelope)
	if err != nil {
		return nil, err
	}
	return envelope.Payload, nil
}

// GetHomeworks lists assignments from the family mobile api.
func (c *Client) GetHomeworks(ctx context.Context, from, to time.Time) ([]MobileHomeworkItem, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetHomeworks")
	defer span.End()

	homework, err := c.mobileHomeworks(ctx, "/api/family/mobile/v1/homeworks/", from, to)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch homework")
	}
	return homework, nil
}

// GetHomeworksShort lists the compact variant of mobile assignments.
func (c *Client) GetHomeworksShort(ctx context.Context, from, to time.Time) ([]MobileHomeworkItem, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetHomeworksShort")
	defer span.End()

	homework, err := c.mobileHomeworks(ctx, "/api/family/mobile/v1/homeworks/short", from, to)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch homework")
	}
	return homework, nil
}
