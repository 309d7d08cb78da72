package dnevnik

import (
	"context"
)

// Notification is one entry of the mobile notification feed. The
// event-specific fields are only set for the matching EventType:
// lesson and mark fields for create_mark/update_mark, homework dates
// for create_homework/update_homework.
type Notification struct {
	ID        int64  `json:"id"`
	EventType string `json:"event_type"`
	StudentID int64  `json:"student_profile_id"`

	Datetime  TimestampMillis `json:"datetime"`
	CreatedAt TimestampMillis `json:"created_at"`
	UpdatedAt TimestampMillis `json:"updated_at"`

	SubjectName  string    `json:"subject_name"`
	TeacherName  string    `json:"teacher_name"`
	NewMarkValue string    `json:"new_mark_value"`
	OldMarkValue string    `json:"old_mark_value"`
	MarkWeight   int       `json:"new_mark_weight"`
	ControlForm  string    `json:"control_form"`
	LessonDate   Timestamp `json:"lesson_date"`

	HomeworkDescription string    `json:"new_hw_description"`
	NewDateAssignedOn   Timestamp `json:"new_date_assigned_on"`
	NewDatePreparedFor  Timestamp `json:"new_date_prepared_for"`
}

// GetNotifications fetches the notification feed.
func (c *Client) GetNotifications(ctx context.Context) ([]Notification, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetNotifications")
	defer span.End()

	headers, err := c.mobileHeaders(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	var notifications []Notification
	err = c.get(ctx, c.family+"/api/family/mobile/v1/notifications/search", headers, map[string]string{
		"student_id": id,
	}, &notifications)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch notifications")
	}
	return notifications, nil
}

type UnreadMessages struct {
	UnreadCount    int `json:"unread_count"`
	ImportantCount int `json:"important_count"`
}

// GetUnreadAndImportantMessages reports mailbox counters from the
// core api.
func (c *Client) GetUnreadAndImportantMessages(ctx context.Context) (UnreadMessages, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetUnreadAndImportantMessages")
	defer span.End()

	token, err := c.auth.Token(ctx)
	if err != nil {
		return UnreadMessages{}, recordFailure(span, err, "missing credentials")
	}

	var messages UnreadMessages
	err = c.get(ctx, c.core+"/core/api/messages/count_unread_and_important", map[string]string{
		"Auth-Token": token,
	}, nil, &messages)
	if err != nil {
		return UnreadMessages{}, recordFailure(span, err, "failed to fetch message counters")
	}
	return messages, nil
}
