package dnevnik

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"dnevnik-sdk/lib/timezone"

	"golang.org/x/sync/errgroup"
)

type ScheduleLesson struct {
	ScheduleItemID   int64  `json:"schedule_item_id"`
	SubjectID        int64  `json:"subject_id"`
	SubjectName      string `json:"subject_name"`
	LessonType       string `json:"lesson_type"`
	CourseLessonType string `json:"course_lesson_type"`
	Topic            string `json:"lesson_topic"`
	MarksCount       int    `json:"marks_count"`
}

type ScheduleActivity struct {
	Type         string         `json:"type"`
	Info         string         `json:"info"`
	BeginUTC     EpochSeconds   `json:"begin_utc"`
	EndUTC       EpochSeconds   `json:"end_utc"`
	RoomNumber   string         `json:"room_number"`
	RoomName     string         `json:"room_name"`
	Building     string         `json:"building_name"`
	Lesson       ScheduleLesson `json:"lesson"`
	HomeworkText []string       `json:"homeworks"`
}

// Schedule is one day of the family mobile timetable.
type Schedule struct {
	Date       IsoDate            `json:"date"`
	Summary    string             `json:"summary"`
	Activities []ScheduleActivity `json:"activities"`
}

// GetSchedule fetches the timetable for a single day.
func (c *Client) GetSchedule(ctx context.Context, date time.Time) (Schedule, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetSchedule")
	defer span.End()

	headers, err := c.mobileHeaders(ctx)
	if err != nil {
		return Schedule{}, recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return Schedule{}, recordFailure(span, err, "missing credentials")
	}

	var schedule Schedule
	err = c.get(ctx, c.family+"/api/family/mobile/v1/schedule/", headers, map[string]string{
		"student_id": id,
		"date":       timezone.FormatDay(date),
	}, &schedule)
	if err != nil {
		return Schedule{}, recordFailure(span, err, "failed to fetch schedule")
	}
	return schedule, nil
}

type ScheduleShortLesson struct {
	ScheduleItemID int64  `json:"schedule_item_id"`
	SubjectName    string `json:"subject_name"`
	LessonType     string `json:"lesson_type"`
	BeginTime      string `json:"begin_time"`
	EndTime        string `json:"end_time"`
}

type ScheduleShortDay struct {
	Date    IsoDate               `json:"date"`
	Lessons []ScheduleShortLesson `json:"lessons"`
}

type scheduleShortEnvelope struct {
	Payload []ScheduleShortDay `json:"payload"`
}

// GetScheduleShort fetches the compact timetable for several days at
// once.
func (c *Client) GetScheduleShort(ctx context.Context, dates []time.Time) ([]ScheduleShortDay, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetScheduleShort")
	defer span.End()

	headers, err := c.mobileHeaders(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	formatted := make([]string, len(dates))
	for i, date := range dates {
		formatted[i] = timezone.FormatDay(date)
	}

	var envelope scheduleShortEnvelope
	err = c.get(ctx, c.family+"/api/family/mobile/v1/schedule/short/", headers, map[string]string{
		"student_id": id,
		"dates":      strings.Join(formatted, ","),
	}, &envelope)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch schedule")
	}
	return envelope.Payload, nil
}

// TeamsLink is a video call link attached to a remote lesson.
type TeamsLink struct {
	ScheduledLessonID int64  `json:"scheduled_lesson_id"`
	Link              string `json:"link"`
	Provider          string `json:"provider"`
}

// GetTeamsLinks collects video call links for every remote lesson on
// the given day. Lessons without a published link are skipped.
func (c *Client) GetTeamsLinks(ctx context.Context, date time.Time) ([]TeamsLink, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetTeamsLinks")
	defer span.End()

	schedule, err := c.GetSchedule(ctx, date)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch schedule")
	}

	headers, err := c.coreHeaders(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	var mutex sync.Mutex
	var links []TeamsLink

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(4)

	for _, activity := range schedule.Activities {
		if activity.Type != "LESSON" || activity.Lesson.LessonType != "REMOTE" {
			continue
		}
		lessonID := activity.Lesson.ScheduleItemID

		group.Go(func() error {
			var link TeamsLink
			err := c.get(ctx, c.core+"/vcs/links", headers, map[string]string{
				"scheduled_lesson_id": strconv.FormatInt(lessonID, 10),
			}, &link)
			if err != nil {
				return err
			}
			if link.Link == "" {
				return nil
			}
			link.ScheduledLessonID = lessonID

			mutex.Lock()
			links = append(links, link)
			mutex.Unlock()
			return nil
		})
	}

	err = group.Wait()
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch call links")
	}
	return links, nil
}
