package dnevnik

import (
	"context"
	"strconv"
	"strings"
	"time"

	"dnevnik-sdk/lib/markutil"
	"dnevnik-sdk/lib/timezone"
)

type MarkGrade struct {
	Origin  string  `json:"origin"`
	Five    float64 `json:"five"`
	Hundred float64 `json:"hundred"`
}

type Mark struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Grade           MarkGrade `json:"grade"`
	GradeSystemType string    `json:"grade_system_type"`
	Weight          int       `json:"weight"`
	Comment         string    `json:"comment"`
	ControlForm     string    `json:"control_form_name"`
	SubjectID       int64     `json:"subject_id"`
	StudentID       int64     `json:"student_profile_id"`
	IsExam          bool      `json:"is_exam"`
	IsPoint         bool      `json:"is_point"`

	Date      DottedDate     `json:"date"`
	PointDate DottedDate     `json:"point_date"`
	CreatedAt DottedDateTime `json:"created_at"`
	UpdatedAt DottedDateTime `json:"updated_at"`
}

// GetMarks lists marks created in the given date range, inclusive.
func (c *Client) GetMarks(ctx context.Context, from, to time.Time) ([]Mark, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetMarks")
	defer span.End()

	headers, err := c.coreHeaders(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	var marks []Mark
	err = c.get(ctx, c.core+"/core/api/marks", headers, map[string]string{
		"created_at_from":    timezone.FormatDayDotted(from),
		"created_at_to":      timezone.FormatDayDotted(to),
		"student_profile_id": id,
	}, &marks)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch marks")
	}
	return marks, nil
}

type Subject struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ExamName  string `json:"exam_name"`
	SubjectID int64  `json:"subject_group_id"`
}

// GetSubjects resolves subject ids to their descriptions.
func (c *Client) GetSubjects(ctx context.Context, ids []int64) ([]Subject, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetSubjects")
	defer span.End()

	headers, err := c.coreHeaders(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	joined := make([]string, len(ids))
	for i, id := range ids {
		joined[i] = strconv.FormatInt(id, 10)
	}

	var subjects []Subject
	err = c.get(ctx, c.core+"/core/api/subjects", headers, map[string]string{
		"ids": strings.Join(joined, ","),
	}, &subjects)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch subjects")
	}
	return subjects, nil
}

type PeriodMarkValue struct {
	Five    float64 `json:"five"`
	Origin  string  `json:"origin"`
	Hundred float64 `json:"hundred"`
}

type PeriodMark struct {
	ID     int64             `json:"id"`
	Weight int               `json:"weight"`
	Values []PeriodMarkValue `json:"values"`
}

type MarkPeriod struct {
	Name      string       `json:"name"`
	Start     IsoDate      `json:"start_iso"`
	End       IsoDate      `json:"end_iso"`
	AvgFive   string       `json:"avg_five"`
	FinalMark string       `json:"final_mark"`
	Marks     []PeriodMark `json:"marks"`
}

// SubjectProgress is one row of the progress report: a subject with
// its per-period mark history.
type SubjectProgress struct {
	SubjectName string       `json:"subject_name"`
	SubjectID   int64        `json:"subject_id"`
	Periods     []MarkPeriod `json:"periods"`
}

func (c *Client) progressReport(ctx context.Context) ([]SubjectProgress, error) {
	year, err := c.CurrentAcademicYear(ctx)
	if err != nil {
		return nil, err
	}

	headers, err := c.coreHeaders(ctx)
	if err != nil {
		return nil, err
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return nil, err
	}

	var report []SubjectProgress
	err = c.get(ctx, c.core+"/reports/api/progress/json", headers, map[string]string{
		"academic_year_id":   strconv.FormatInt(year.ID, 10),
		"student_profile_id": id,
	}, &report)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// GetPerPeriodMarks returns the progress report for the current
// academic year: every subject with its full per-period mark history.
func (c *Client) GetPerPeriodMarks(ctx context.Context) ([]SubjectProgress, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetPerPeriodMarks")
	defer span.End()

	report, err := c.progressReport(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch progress report")
	}
	return report, nil
}

type SubjectAverage struct {
	Name string  `json:"name"`
	Mark float64 `json:"mark"`
}

// GetAverageMarks computes the weighted average mark per subject over
// the latest period of the current academic year. Subjects without a
// single period are skipped; subjects without marks average to zero.
func (c *Client) GetAverageMarks(ctx context.Context) ([]SubjectAverage, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetAverageMarks")
	defer span.End()

	report, err := c.progressReport(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch progress report")
	}

	var averages []SubjectAverage
	for _, subject := range report {
		if len(subject.Periods) == 0 {
			continue
		}
		period := subject.Periods[len(subject.Periods)-1]

		var weighted []markutil.WeightedMark
		for _, mark := range period.Marks {
			if len(mark.Values) == 0 {
				continue
			}
			weighted = append(weighted, markutil.WeightedMark{
				Mark:   mark.Values[0].Five,
				Weight: mark.Weight,
			})
		}

		averages = append(averages, SubjectAverage{
			Name: subject.SubjectName,
			Mark: markutil.Average(markutil.ExpandWeighted(weighted)),
		})
	}
	return averages, nil
}
