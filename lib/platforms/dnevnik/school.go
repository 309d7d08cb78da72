package dnevnik

import (
	"context"
	"strconv"
)

type Building struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	CreatedAt IsoDate `json:"created_at"`
	UpdatedAt IsoDate `json:"updated_at"`
	DeletedAt IsoDate `json:"deleted_at"`
}

type Room struct {
	ID         int64   `json:"id"`
	Number     string  `json:"number"`
	Name       string  `json:"name"`
	BuildingID int64   `json:"building_id"`
	CreatedAt  IsoDate `json:"created_at"`
	UpdatedAt  IsoDate `json:"updated_at"`
	DeletedAt  IsoDate `json:"deleted_at"`
}

// TeacherProfile is the core api's staff record.
type TeacherProfile struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"user_id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	MiddleName string     `json:"middle_name"`
	SchoolID   int64      `json:"school_id"`
	Comment    string     `json:"comment"`
	Buildings  []Building `json:"buildings"`
	Rooms      []Room     `json:"rooms"`
	CreatedAt  IsoDate    `json:"created_at"`
	UpdatedAt  IsoDate    `json:"updated_at"`
	DeletedAt  IsoDate    `json:"deleted_at"`
}

// GetTeacher fetches a teacher profile by id.
func (c *Client) GetTeacher(ctx context.Context, teacherID int64) (TeacherProfile, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetTeacher")
	defer span.End()

	headers, err := c.coreHeaders(ctx)
	if err != nil {
		return TeacherProfile{}, recordFailure(span, err, "missing credentials")
	}

	var teacher TeacherProfile
	err = c.get(ctx, c.core+"/core/api/teacher_profiles/"+strconv.FormatInt(teacherID, 10), headers, nil, &teacher)
	if err != nil {
		return TeacherProfile{}, recordFailure(span, err, "failed to fetch teacher")
	}
	return teacher, nil
}

type SchoolInfo struct {
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	Principal string `json:"principal"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Site      string `json:"site"`
	Teachers  []struct {
		Name     string   `json:"name"`
		Subjects []string `json:"subjects"`
	} `json:"teachers"`
	Branches []struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		IsMain  bool   `json:"is_main_building"`
	} `json:"branches"`
}

// GetSchoolInfo fetches the school summary page. The ids come from
// Profile.ClassUnit.ID and Profile.SchoolID.
func (c *Client) GetSchoolInfo(ctx context.Context, classUnitID, schoolID int64) (SchoolInfo, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetSchoolInfo")
	defer span.End()

	headers, err := c.webHeaders(ctx)
	if err != nil {
		return SchoolInfo{}, recordFailure(span, err, "missing credentials")
	}

	token, err := c.auth.Token(ctx)
	if err != nil {
		return SchoolInfo{}, recordFailure(span, err, "missing credentials")
	}
	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return SchoolInfo{}, recordFailure(span, err, "missing credentials")
	}
	headers["authorization"] = token
	headers["profile-type"] = "student"
	headers["profile-id"] = id

	var info SchoolInfo
	err = c.get(ctx, c.family+"/api/family/web/v1/school_info", headers, map[string]string{
		"class_unit_id": strconv.FormatInt(classUnitID, 10),
		"school_id":     strconv.FormatInt(schoolID, 10),
	}, &info)
	if err != nil {
		return SchoolInfo{}, recordFailure(span, err, "failed to fetch school info")
	}
	return info, nil
}

type CurriculumSubject struct {
	SubjectID   int64  `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	TotalHours  int    `json:"total_hours"`
	PassedHours int    `json:"passed_hours"`
	MaxHours    int    `json:"max_hours_per_week"`
}

type Curriculum struct {
	ID       int64               `json:"id"`
	Title    string              `json:"title"`
	Subjects []CurriculumSubject `json:"subjects"`
}

// GetProgress fetches curriculum completion. The curriculum id comes
// from Profile.Curricula.ID.
func (c *Client) GetProgress(ctx context.Context, curriculumID int64) (Curriculum, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetProgress")
	defer span.End()

	headers, err := c.coreHeaders(ctx)
	if err != nil {
		return Curriculum{}, recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return Curriculum{}, recordFailure(span, err, "missing credentials")
	}

	var curriculum Curriculum
	err = c.get(ctx, c.core+"/mobile/api/programs/parallel_curriculum/"+strconv.FormatInt(curriculumID, 10), headers, map[string]string{
		"student_id": id,
	}, &curriculum)
	if err != nil {
		return Curriculum{}, recordFailure(span, err, "failed to fetch curriculum progress")
	}
	return curriculum, nil
}

type AdditionalEducationGroup struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ProgramName string `json:"program_of_additional_education_name"`
	TeacherName string `json:"teacher_name"`
	Address     string `json:"address"`
	Schedule    string `json:"schedule"`
}

// GetAdditionalEducationGroups lists extracurricular groups the
// student is enrolled in.
func (c *Client) GetAdditionalEducationGroups(ctx context.Context) ([]AdditionalEducationGroup, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetAdditionalEducationGroups")
	defer span.End()

	headers, err := c.coreHeaders(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	var groups []AdditionalEducationGroup
	err = c.get(ctx, c.core+"/ae/api/ae_groups", headers, map[string]string{
		"student_ids": id,
	}, &groups)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch groups")
	}
	return groups, nil
}

type TimePeriod struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	BeginDate IsoDate `json:"begin_date"`
	EndDate   IsoDate `json:"end_date"`
}

type PeriodsSchedule struct {
	ID      int64        `json:"id"`
	Name    string       `json:"name"`
	Periods []TimePeriod `json:"periods"`
}

// GetTimePeriods lists grading period schedules for the current
// academic year.
func (c *Client) GetTimePeriods(ctx context.Context) ([]PeriodsSchedule, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetTimePeriods")
	defer span.End()

	year, err := c.CurrentAcademicYear(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "failed to resolve academic year")
	}

	headers, err := c.coreHeaders(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return nil, recordFailure(span, err, "missing credentials")
	}

	var schedules []PeriodsSchedule
	err = c.get(ctx, c.core+"/core/api/periods_schedules", headers, map[string]string{
		"academic_year_id": strconv.FormatInt(year.ID, 10),
		"student_id":       id,
	}, &schedules)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch periods")
	}
	return schedules, nil
}
