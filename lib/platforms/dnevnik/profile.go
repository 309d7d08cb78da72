package dnevnik

import (
	"context"
	"net/http"
)

// ProfileOptions toggles the expensive expansions of the core student
// profile. Everything defaults to off.
type ProfileOptions struct {
	WithGroups           bool
	WithParents          bool
	WithAssignments      bool
	WithEcAttendances    bool
	WithAeAttendances    bool
	WithHomeBasedPeriods bool
	WithLessonComments   bool
	WithAttendances      bool
	WithFinalMarks       bool
	WithMarks            bool
	WithSubjects         bool
	WithLessonInfo       bool
}

// queryParams includes only the enabled expansions, matching what the
// portal's own web client sends.
func (o ProfileOptions) queryParams() map[string]string {
	flags := map[string]bool{
		"with_groups":             o.WithGroups,
		"with_parents":            o.WithParents,
		"with_assignments":        o.WithAssignments,
		"with_ec_attendances":     o.WithEcAttendances,
		"with_ae_attendances":     o.WithAeAttendances,
		"with_home_based_periods": o.WithHomeBasedPeriods,
		"with_lesson_comments":    o.WithLessonComments,
		"with_attendances":        o.WithAttendances,
		"with_final_marks":        o.WithFinalMarks,
		"with_marks":              o.WithMarks,
		"with_subjects":           o.WithSubjects,
		"with_lesson_info":        o.WithLessonInfo,
	}
	params := map[string]string{}
	for key, enabled := range flags {
		if enabled {
			params[key] = "true"
		}
	}
	return params
}

type ClassUnit struct {
	ID        int64  `json:"id"`
	ClassID   int64  `json:"class_level_id"`
	Name      string `json:"name"`
	HomeBased bool   `json:"home_based"`
}

type Curricula struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Parent struct {
	ID           int64          `json:"id"`
	UserID       int64          `json:"user_id"`
	TypeID       int64          `json:"type_id"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	MiddleName   string         `json:"middle_name"`
	LastSignInAt DottedDateTime `json:"last_sign_in_at"`
}

type ProfileGroup struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	SubjectID int64      `json:"subject_id"`
	BeginDate DottedDate `json:"begin_date"`
	EndDate   DottedDate `json:"end_date"`
}

type FinalMark struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Value     string         `json:"value"`
	GradeID   int64          `json:"grade_id"`
	SubjectID int64          `json:"subject_id"`
	CreatedAt DottedDateTime `json:"created_at"`
	UpdatedAt DottedDateTime `json:"updated_at"`
	DeletedAt DottedDateTime `json:"deleted_at"`
}

// Profile is the core api's student profile.
type Profile struct {
	ID             int64      `json:"id"`
	PersonID       string     `json:"person_id"`
	SchoolID       int64      `json:"school_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	MiddleName     string     `json:"middle_name"`
	ShortName      string     `json:"short_name"`
	UserID         int64      `json:"user_id"`
	Study          string     `json:"study_mode_id"`
	Sex            string     `json:"sex"`
	IsppAccount    int64      `json:"ispp_account"`
	LeftOnRegistry DottedDate `json:"left_on_registry"`

	CreatedAt     DottedDateTime `json:"created_at"`
	UpdatedAt     DottedDateTime `json:"updated_at"`
	DeletedAt     DottedDateTime `json:"deleted_at"`
	BirthDate     DottedDate     `json:"birth_date"`
	LeftOn        DottedDate     `json:"left_on"`
	EnlistedOn    DottedDate     `json:"enlisted_on"`
	MigrationDate DottedDate     `json:"migration_date"`
	LastSignInAt  DottedDateTime `json:"last_sign_in_at"`

	ClassUnit  ClassUnit      `json:"class_unit"`
	Curricula  Curricula      `json:"curricula"`
	Parents    []Parent       `json:"parents"`
	Groups     []ProfileGroup `json:"groups"`
	FinalMarks []FinalMark    `json:"final_marks"`
	Marks      []Mark         `json:"marks"`
}

// GetProfile fetches the student profile from the legacy core api.
func (c *Client) GetProfile(ctx context.Context, opts ProfileOptions) (Profile, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetProfile")
	defer span.End()

	headers, err := c.coreHeaders(ctx)
	if err != nil {
		return Profile{}, recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return Profile{}, recordFailure(span, err, "missing credentials")
	}

	var profile Profile
	err = c.get(ctx, c.core+"/core/api/student_profiles/"+id, headers, opts.queryParams(), &profile)
	if err != nil {
		return Profile{}, recordFailure(span, err, "failed to fetch profile")
	}
	return profile, nil
}

type Representative struct {
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	MiddleName string     `json:"middle_name"`
	BirthDate  DottedDate `json:"birth_date"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	TypeID     int64      `json:"type_id"`
}

type Child struct {
	FirstName       string           `json:"first_name"`
	LastName        string           `json:"last_name"`
	MiddleName      string           `json:"middle_name"`
	BirthDate       DottedDate       `json:"birth_date"`
	EnrollmentDate  DottedDate       `json:"enrollment_date"`
	ContractID      int64            `json:"contract_id"`
	ContingentGUID  string           `json:"contingent_guid"`
	ClassName       string           `json:"class_name"`
	SchoolName      string           `json:"school"`
	Representatives []Representative `json:"representatives"`
}

type PersonInfo struct {
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	MiddleName string     `json:"middle_name"`
	BirthDate  DottedDate `json:"birth_date"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Type       string     `json:"type"`
}

// ProfileV2 is the family web api's view of the account: the logged-in
// person plus the children visible to it.
type ProfileV2 struct {
	Profile  PersonInfo `json:"profile"`
	Children []Child    `json:"children"`
	Hash     string     `json:"hash"`
}

// GetProfileV2 fetches the account profile from the family web api.
func (c *Client) GetProfileV2(ctx context.Context) (ProfileV2, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetProfileV2")
	defer span.End()

	headers, err := c.webHeaders(ctx)
	if err != nil {
		return ProfileV2{}, recordFailure(span, err, "missing credentials")
	}

	var profile ProfileV2
	err = c.get(ctx, c.family+"/api/family/web/v1/profile/", headers, nil, &profile)
	if err != nil {
		return ProfileV2{}, recordFailure(span, err, "failed to fetch profile")
	}
	return profile, nil
}

type PersonDetails struct {
	PersonID   string     `json:"person_id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	MiddleName string     `json:"patronymic"`
	BirthDate  DottedDate `json:"birthdate"`
	SNILS      string     `json:"snils"`
	Documents  []Document `json:"documents"`
	Addresses  []Address  `json:"addresses"`
}

type Document struct {
	DocumentTypeID int64  `json:"document_type_id"`
	DocumentType   string `json:"document_type"`
	Series         string `json:"series"`
	Number         string `json:"number"`
	Issuer         string `json:"issuer"`
}

type Address struct {
	Address string `json:"address"`
	Type    string `json:"address_type"`
}

// GetPersonDetails fetches registry details for a person. The guid
// comes from Profile.PersonID.
func (c *Client) GetPersonDetails(ctx context.Context, personGUID string) (PersonDetails, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetPersonDetails")
	defer span.End()

	headers, err := c.mobileHeaders(ctx)
	if err != nil {
		return PersonDetails{}, recordFailure(span, err, "missing credentials")
	}

	id, err := c.auth.StudentID(ctx)
	if err != nil {
		return PersonDetails{}, recordFailure(span, err, "missing credentials")
	}

	var details PersonDetails
	err = c.get(ctx, c.family+"/api/family/mobile/v1/person-details/", headers, map[string]string{
		"contingent_guid": personGUID,
		"profile_id":      id,
	}, &details)
	if err != nil {
		return PersonDetails{}, recordFailure(span, err, "failed to fetch person details")
	}
	return details, nil
}

type Session struct {
	ID          int64  `json:"id"`
	PersonID    string `json:"person_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	MiddleName  string `json:"middle_name"`
	AuthToken   string `json:"authentication_token"`
	ProfileID   int64  `json:"profile_id"`
	ProfileType string `json:"profile_type"`
}

// GetSession exchanges the token for session info on the lms api.
func (c *Client) GetSession(ctx context.Context) (Session, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetSession")
	defer span.End()

	token, err := c.auth.Token(ctx)
	if err != nil {
		return Session{}, recordFailure(span, err, "missing credentials")
	}

	var session Session
	err = c.do(ctx, http.MethodPost, c.core+"/lms/api/sessions", map[string]string{
		"Cookie": "auth_token=" + token + ";",
	}, nil, map[string]string{"auth_token": token}, &session)
	if err != nil {
		return Session{}, recordFailure(span, err, "failed to fetch session")
	}
	return session, nil
}
