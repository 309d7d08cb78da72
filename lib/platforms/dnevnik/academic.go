package dnevnik

import (
	"context"
	"fmt"
)

type AcademicYear struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	BeginDate   ShortYearDate `json:"begin_date"`
	EndDate     ShortYearDate `json:"end_date"`
	CurrentYear bool          `json:"current_year"`
}

// GetAcademicYears lists all academic years known to the portal. The
// endpoint needs no authentication.
func (c *Client) GetAcademicYears(ctx context.Context) ([]AcademicYear, error) {
	ctx, span := tracer.Start(ctx, "dnevnik:GetAcademicYears")
	defer span.End()

	var years []AcademicYear
	err := c.get(ctx, c.core+"/core/api/academic_years", nil, nil, &years)
	if err != nil {
		return nil, recordFailure(span, err, "failed to fetch academic years")
	}
	return years, nil
}

// CurrentAcademicYear finds the year the portal marks as current.
func (c *Client) CurrentAcademicYear(ctx context.Context) (AcademicYear, error) {
	years, err := c.GetAcademicYears(ctx)
	if err != nil {
		return AcademicYear{}, err
	}
	for _, year := range years {
		if year.CurrentYear {
			return year, nil
		}
	}
	return AcademicYear{}, fmt.Errorf("no current academic year")
}
