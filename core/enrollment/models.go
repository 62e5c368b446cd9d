package enrollment

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edudash/core"
)

// Terms
const (
	TermFirst  = "first"
	TermSecond = "second"
	TermThird  = "third"
)

var Terms = []string{TermFirst, TermSecond, TermThird}

type TermEnrollment struct {
	ID                   string    `json:"id"`
	SchoolID             string    `json:"school_id"`
	AcademicYear         string    `json:"academic_year"` // "2023/2024"
	Term                 string    `json:"term"`
	TotalStudents        int       `json:"total_students"`
	MaleStudents         int       `json:"male_students"`
	FemaleStudents       int       `json:"female_students"`
	NewAdmissions        int       `json:"new_admissions"`
	Withdrawals          int       `json:"withdrawals"`
	SpecialNeedsStudents int       `json:"special_needs_students"`
	CreatedAt            time.Time `json:"created_at"` // UTC
	UpdatedAt            time.Time `json:"updated_at"` // UTC
}

// NewTermEnrollment is the term enrollment form payload, for both create and update.
// TotalStudents is always derived from the male and female counts.
type NewTermEnrollment struct {
	SchoolID             string `json:"school_id" validate:"required"`
	AcademicYear         string `json:"academic_year" validate:"required,academic_year"`
	Term                 string `json:"term" validate:"required,oneof=first second third"`
	TotalStudents        int    `json:"total_students"`
	MaleStudents         int    `json:"male_students" validate:"min=0"`
	FemaleStudents       int    `json:"female_students" validate:"min=0"`
	NewAdmissions        int    `json:"new_admissions" validate:"min=0"`
	Withdrawals          int    `json:"withdrawals" validate:"min=0"`
	SpecialNeedsStudents int    `json:"special_needs_students" validate:"min=0,ltefield=TotalStudents"`
}

func (ne *NewTermEnrollment) Validate(validate *validator.Validate) error {
	ne.SchoolID = core.CleanString(ne.SchoolID)
	ne.AcademicYear = core.CleanString(ne.AcademicYear)
	ne.Term = core.CleanString(ne.Term, true /* lower */)
	ne.TotalStudents = Total(ne.MaleStudents, ne.FemaleStudents)
	return validate.Struct(ne)
}

// Total is the derived total_students of a term.
func Total(male, female int) int {
	return male + female
}

// Filter narrows term enrollments to one school.
type Filter struct {
	SchoolID string `json:"school_id"`
}

var _ core.Filter = (*Filter)(nil)

func (f *Filter) Set(key, value string) error {
	if key != "school_id" {
		return core.NewUnknownFilterError(key)
	}
	f.SchoolID = core.CleanString(value)
	return nil
}

// TermSummary identifies a term and its enrollment.
type TermSummary struct {
	Term            string `json:"term"`
	AcademicYear    string `json:"academic_year"`
	TotalEnrollment int    `json:"total_enrollment"`
}

type Stats struct {
	CurrentTerm        TermSummary  `json:"current_term"`
	PreviousTerm       *TermSummary `json:"previous_term"`
	TermOverTermGrowth float64      `json:"term_over_term_growth"`
}

func summarize(te TermEnrollment) TermSummary {
	return TermSummary{Term: te.Term, AcademicYear: te.AcademicYear, TotalEnrollment: te.TotalStudents}
}

// Growth is the percentage change from previous to current; 0 when previous is 0.
func Growth(current, previous int) float64 {
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// AcademicYears returns the academic year choices offered by the form:
// last year, this year and next year, relative to now.
func AcademicYears(now time.Time) []string {
	y := now.Year()
	return []string{
		fmt.Sprintf("%d/%d", y-1, y),
		fmt.Sprintf("%d/%d", y, y+1),
		fmt.Sprintf("%d/%d", y+1, y+2),
	}
}

var Orderings = map[string]core.Comparator[TermEnrollment]{
	"academic_year":  func(a, b TermEnrollment) int { return core.CompareStrings(a.AcademicYear, b.AcademicYear) },
	"term":           func(a, b TermEnrollment) int { return core.CompareNumbers(termIndex(a.Term), termIndex(b.Term)) },
	"total_students": func(a, b TermEnrollment) int { return core.CompareNumbers(a.TotalStudents, b.TotalStudents) },
	"created_at":     func(a, b TermEnrollment) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

func termIndex(term string) int {
	for i, t := range Terms {
		if t == term {
			return i
		}
	}
	return len(Terms)
}
