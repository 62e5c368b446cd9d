// Package demographics summarizes the student population of schools from their latest term enrollment.
package demographics

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/school"
	"github.com/trezcool/edudash/core/staff"
)

const (
	// students per teacher assumed for schools without recorded teachers
	defaultStudentsPerTeacher = 25

	// male/female split tolerated by the gender balance filter, relative to the larger group
	genderBalanceTolerance = .10
)

var typicalAge = map[string]float64{
	school.TypePrimary:   9,
	school.TypeSecondary: 15,
	school.TypeTertiary:  20,
}

type (
	SchoolDemographics struct {
		SchoolID             string  `json:"school_id"`
		SchoolName           string  `json:"school_name"`
		TotalStudents        int     `json:"total_students"`
		MaleStudents         int     `json:"male_students"`
		FemaleStudents       int     `json:"female_students"`
		SpecialNeedsStudents int     `json:"special_needs_students"`
		AverageAge           float64 `json:"average_age"`
		ClassSize            int     `json:"class_size"`
		Teachers             int     `json:"teachers"`
		Year                 int     `json:"year"`
	}

	Stats struct {
		TotalStudents        int                  `json:"total_students"`
		MaleStudents         int                  `json:"male_students"`
		FemaleStudents       int                  `json:"female_students"`
		GenderRatio          float64              `json:"gender_ratio"`
		SpecialNeedsStudents int                  `json:"special_needs_students"`
		SpecialNeedsStaff    int                  `json:"special_needs_staff"`
		TotalSchools         int                  `json:"total_schools"`
		AverageClassSize     float64              `json:"average_class_size"`
		StudentTeacherRatio  float64              `json:"student_teacher_ratio"`
		SchoolDemographics   []SchoolDemographics `json:"school_demographics"`
	}

	// Filter holds the demographics page filters.
	Filter struct {
		State           string `json:"state"`
		SchoolType      string `json:"school_type"`
		SchoolOwnership string `json:"school_ownership"`
		SpecialNeeds    bool   `json:"special_needs"`
		GenderBalance   bool   `json:"gender_balance"`
	}
)

var _ core.Filter = (*Filter)(nil)

func (f *Filter) Set(key, value string) (err error) {
	value = core.CleanString(value)
	switch key {
	case "state":
		f.State = value
	case "school_type":
		f.SchoolType, err = core.OneOf(key, value, school.Types)
	case "school_ownership":
		f.SchoolOwnership, err = core.OneOf(key, value, school.Ownerships)
	case "special_needs":
		f.SpecialNeeds, err = core.ParseFilterBool(key, value)
	case "gender_balance":
		f.GenderBalance, err = core.ParseFilterBool(key, value)
	default:
		err = core.NewUnknownFilterError(key)
	}
	return err
}

func (f Filter) matchSchool(s school.School) bool {
	return core.ContainsFold(s.State, f.State) &&
		(f.SchoolType == "" || s.Type == f.SchoolType) &&
		(f.SchoolOwnership == "" || s.Ownership == f.SchoolOwnership)
}

func (f Filter) matchRow(row SchoolDemographics) bool {
	if f.SpecialNeeds && row.SpecialNeedsStudents == 0 {
		return false
	}
	if f.GenderBalance && !Balanced(row.MaleStudents, row.FemaleStudents) {
		return false
	}
	return true
}

func FilterPanel() []core.FilterField {
	return []core.FilterField{
		{Key: "state", Label: "State", Type: core.FieldText},
		{Key: "school_type", Label: "School Type", Type: core.FieldSelect, Options: core.Options(school.Types...)},
		{Key: "school_ownership", Label: "Ownership", Type: core.FieldSelect, Options: core.Options(school.Ownerships...)},
		{Key: "special_needs", Label: "Special Needs", Type: core.FieldCheckbox},
		{Key: "gender_balance", Label: "Gender Balance", Type: core.FieldCheckbox},
	}
}

// Balanced reports whether the smaller group is within 10% of the larger one.
func Balanced(male, female int) bool {
	hi, lo := male, female
	if lo > hi {
		hi, lo = lo, hi
	}
	if hi == 0 {
		return true
	}
	return float64(hi-lo) <= float64(hi)*genderBalanceTolerance
}

var Orderings = map[string]core.Comparator[SchoolDemographics]{
	"school_name":            func(a, b SchoolDemographics) int { return core.CompareStrings(a.SchoolName, b.SchoolName) },
	"total_students":         func(a, b SchoolDemographics) int { return core.CompareNumbers(a.TotalStudents, b.TotalStudents) },
	"male_students":          func(a, b SchoolDemographics) int { return core.CompareNumbers(a.MaleStudents, b.MaleStudents) },
	"female_students":        func(a, b SchoolDemographics) int { return core.CompareNumbers(a.FemaleStudents, b.FemaleStudents) },
	"special_needs_students": func(a, b SchoolDemographics) int { return core.CompareNumbers(a.SpecialNeedsStudents, b.SpecialNeedsStudents) },
	"class_size":             func(a, b SchoolDemographics) int { return core.CompareNumbers(a.ClassSize, b.ClassSize) },
	"teachers":               func(a, b SchoolDemographics) int { return core.CompareNumbers(a.Teachers, b.Teachers) },
	"year":                   func(a, b SchoolDemographics) int { return core.CompareNumbers(a.Year, b.Year) },
}

type (
	SchoolSource interface {
		QueryAllSchools(ctx context.Context) ([]school.School, error)
	}

	EnrollmentSource interface {
		LatestBySchool(ctx context.Context) (map[string]enrollment.TermEnrollment, error)
	}

	StaffSource interface {
		List(ctx context.Context, filter staff.Filter, ordering []core.Ordering) ([]staff.Staff, error)
	}

	Service struct {
		schools     SchoolSource
		enrollments EnrollmentSource
		staff       StaffSource
	}
)

func NewService(schools SchoolSource, enrollments EnrollmentSource, members StaffSource) *Service {
	return &Service{schools: schools, enrollments: enrollments, staff: members}
}

func (svc *Service) Stats(ctx context.Context, filter Filter) (Stats, error) {
	schools, err := svc.schools.QueryAllSchools(ctx)
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying schools")
	}
	latest, err := svc.enrollments.LatestBySchool(ctx)
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying enrollments")
	}
	var members []staff.Staff
	if svc.staff != nil {
		if members, err = svc.staff.List(ctx, staff.Filter{}, nil); err != nil {
			return Stats{}, errors.Wrap(err, "listing staff")
		}
	}
	return ComputeStats(schools, latest, members, filter), nil
}

// ComputeStats builds one row per school having enrollment data and passing filter,
// then the totals over those rows.
func ComputeStats(schools []school.School, latest map[string]enrollment.TermEnrollment, members []staff.Staff, filter Filter) Stats {
	stats := Stats{SchoolDemographics: make([]SchoolDemographics, 0)}
	teachers := 0
	var classSizes float64
	for _, s := range schools {
		te, ok := latest[s.ID]
		if !ok || !filter.matchSchool(s) {
			continue
		}
		row := schoolRow(s, te, members)
		if !filter.matchRow(row) {
			continue
		}
		stats.SchoolDemographics = append(stats.SchoolDemographics, row)
		stats.TotalStudents += row.TotalStudents
		stats.MaleStudents += row.MaleStudents
		stats.FemaleStudents += row.FemaleStudents
		stats.SpecialNeedsStudents += row.SpecialNeedsStudents
		stats.SpecialNeedsStaff += specialNeedsStaff(s, members)
		teachers += row.Teachers
		classSizes += float64(row.ClassSize)
	}
	sort.SliceStable(stats.SchoolDemographics, func(i, j int) bool {
		return core.CompareStrings(stats.SchoolDemographics[i].SchoolName, stats.SchoolDemographics[j].SchoolName) < 0
	})

	stats.TotalSchools = len(stats.SchoolDemographics)
	if stats.FemaleStudents > 0 {
		stats.GenderRatio = core.Round(float64(stats.MaleStudents)/float64(stats.FemaleStudents), 2)
	}
	if stats.TotalSchools > 0 {
		stats.AverageClassSize = core.Round(classSizes/float64(stats.TotalSchools), 1)
	}
	if teachers > 0 {
		stats.StudentTeacherRatio = core.Round(float64(stats.TotalStudents)/float64(teachers), 1)
	}
	return stats
}

func schoolRow(s school.School, te enrollment.TermEnrollment, members []staff.Staff) SchoolDemographics {
	row := SchoolDemographics{
		SchoolID:             s.ID,
		SchoolName:           s.Name,
		TotalStudents:        te.TotalStudents,
		MaleStudents:         te.MaleStudents,
		FemaleStudents:       te.FemaleStudents,
		SpecialNeedsStudents: te.SpecialNeedsStudents,
		AverageAge:           typicalAge[s.Type],
		Year:                 te.CreatedAt.Year(),
	}
	for _, m := range members {
		if m.Role == staff.RoleTeacher && strings.EqualFold(m.School, s.Name) {
			row.Teachers++
		}
	}
	if row.Teachers == 0 {
		row.Teachers = int(math.Round(float64(te.TotalStudents) / defaultStudentsPerTeacher))
	}
	if row.Teachers > 0 {
		row.ClassSize = int(math.Round(float64(te.TotalStudents) / float64(row.Teachers)))
	}
	return row
}

func specialNeedsStaff(s school.School, members []staff.Staff) int {
	n := 0
	for _, m := range members {
		if !strings.EqualFold(m.School, s.Name) {
			continue
		}
		for _, spec := range m.Specializations {
			if core.ContainsFold(spec, "special") {
				n++
				break
			}
		}
	}
	return n
}
