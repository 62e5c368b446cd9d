// Package dashboard computes the overview cards of the home page.
package dashboard

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/maintenance"
	"github.com/trezcool/edudash/core/performance"
	"github.com/trezcool/edudash/core/school"
)

const studentsPerTeacher = 25

// Views
const (
	ViewMap   = "map"
	ViewTable = "table"
)

type (
	// Filter holds the dashboard filters. Location fields are case-insensitive substring matches.
	Filter struct {
		LGA                 string `json:"lga"`
		State               string `json:"state"`
		SenatorialDistrict  string `json:"senatorial_district"`
		FederalConstituency string `json:"federal_constituency"`
		Year                int    `json:"year"`
		SchoolType          string `json:"school_type"`
		SchoolOwnership     string `json:"school_ownership"`
	}

	TermEnrollment struct {
		Total  int     `json:"total"`
		Growth float64 `json:"growth"`
	}

	Stats struct {
		TotalSchools          int                   `json:"totalSchools"`
		TotalStudents         int                   `json:"totalStudents"`
		CurrentTermEnrollment TermEnrollment        `json:"currentTermEnrollment"`
		TotalTeachers         int                   `json:"totalTeachers"`
		AveragePerformance    float64               `json:"averagePerformance"`
		MaintenanceAlerts     int                   `json:"maintenanceAlerts"`
		RecentActivities      []maintenance.Request `json:"recentActivities"`
		Schools               []school.School       `json:"schools"`
	}
)

var _ core.Filter = (*Filter)(nil)

func (f *Filter) Set(key, value string) (err error) {
	value = core.CleanString(value)
	switch key {
	case "lga":
		f.LGA = value
	case "state":
		f.State = value
	case "senatorial_district":
		f.SenatorialDistrict = value
	case "federal_constituency":
		f.FederalConstituency = value
	case "year":
		f.Year, err = core.ParseFilterInt(key, value)
	case "school_type":
		f.SchoolType, err = core.OneOf(key, value, school.Types)
	case "school_ownership":
		f.SchoolOwnership, err = core.OneOf(key, value, school.Ownerships)
	default:
		err = core.NewUnknownFilterError(key)
	}
	return err
}

func (f Filter) schoolFilter() school.Filter {
	return school.Filter{
		Type:                f.SchoolType,
		Ownership:           f.SchoolOwnership,
		LGA:                 f.LGA,
		State:               f.State,
		SenatorialDistrict:  f.SenatorialDistrict,
		FederalConstituency: f.FederalConstituency,
	}
}

func FilterPanel() []core.FilterField {
	return []core.FilterField{
		{Key: "state", Label: "State", Type: core.FieldText},
		{Key: "lga", Label: "LGA", Type: core.FieldText},
		{Key: "senatorial_district", Label: "Senatorial District", Type: core.FieldText},
		{Key: "federal_constituency", Label: "Federal Constituency", Type: core.FieldText},
		{Key: "year", Label: "Year", Type: core.FieldText},
		{Key: "school_type", Label: "School Type", Type: core.FieldSelect, Options: core.Options(school.Types...)},
		{Key: "school_ownership", Label: "Ownership", Type: core.FieldSelect, Options: core.Options(school.Ownerships...)},
	}
}

type (
	SchoolSource interface {
		List(ctx context.Context, filter school.Filter, ordering []core.Ordering) ([]school.School, error)
	}

	PerformanceSource interface {
		List(ctx context.Context, schoolID string) ([]performance.Record, error)
	}

	MaintenanceSource interface {
		List(ctx context.Context, schoolID string) ([]maintenance.Request, error)
	}

	EnrollmentSource interface {
		List(ctx context.Context, filter enrollment.Filter, ordering []core.Ordering) ([]enrollment.TermEnrollment, error)
	}

	Service struct {
		schools     SchoolSource
		performance PerformanceSource
		maintenance MaintenanceSource
		enrollments EnrollmentSource
	}
)

func NewService(schools SchoolSource, perf PerformanceSource, maint MaintenanceSource, enrollments EnrollmentSource) *Service {
	return &Service{schools: schools, performance: perf, maintenance: maint, enrollments: enrollments}
}

// Stats computes the dashboard cards over the schools passing filter and the records tied to them.
func (svc *Service) Stats(ctx context.Context, filter Filter) (Stats, error) {
	schools, err := svc.schools.List(ctx, filter.schoolFilter(), nil)
	if err != nil {
		return Stats{}, errors.Wrap(err, "listing schools")
	}
	records, err := svc.performance.List(ctx, "")
	if err != nil {
		return Stats{}, errors.Wrap(err, "listing performance")
	}
	requests, err := svc.maintenance.List(ctx, "")
	if err != nil {
		return Stats{}, errors.Wrap(err, "listing maintenance requests")
	}
	terms, err := svc.enrollments.List(ctx, enrollment.Filter{}, nil)
	if err != nil {
		return Stats{}, errors.Wrap(err, "listing enrollments")
	}
	return ComputeStats(filter, schools, records, requests, terms), nil
}

// ComputeStats keeps the records of the given schools (and of filter.Year for performance) and
// aggregates them. Missing enrollment data yields a zero current term.
func ComputeStats(filter Filter, schools []school.School, records []performance.Record, requests []maintenance.Request, terms []enrollment.TermEnrollment) Stats {
	ids := make(map[string]bool, len(schools))
	for _, s := range schools {
		ids[s.ID] = true
	}

	stats := Stats{
		TotalSchools:     len(schools),
		RecentActivities: make([]maintenance.Request, 0),
		Schools:          schools,
	}

	var rates float64
	n := 0
	for _, r := range records {
		if !ids[r.SchoolID] || (filter.Year != 0 && r.Year != filter.Year) {
			continue
		}
		stats.TotalStudents += r.TotalStudents
		rates += r.PassRate
		n++
	}
	if n > 0 {
		stats.AveragePerformance = rates / float64(n)
	}
	stats.TotalTeachers = int(math.Round(float64(stats.TotalStudents) / studentsPerTeacher))

	for _, req := range requests {
		if ids[req.SchoolID] {
			stats.RecentActivities = append(stats.RecentActivities, req)
		}
	}
	stats.MaintenanceAlerts = maintenance.OpenCount(stats.RecentActivities)

	kept := make([]enrollment.TermEnrollment, 0, len(terms))
	for _, te := range terms {
		if ids[te.SchoolID] {
			kept = append(kept, te)
		}
	}
	if es, err := enrollment.ComputeStats(kept); err == nil {
		stats.CurrentTermEnrollment = TermEnrollment{Total: es.CurrentTerm.TotalEnrollment, Growth: es.TermOverTermGrowth}
	}
	return stats
}
