package enrollment

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("term enrollment")
	ErrNoData   = errors.New("no enrollment data available")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateEnrollment(ctx context.Context, te TermEnrollment) (TermEnrollment, error)
		FilterEnrollments(ctx context.Context, filter Filter) ([]TermEnrollment, error)
		GetEnrollmentByID(ctx context.Context, id string) (TermEnrollment, error)
		UpdateEnrollment(ctx context.Context, te TermEnrollment) (TermEnrollment, error)
		DeleteEnrollment(ctx context.Context, id string) error

		QueryTrends(ctx context.Context, schoolID string) ([]Trend, error)
		QuerySeasonalPatterns(ctx context.Context, schoolID string) ([]SeasonalPattern, error)
		QueryForecasts(ctx context.Context, schoolID string) ([]Forecast, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ne NewTermEnrollment) (TermEnrollment, error) {
	now := nowFunc().UTC()
	te := enrollmentFrom(ne)
	te.CreatedAt = now
	te.UpdatedAt = now
	return svc.repo.CreateEnrollment(ctx, te)
}

func (svc *Service) List(ctx context.Context, filter Filter, ordering []core.Ordering) ([]TermEnrollment, error) {
	records, err := svc.repo.FilterEnrollments(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering enrollments")
	}
	if err := core.SortSlice(records, ordering, Orderings); err != nil {
		return nil, err
	}
	return records, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (TermEnrollment, error) {
	return svc.repo.GetEnrollmentByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, ne NewTermEnrollment) (TermEnrollment, error) {
	orig, err := svc.repo.GetEnrollmentByID(ctx, id)
	if err != nil {
		return TermEnrollment{}, err
	}
	te := enrollmentFrom(ne)
	te.ID = orig.ID
	te.CreatedAt = orig.CreatedAt
	te.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateEnrollment(ctx, te)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteEnrollment(ctx, id)
}

// Stats compares the two most recently created term records.
// ErrNoData is returned when there is no record at all.
func (svc *Service) Stats(ctx context.Context, filter Filter) (Stats, error) {
	records, err := svc.repo.FilterEnrollments(ctx, filter)
	if err != nil {
		return Stats{}, errors.Wrap(err, "filtering enrollments")
	}
	return ComputeStats(records)
}

// ComputeStats is Stats over an already fetched set of records.
func ComputeStats(records []TermEnrollment) (Stats, error) {
	if len(records) == 0 {
		return Stats{}, ErrNoData
	}
	sorted := append([]TermEnrollment(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	current := sorted[0]
	stats := Stats{CurrentTerm: summarize(current)}
	if len(sorted) > 1 {
		previous := summarize(sorted[1])
		stats.PreviousTerm = &previous
		stats.TermOverTermGrowth = Growth(current.TotalStudents, previous.TotalEnrollment)
	}
	return stats, nil
}

func (svc *Service) Trends(ctx context.Context, schoolID string) ([]Trend, error) {
	return svc.repo.QueryTrends(ctx, schoolID)
}

func (svc *Service) SeasonalPatterns(ctx context.Context, schoolID string) ([]SeasonalPattern, error) {
	return svc.repo.QuerySeasonalPatterns(ctx, schoolID)
}

func (svc *Service) Forecasts(ctx context.Context, schoolID string) ([]Forecast, error) {
	return svc.repo.QueryForecasts(ctx, schoolID)
}

func (svc *Service) YearOverYear(ctx context.Context, schoolID string) ([]YearOverYear, error) {
	trends, err := svc.repo.QueryTrends(ctx, schoolID)
	if err != nil {
		return nil, errors.Wrap(err, "querying trends")
	}
	return ComputeYearOverYear(trends), nil
}

func enrollmentFrom(ne NewTermEnrollment) TermEnrollment {
	return TermEnrollment{
		SchoolID:             ne.SchoolID,
		AcademicYear:         ne.AcademicYear,
		Term:                 ne.Term,
		TotalStudents:        Total(ne.MaleStudents, ne.FemaleStudents),
		MaleStudents:         ne.MaleStudents,
		FemaleStudents:       ne.FemaleStudents,
		NewAdmissions:        ne.NewAdmissions,
		Withdrawals:          ne.Withdrawals,
		SpecialNeedsStudents: ne.SpecialNeedsStudents,
	}
}

// LatestBySchool returns the most recently created term record of every school.
func (svc *Service) LatestBySchool(ctx context.Context) (map[string]TermEnrollment, error) {
	records, err := svc.repo.FilterEnrollments(ctx, Filter{})
	if err != nil {
		return nil, errors.Wrap(err, "filtering enrollments")
	}
	return Latest(records), nil
}

// Latest keeps the most recently created record per school.
func Latest(records []TermEnrollment) map[string]TermEnrollment {
	latest := make(map[string]TermEnrollment)
	for _, te := range records {
		if cur, ok := latest[te.SchoolID]; !ok || te.CreatedAt.After(cur.CreatedAt) {
			latest[te.SchoolID] = te
		}
	}
	return latest
}
