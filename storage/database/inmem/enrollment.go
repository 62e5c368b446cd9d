package inmemdb

import (
	"context"

	"github.com/trezcool/edudash/core/enrollment"
)

type enrollmentRepository struct {
	db *DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil)

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db}
}

func (repo *enrollmentRepository) CreateEnrollment(ctx context.Context, te enrollment.TermEnrollment) (enrollment.TermEnrollment, error) {
	return addRow(ctx, repo.db, repo.db.enrollment, te, func(te *enrollment.TermEnrollment, id string) { te.ID = id })
}

func (repo *enrollmentRepository) FilterEnrollments(ctx context.Context, filter enrollment.Filter) ([]enrollment.TermEnrollment, error) {
	var keep func(enrollment.TermEnrollment) bool
	if filter.SchoolID != "" {
		keep = func(te enrollment.TermEnrollment) bool { return te.SchoolID == filter.SchoolID }
	}
	return listRows(ctx, repo.db, repo.db.enrollment, keep)
}

func (repo *enrollmentRepository) GetEnrollmentByID(ctx context.Context, id string) (enrollment.TermEnrollment, error) {
	return getRow(ctx, repo.db, repo.db.enrollment, id, enrollment.ErrNotFound)
}

func (repo *enrollmentRepository) UpdateEnrollment(ctx context.Context, te enrollment.TermEnrollment) (enrollment.TermEnrollment, error) {
	return replaceRow(ctx, repo.db, repo.db.enrollment, te.ID, te, enrollment.ErrNotFound)
}

func (repo *enrollmentRepository) DeleteEnrollment(ctx context.Context, id string) error {
	return deleteRow(ctx, repo.db, repo.db.enrollment, id, enrollment.ErrNotFound)
}

// The series below are read-only fixtures.

func (repo *enrollmentRepository) QueryTrends(ctx context.Context, schoolID string) ([]enrollment.Trend, error) {
	if err := repo.db.wait(ctx); err != nil {
		return nil, err
	}
	return bySchool(repo.db.trends, schoolID, func(t enrollment.Trend) string { return t.SchoolID }), nil
}

func (repo *enrollmentRepository) QuerySeasonalPatterns(ctx context.Context, schoolID string) ([]enrollment.SeasonalPattern, error) {
	if err := repo.db.wait(ctx); err != nil {
		return nil, err
	}
	return bySchool(repo.db.seasonal, schoolID, func(p enrollment.SeasonalPattern) string { return p.SchoolID }), nil
}

func (repo *enrollmentRepository) QueryForecasts(ctx context.Context, schoolID string) ([]enrollment.Forecast, error) {
	if err := repo.db.wait(ctx); err != nil {
		return nil, err
	}
	return bySchool(repo.db.forecasts, schoolID, func(f enrollment.Forecast) string { return f.SchoolID }), nil
}

// bySchool keeps the series of schoolID, or all of them when schoolID is empty.
func bySchool[T any](series []T, schoolID string, idOf func(T) string) []T {
	out := make([]T, 0, len(series))
	for _, s := range series {
		if schoolID == "" || idOf(s) == schoolID {
			out = append(out, s)
		}
	}
	return out
}
