package inmemdb

import (
	"context"

	"github.com/trezcool/edudash/core/exam"
)

type examRepository struct {
	db *DB
}

var _ exam.Repository = (*examRepository)(nil)

func NewExamRepository(db *DB) exam.Repository {
	return &examRepository{db: db}
}

func (repo *examRepository) CreateResult(ctx context.Context, res exam.Result) (exam.Result, error) {
	return addRow(ctx, repo.db, repo.db.result, res, func(r *exam.Result, id string) { r.ID = id })
}

func (repo *examRepository) FilterResults(ctx context.Context, filter exam.Filter) ([]exam.Result, error) {
	return listRows(ctx, repo.db, repo.db.result, filter.Match)
}

func (repo *examRepository) GetResultByID(ctx context.Context, id string) (exam.Result, error) {
	return getRow(ctx, repo.db, repo.db.result, id, exam.ErrNotFound)
}

// DeleteResult drops the result then its subject rows.
func (repo *examRepository) DeleteResult(ctx context.Context, id string) error {
	if err := deleteRow(ctx, repo.db, repo.db.result, id, exam.ErrNotFound); err != nil {
		return err
	}
	subs := repo.db.subjectResult
	subs.mu.Lock()
	defer subs.mu.Unlock()
	for _, sub := range subs.all(func(s exam.SubjectResult) bool { return s.ResultID == id }) {
		subs.remove(sub.ID)
	}
	return nil
}

func (repo *examRepository) CreateSubjectResult(ctx context.Context, sub exam.SubjectResult) (exam.SubjectResult, error) {
	return addRow(ctx, repo.db, repo.db.subjectResult, sub, func(s *exam.SubjectResult, id string) { s.ID = id })
}

func (repo *examRepository) QuerySubjectResults(ctx context.Context, resultIDs ...string) ([]exam.SubjectResult, error) {
	var keep func(exam.SubjectResult) bool
	if len(resultIDs) > 0 {
		ids := make(map[string]bool, len(resultIDs))
		for _, id := range resultIDs {
			ids[id] = true
		}
		keep = func(s exam.SubjectResult) bool { return ids[s.ResultID] }
	}
	return listRows(ctx, repo.db, repo.db.subjectResult, keep)
}

type gradingRepository struct {
	db *DB
}

var _ exam.GradingRepository = (*gradingRepository)(nil)

func NewGradingRepository(db *DB) exam.GradingRepository {
	return &gradingRepository{db: db}
}

func (repo *gradingRepository) CreateScheme(ctx context.Context, gs exam.GradingScheme) (exam.GradingScheme, error) {
	return addRow(ctx, repo.db, repo.db.gradingScheme, gs, func(gs *exam.GradingScheme, id string) { gs.ID = id })
}

func (repo *gradingRepository) QueryAllSchemes(ctx context.Context) ([]exam.GradingScheme, error) {
	return listRows(ctx, repo.db, repo.db.gradingScheme, nil)
}

func (repo *gradingRepository) GetSchemeByID(ctx context.Context, id string) (exam.GradingScheme, error) {
	return getRow(ctx, repo.db, repo.db.gradingScheme, id, exam.ErrSchemeNotFound)
}

func (repo *gradingRepository) UpdateScheme(ctx context.Context, gs exam.GradingScheme) (exam.GradingScheme, error) {
	return replaceRow(ctx, repo.db, repo.db.gradingScheme, gs.ID, gs, exam.ErrSchemeNotFound)
}

func (repo *gradingRepository) DeleteScheme(ctx context.Context, id string) error {
	return deleteRow(ctx, repo.db, repo.db.gradingScheme, id, exam.ErrSchemeNotFound)
}
