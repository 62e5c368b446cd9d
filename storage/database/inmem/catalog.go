package inmemdb

import (
	"context"

	"github.com/trezcool/edudash/core/catalog"
)

type catalogRepository struct {
	db *DB
}

var _ catalog.Repository = (*catalogRepository)(nil)

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{db: db}
}

func (repo *catalogRepository) entries(kind string) *table[catalog.Entry] {
	if kind == catalog.KindStatusType {
		return repo.db.statusType
	}
	return repo.db.schoolType
}

func (repo *catalogRepository) CreateEntry(ctx context.Context, kind string, e catalog.Entry) (catalog.Entry, error) {
	return addRow(ctx, repo.db, repo.entries(kind), e, func(e *catalog.Entry, id string) { e.ID = id })
}

func (repo *catalogRepository) QueryEntries(ctx context.Context, kind string) ([]catalog.Entry, error) {
	return listRows(ctx, repo.db, repo.entries(kind), nil)
}

func (repo *catalogRepository) GetEntryByID(ctx context.Context, kind, id string) (catalog.Entry, error) {
	return getRow(ctx, repo.db, repo.entries(kind), id, catalog.NotFound(kind))
}

func (repo *catalogRepository) UpdateEntry(ctx context.Context, kind string, e catalog.Entry) (catalog.Entry, error) {
	return replaceRow(ctx, repo.db, repo.entries(kind), e.ID, e, catalog.NotFound(kind))
}

func (repo *catalogRepository) DeleteEntry(ctx context.Context, kind, id string) error {
	return deleteRow(ctx, repo.db, repo.entries(kind), id, catalog.NotFound(kind))
}

func (repo *catalogRepository) CreateBoardExam(ctx context.Context, be catalog.BoardExam) (catalog.BoardExam, error) {
	return addRow(ctx, repo.db, repo.db.boardExam, be, func(be *catalog.BoardExam, id string) { be.ID = id })
}

func (repo *catalogRepository) QueryAllBoardExams(ctx context.Context) ([]catalog.BoardExam, error) {
	return listRows(ctx, repo.db, repo.db.boardExam, nil)
}

func (repo *catalogRepository) GetBoardExamByID(ctx context.Context, id string) (catalog.BoardExam, error) {
	return getRow(ctx, repo.db, repo.db.boardExam, id, catalog.ErrBoardExamNotFound)
}

func (repo *catalogRepository) UpdateBoardExam(ctx context.Context, be catalog.BoardExam) (catalog.BoardExam, error) {
	return replaceRow(ctx, repo.db, repo.db.boardExam, be.ID, be, catalog.ErrBoardExamNotFound)
}

func (repo *catalogRepository) DeleteBoardExam(ctx context.Context, id string) error {
	return deleteRow(ctx, repo.db, repo.db.boardExam, id, catalog.ErrBoardExamNotFound)
}
