package inmemdb

import (
	"context"

	"github.com/trezcool/edudash/core/school"
)

type schoolRepository struct {
	db  *DB
	tbl *table[school.School]
}

var _ school.Repository = (*schoolRepository)(nil)

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db, tbl: db.school}
}

func (repo *schoolRepository) CreateSchool(ctx context.Context, sch school.School) (school.School, error) {
	if err := repo.db.wait(ctx); err != nil {
		return school.School{}, err
	}
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	sch.ID = newID()
	repo.tbl.insert(sch.ID, sch)
	return sch, nil
}

func (repo *schoolRepository) QueryAllSchools(ctx context.Context) ([]school.School, error) {
	return repo.FilterSchools(ctx, school.Filter{})
}

func (repo *schoolRepository) FilterSchools(ctx context.Context, filter school.Filter) ([]school.School, error) {
	if err := repo.db.wait(ctx); err != nil {
		return nil, err
	}
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	if filter.IsEmpty() {
		return repo.tbl.all(nil), nil
	}
	return repo.tbl.all(filter.Match), nil
}

func (repo *schoolRepository) GetSchoolByID(ctx context.Context, id string) (school.School, error) {
	if err := repo.db.wait(ctx); err != nil {
		return school.School{}, err
	}
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	if sch, ok := repo.tbl.get(id); ok {
		return sch, nil
	}
	return school.School{}, school.ErrNotFound
}

func (repo *schoolRepository) UpdateSchool(ctx context.Context, sch school.School) (school.School, error) {
	if err := repo.db.wait(ctx); err != nil {
		return school.School{}, err
	}
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	if _, ok := repo.tbl.get(sch.ID); !ok {
		return school.School{}, school.ErrNotFound
	}
	repo.tbl.insert(sch.ID, sch)
	return sch, nil
}

func (repo *schoolRepository) DeleteSchool(ctx context.Context, id string) error {
	if err := repo.db.wait(ctx); err != nil {
		return err
	}
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	if !repo.tbl.remove(id) {
		return school.ErrNotFound
	}
	return nil
}
