package inmemdb

import (
	"context"

	"github.com/trezcool/edudash/core/staff"
)

type staffRepository struct {
	db  *DB
	tbl *table[staff.Staff]
}

var _ staff.Repository = (*staffRepository)(nil)

func NewStaffRepository(db *DB) staff.Repository {
	return &staffRepository{db: db, tbl: db.staff}
}

func (repo *staffRepository) CreateStaff(ctx context.Context, st staff.Staff) (staff.Staff, error) {
	if err := repo.db.wait(ctx); err != nil {
		return staff.Staff{}, err
	}
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	st.ID = newID()
	repo.tbl.insert(st.ID, st)
	return st, nil
}

func (repo *staffRepository) FilterStaff(ctx context.Context, filter staff.Filter) ([]staff.Staff, error) {
	if err := repo.db.wait(ctx); err != nil {
		return nil, err
	}
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()
	return repo.tbl.all(filter.Match), nil
}

func (repo *staffRepository) GetStaffByID(ctx context.Context, id string) (staff.Staff, error) {
	if err := repo.db.wait(ctx); err != nil {
		return staff.Staff{}, err
	}
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	if st, ok := repo.tbl.get(id); ok {
		return st, nil
	}
	return staff.Staff{}, staff.ErrNotFound
}

func (repo *staffRepository) UpdateStaff(ctx context.Context, st staff.Staff) (staff.Staff, error) {
	if err := repo.db.wait(ctx); err != nil {
		return staff.Staff{}, err
	}
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	if _, ok := repo.tbl.get(st.ID); !ok {
		return staff.Staff{}, staff.ErrNotFound
	}
	repo.tbl.insert(st.ID, st)
	return st, nil
}

func (repo *staffRepository) DeleteStaff(ctx context.Context, id string) error {
	if err := repo.db.wait(ctx); err != nil {
		return err
	}
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	if !repo.tbl.remove(id) {
		return staff.ErrNotFound
	}
	return nil
}
