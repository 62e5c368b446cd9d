package inmemdb

import (
	"context"

	"github.com/trezcool/edudash/core/region"
)

type regionRepository struct {
	db *DB
}

var _ region.Repository = (*regionRepository)(nil)

func NewRegionRepository(db *DB) region.Repository {
	return &regionRepository{db: db}
}

func (repo *regionRepository) CreateState(ctx context.Context, st region.State) (region.State, error) {
	return addRow(ctx, repo.db, repo.db.state, st, func(s *region.State, id string) { s.ID = id })
}

func (repo *regionRepository) QueryAllStates(ctx context.Context) ([]region.State, error) {
	return listRows(ctx, repo.db, repo.db.state, nil)
}

func (repo *regionRepository) GetStateByID(ctx context.Context, id string) (region.State, error) {
	return getRow(ctx, repo.db, repo.db.state, id, region.ErrStateNotFound)
}

func (repo *regionRepository) UpdateState(ctx context.Context, st region.State) (region.State, error) {
	return replaceRow(ctx, repo.db, repo.db.state, st.ID, st, region.ErrStateNotFound)
}

func (repo *regionRepository) DeleteState(ctx context.Context, id string) error {
	return deleteRow(ctx, repo.db, repo.db.state, id, region.ErrStateNotFound)
}

func (repo *regionRepository) CreateLGA(ctx context.Context, lga region.LGA) (region.LGA, error) {
	return addRow(ctx, repo.db, repo.db.lga, lga, func(l *region.LGA, id string) { l.ID = id })
}

func (repo *regionRepository) FilterLGAs(ctx context.Context, filter region.LGAFilter) ([]region.LGA, error) {
	var keep func(region.LGA) bool
	if filter.StateID != "" {
		keep = func(lga region.LGA) bool { return lga.StateID == filter.StateID }
	}
	return listRows(ctx, repo.db, repo.db.lga, keep)
}

func (repo *regionRepository) GetLGAByID(ctx context.Context, id string) (region.LGA, error) {
	return getRow(ctx, repo.db, repo.db.lga, id, region.ErrLGANotFound)
}

func (repo *regionRepository) UpdateLGA(ctx context.Context, lga region.LGA) (region.LGA, error) {
	return replaceRow(ctx, repo.db, repo.db.lga, lga.ID, lga, region.ErrLGANotFound)
}

func (repo *regionRepository) DeleteLGA(ctx context.Context, id string) error {
	return deleteRow(ctx, repo.db, repo.db.lga, id, region.ErrLGANotFound)
}

func (repo *regionRepository) CreateDistrict(ctx context.Context, sd region.SenatorialDistrict) (region.SenatorialDistrict, error) {
	return addRow(ctx, repo.db, repo.db.district, sd, func(d *region.SenatorialDistrict, id string) { d.ID = id })
}

func (repo *regionRepository) QueryAllDistricts(ctx context.Context) ([]region.SenatorialDistrict, error) {
	return listRows(ctx, repo.db, repo.db.district, nil)
}

func (repo *regionRepository) GetDistrictByID(ctx context.Context, id string) (region.SenatorialDistrict, error) {
	return getRow(ctx, repo.db, repo.db.district, id, region.ErrDistrictNotFound)
}

func (repo *regionRepository) UpdateDistrict(ctx context.Context, sd region.SenatorialDistrict) (region.SenatorialDistrict, error) {
	return replaceRow(ctx, repo.db, repo.db.district, sd.ID, sd, region.ErrDistrictNotFound)
}

func (repo *regionRepository) DeleteDistrict(ctx context.Context, id string) error {
	return deleteRow(ctx, repo.db, repo.db.district, id, region.ErrDistrictNotFound)
}
