package inmemdb

import (
	"context"

	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/maintenance"
	"github.com/trezcool/edudash/core/performance"
)

// Read-only per-school records: infrastructure inspections, maintenance requests and exam performance.

type schoolRecordsRepository struct {
	db *DB
}

var (
	_ facility.InfrastructureRepository = (*schoolRecordsRepository)(nil)
	_ maintenance.Repository            = (*schoolRecordsRepository)(nil)
	_ performance.Repository            = (*schoolRecordsRepository)(nil)
)

func NewInfrastructureRepository(db *DB) facility.InfrastructureRepository {
	return &schoolRecordsRepository{db: db}
}

func NewMaintenanceRepository(db *DB) maintenance.Repository {
	return &schoolRecordsRepository{db: db}
}

func NewPerformanceRepository(db *DB) performance.Repository {
	return &schoolRecordsRepository{db: db}
}

func (repo *schoolRecordsRepository) FilterInfrastructure(ctx context.Context, schoolID string) ([]facility.Infrastructure, error) {
	var keep func(facility.Infrastructure) bool
	if schoolID != "" {
		keep = func(in facility.Infrastructure) bool { return in.SchoolID == schoolID }
	}
	return listRows(ctx, repo.db, repo.db.infrastructure, keep)
}

func (repo *schoolRecordsRepository) FilterRequests(ctx context.Context, schoolID string) ([]maintenance.Request, error) {
	var keep func(maintenance.Request) bool
	if schoolID != "" {
		keep = func(r maintenance.Request) bool { return r.SchoolID == schoolID }
	}
	return listRows(ctx, repo.db, repo.db.maintenance, keep)
}

func (repo *schoolRecordsRepository) FilterRecords(ctx context.Context, schoolID string) ([]performance.Record, error) {
	var keep func(performance.Record) bool
	if schoolID != "" {
		keep = func(r performance.Record) bool { return r.SchoolID == schoolID }
	}
	return listRows(ctx, repo.db, repo.db.performance, keep)
}
