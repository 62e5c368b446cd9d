package school

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/trezcool/edudash/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("school")

	nowFunc = time.Now // mockable

	defaultSearchLimit = 10
)

type (
	Repository interface {
		CreateSchool(ctx context.Context, sch School) (School, error)
		QueryAllSchools(ctx context.Context) ([]School, error)
		// FilterSchools returns the schools passing every set field of filter.
		FilterSchools(ctx context.Context, filter Filter) ([]School, error)
		GetSchoolByID(ctx context.Context, id string) (School, error)
		UpdateSchool(ctx context.Context, sch School) (School, error)
		DeleteSchool(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewSchool) (School, error) {
	now := nowFunc().UTC()
	sch := schoolFrom(ns)
	sch.CreatedAt = now
	sch.UpdatedAt = now
	return svc.repo.CreateSchool(ctx, sch)
}

func (svc *Service) QueryAll(ctx context.Context) ([]School, error) {
	return svc.repo.QueryAllSchools(ctx)
}

func (svc *Service) List(ctx context.Context, filter Filter, ordering []core.Ordering) ([]School, error) {
	schools, err := svc.repo.FilterSchools(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering schools")
	}
	if err := core.SortSlice(schools, ordering, Orderings); err != nil {
		return nil, err
	}
	return schools, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (School, error) {
	return svc.repo.GetSchoolByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateSchool) (School, error) {
	orig, err := svc.repo.GetSchoolByID(ctx, id)
	if err != nil {
		return School{}, err
	}
	sch := schoolFrom(NewSchool(us))
	sch.ID = orig.ID
	sch.CreatedAt = orig.CreatedAt
	sch.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateSchool(ctx, sch)
}

// SetStatus approves or rejects a school submission.
func (svc *Service) SetStatus(ctx context.Context, id, status string) (School, error) {
	sch, err := svc.repo.GetSchoolByID(ctx, id)
	if err != nil {
		return School{}, err
	}
	sch.Status = status
	sch.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateSchool(ctx, sch)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteSchool(ctx, id)
}

func (svc *Service) Stats(ctx context.Context, filter Filter) (Stats, error) {
	schools, err := svc.repo.FilterSchools(ctx, filter)
	if err != nil {
		return Stats{}, errors.Wrap(err, "filtering schools")
	}
	return ComputeStats(schools), nil
}

// Search backs the school picker: schools whose name contains q, closest names first.
func (svc *Service) Search(ctx context.Context, q string, limit int) ([]School, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	q = core.CleanString(q, true /* lower */)
	schools, err := svc.repo.FilterSchools(ctx, Filter{Name: q})
	if err != nil {
		return nil, errors.Wrap(err, "filtering schools")
	}

	scores := make(map[string]float64, len(schools))
	for _, s := range schools {
		scores[s.ID] = similarity(q, strings.ToLower(s.Name))
	}
	sort.SliceStable(schools, func(i, j int) bool {
		si, sj := scores[schools[i].ID], scores[schools[j].ID]
		if si != sj {
			return si > sj
		}
		return core.CompareStrings(schools[i].Name, schools[j].Name) < 0
	})
	if len(schools) > limit {
		schools = schools[:limit]
	}
	return schools, nil
}

func similarity(a, b string) float64 {
	if a == "" {
		return 0
	}
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).Ratio()
}

func schoolFrom(ns NewSchool) School {
	return School{
		Name:                ns.Name,
		Type:                ns.Type,
		Ownership:           ns.Ownership,
		LGA:                 ns.LGA,
		State:               ns.State,
		SenatorialDistrict:  ns.SenatorialDistrict,
		FederalConstituency: ns.FederalConstituency,
		Latitude:            ns.Latitude,
		Longitude:           ns.Longitude,
		Status:              ns.Status,
		HasWater:            ns.HasWater,
		HasPower:            ns.HasPower,
		HasInternet:         ns.HasInternet,
		HasLibrary:          ns.HasLibrary,
		HasSickBay:          ns.HasSickBay,
	}
}
