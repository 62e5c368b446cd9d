package staff

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("staff member")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateStaff(ctx context.Context, st Staff) (Staff, error)
		FilterStaff(ctx context.Context, filter Filter) ([]Staff, error)
		GetStaffByID(ctx context.Context, id string) (Staff, error)
		UpdateStaff(ctx context.Context, st Staff) (Staff, error)
		DeleteStaff(ctx context.Context, id string) error
	}

	// StudentCounter reports the number of enrolled students, for the student/teacher ratio.
	StudentCounter interface {
		TotalStudents(ctx context.Context) (int, error)
	}

	Service struct {
		repo     Repository
		students StudentCounter
	}
)

func NewService(repo Repository, students StudentCounter) *Service {
	return &Service{repo: repo, students: students}
}

func (svc *Service) Create(ctx context.Context, ns NewStaff) (Staff, error) {
	now := nowFunc().UTC()
	st := staffFrom(ns)
	st.CreatedAt = now
	st.UpdatedAt = now
	return svc.repo.CreateStaff(ctx, st)
}

func (svc *Service) List(ctx context.Context, filter Filter, ordering []core.Ordering) ([]Staff, error) {
	members, err := svc.repo.FilterStaff(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering staff")
	}
	if err := core.SortSlice(members, ordering, Orderings); err != nil {
		return nil, err
	}
	return members, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Staff, error) {
	return svc.repo.GetStaffByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id string, us UpdateStaff) (Staff, error) {
	orig, err := svc.repo.GetStaffByID(ctx, id)
	if err != nil {
		return Staff{}, err
	}
	st := staffFrom(NewStaff(us))
	st.ID = orig.ID
	st.CreatedAt = orig.CreatedAt
	st.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateStaff(ctx, st)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteStaff(ctx, id)
}

func (svc *Service) Stats(ctx context.Context, filter Filter) (Stats, error) {
	members, err := svc.repo.FilterStaff(ctx, filter)
	if err != nil {
		return Stats{}, errors.Wrap(err, "filtering staff")
	}
	var total int
	if svc.students != nil {
		if total, err = svc.students.TotalStudents(ctx); err != nil {
			return Stats{}, errors.Wrap(err, "counting students")
		}
	}
	return ComputeStats(members, total), nil
}

func staffFrom(ns NewStaff) Staff {
	return Staff{
		Name:            ns.Name,
		Role:            ns.Role,
		Qualification:   ns.Qualification,
		ExperienceLevel: ns.ExperienceLevel,
		Subjects:        nonNil(ns.Subjects),
		School:          ns.School,
		Certifications:  nonNil(ns.Certifications),
		Specializations: nonNil(ns.Specializations),
	}
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
