package exam

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("exam result")
	ErrSchemeNotFound = core.NewNotFoundError("grading scheme")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateResult(ctx context.Context, res Result) (Result, error)
		FilterResults(ctx context.Context, filter Filter) ([]Result, error)
		GetResultByID(ctx context.Context, id string) (Result, error)
		DeleteResult(ctx context.Context, id string) error

		CreateSubjectResult(ctx context.Context, sub SubjectResult) (SubjectResult, error)
		// QuerySubjectResults returns the subject rows of the given results; none means all of them.
		QuerySubjectResults(ctx context.Context, resultIDs ...string) ([]SubjectResult, error)
	}

	GradingRepository interface {
		CreateScheme(ctx context.Context, gs GradingScheme) (GradingScheme, error)
		QueryAllSchemes(ctx context.Context) ([]GradingScheme, error)
		GetSchemeByID(ctx context.Context, id string) (GradingScheme, error)
		UpdateScheme(ctx context.Context, gs GradingScheme) (GradingScheme, error)
		DeleteScheme(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}

	GradingService struct {
		repo GradingRepository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record saves the school result first, then every subject row linked to it by result_id.
func (svc *Service) Record(ctx context.Context, nr NewResult) (ResultDetail, error) {
	now := nowFunc().UTC()
	res, err := svc.repo.CreateResult(ctx, Result{
		SchoolID:       nr.SchoolID,
		ExamID:         nr.ExamID,
		AcademicYear:   nr.AcademicYear,
		TotalStudents:  nr.TotalStudents,
		PassedStudents: nr.PassedStudents,
		PassRate:       PassRate(nr.PassedStudents, nr.TotalStudents),
		AverageScore:   nr.AverageScore,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return ResultDetail{}, errors.Wrap(err, "creating result")
	}

	detail := ResultDetail{Result: res, Subjects: make([]SubjectResult, 0, len(nr.Subjects))}
	for _, ns := range nr.Subjects {
		sub := subjectFrom(ns)
		sub.ResultID = res.ID
		sub.CreatedAt = now
		sub.UpdatedAt = now
		if sub, err = svc.repo.CreateSubjectResult(ctx, sub); err != nil {
			return ResultDetail{}, errors.Wrap(err, "creating subject result")
		}
		detail.Subjects = append(detail.Subjects, sub)
	}
	return detail, nil
}

func (svc *Service) List(ctx context.Context, filter Filter, ordering []core.Ordering) ([]Result, error) {
	results, err := svc.repo.FilterResults(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering results")
	}
	if err := core.SortSlice(results, ordering, Orderings); err != nil {
		return nil, err
	}
	return results, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (ResultDetail, error) {
	res, err := svc.repo.GetResultByID(ctx, id)
	if err != nil {
		return ResultDetail{}, err
	}
	subs, err := svc.repo.QuerySubjectResults(ctx, res.ID)
	if err != nil {
		return ResultDetail{}, errors.Wrap(err, "querying subject results")
	}
	return ResultDetail{Result: res, Subjects: subs}, nil
}

// Subjects returns the subject rows of every result passing filter.
func (svc *Service) Subjects(ctx context.Context, filter Filter) ([]SubjectResult, error) {
	results, err := svc.repo.FilterResults(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering results")
	}
	if len(results) == 0 {
		return []SubjectResult{}, nil
	}
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	return svc.repo.QuerySubjectResults(ctx, ids...)
}

// Delete removes a result; its subject rows go with it.
func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteResult(ctx, id)
}

func NewGradingService(repo GradingRepository) *GradingService {
	return &GradingService{repo: repo}
}

func (svc *GradingService) Create(ctx context.Context, in SchemeInput) (GradingScheme, error) {
	now := nowFunc().UTC()
	gs := schemeFrom(in)
	gs.CreatedAt = now
	gs.UpdatedAt = now
	return svc.repo.CreateScheme(ctx, gs)
}

func (svc *GradingService) List(ctx context.Context, ordering []core.Ordering) ([]GradingScheme, error) {
	schemes, err := svc.repo.QueryAllSchemes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying grading schemes")
	}
	if err := core.SortSlice(schemes, ordering, SchemeOrderings); err != nil {
		return nil, err
	}
	return schemes, nil
}

func (svc *GradingService) GetByID(ctx context.Context, id string) (GradingScheme, error) {
	return svc.repo.GetSchemeByID(ctx, id)
}

func (svc *GradingService) Update(ctx context.Context, id string, in SchemeInput) (GradingScheme, error) {
	orig, err := svc.repo.GetSchemeByID(ctx, id)
	if err != nil {
		return GradingScheme{}, err
	}
	gs := schemeFrom(in)
	gs.ID = orig.ID
	gs.CreatedAt = orig.CreatedAt
	gs.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateScheme(ctx, gs)
}

func (svc *GradingService) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteScheme(ctx, id)
}

// Validate checks grade ranges without saving anything.
func (svc *GradingService) Validate(ranges []GradeRange) error {
	return ValidateRanges(ranges)
}

func schemeFrom(in SchemeInput) GradingScheme {
	gs := GradingScheme{
		Name:         in.Name,
		ExamType:     in.ExamType,
		PassingScore: DefaultPassingScore,
		GradeRanges:  append([]GradeRange{}, in.GradeRanges...),
		IsActive:     true,
	}
	if in.PassingScore != nil {
		gs.PassingScore = *in.PassingScore
	}
	if in.IsActive != nil {
		gs.IsActive = *in.IsActive
	}
	return gs
}

func subjectFrom(ns NewSubject) SubjectResult {
	return SubjectResult{
		SubjectName:    ns.SubjectName,
		TotalStudents:  ns.TotalStudents,
		PassedStudents: ns.PassedStudents,
		PassRate:       PassRate(ns.PassedStudents, ns.TotalStudents),
		AverageScore:   ns.AverageScore,
		HighestScore:   ns.HighestScore,
		LowestScore:    ns.LowestScore,
		GradeACount:    ns.GradeACount,
		GradeBCount:    ns.GradeBCount,
		GradeCCount:    ns.GradeCCount,
		GradeDCount:    ns.GradeDCount,
		GradeFCount:    ns.GradeFCount,
	}
}
