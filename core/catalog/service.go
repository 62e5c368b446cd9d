package catalog

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
)

var (
	// errors
	ErrSchoolTypeNotFound = core.NewNotFoundError("school type")
	ErrStatusTypeNotFound = core.NewNotFoundError("status type")
	ErrBoardExamNotFound  = core.NewNotFoundError("board exam")

	errUnknownKind = errors.New("unknown catalog kind")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateEntry(ctx context.Context, kind string, e Entry) (Entry, error)
		QueryEntries(ctx context.Context, kind string) ([]Entry, error)
		GetEntryByID(ctx context.Context, kind, id string) (Entry, error)
		UpdateEntry(ctx context.Context, kind string, e Entry) (Entry, error)
		DeleteEntry(ctx context.Context, kind, id string) error

		CreateBoardExam(ctx context.Context, be BoardExam) (BoardExam, error)
		QueryAllBoardExams(ctx context.Context) ([]BoardExam, error)
		GetBoardExamByID(ctx context.Context, id string) (BoardExam, error)
		UpdateBoardExam(ctx context.Context, be BoardExam) (BoardExam, error)
		DeleteBoardExam(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NotFound returns the not-found error of an entry kind.
func NotFound(kind string) error {
	if kind == KindStatusType {
		return ErrStatusTypeNotFound
	}
	return ErrSchoolTypeNotFound
}

func checkKind(kind string) error {
	for _, k := range Kinds {
		if k == kind {
			return nil
		}
	}
	return errors.Wrap(errUnknownKind, kind)
}

// School types & status types

func (svc *Service) CreateEntry(ctx context.Context, kind string, in EntryInput) (Entry, error) {
	if err := checkKind(kind); err != nil {
		return Entry{}, err
	}
	now := nowFunc().UTC()
	return svc.repo.CreateEntry(ctx, kind, Entry{
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (svc *Service) ListEntries(ctx context.Context, kind string, ordering []core.Ordering) ([]Entry, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	entries, err := svc.repo.QueryEntries(ctx, kind)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s entries", kind)
	}
	return entries, core.SortSlice(entries, ordering, EntryOrderings)
}

func (svc *Service) GetEntry(ctx context.Context, kind, id string) (Entry, error) {
	if err := checkKind(kind); err != nil {
		return Entry{}, err
	}
	return svc.repo.GetEntryByID(ctx, kind, id)
}

func (svc *Service) UpdateEntry(ctx context.Context, kind, id string, in EntryInput) (Entry, error) {
	e, err := svc.GetEntry(ctx, kind, id)
	if err != nil {
		return Entry{}, err
	}
	e.Name = in.Name
	e.Code = in.Code
	e.Description = in.Description
	e.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateEntry(ctx, kind, e)
}

func (svc *Service) DeleteEntry(ctx context.Context, kind, id string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	return svc.repo.DeleteEntry(ctx, kind, id)
}

// Board exams

func (svc *Service) CreateBoardExam(ctx context.Context, in BoardExamInput) (BoardExam, error) {
	now := nowFunc().UTC()
	be := boardExamFrom(in)
	be.CreatedAt = now
	be.UpdatedAt = now
	return svc.repo.CreateBoardExam(ctx, be)
}

func (svc *Service) ListBoardExams(ctx context.Context, ordering []core.Ordering) ([]BoardExam, error) {
	exams, err := svc.repo.QueryAllBoardExams(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying board exams")
	}
	return exams, core.SortSlice(exams, ordering, BoardExamOrderings)
}

func (svc *Service) GetBoardExam(ctx context.Context, id string) (BoardExam, error) {
	return svc.repo.GetBoardExamByID(ctx, id)
}

func (svc *Service) UpdateBoardExam(ctx context.Context, id string, in BoardExamInput) (BoardExam, error) {
	orig, err := svc.repo.GetBoardExamByID(ctx, id)
	if err != nil {
		return BoardExam{}, err
	}
	be := boardExamFrom(in)
	be.ID = orig.ID
	be.CreatedAt = orig.CreatedAt
	be.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateBoardExam(ctx, be)
}

func (svc *Service) DeleteBoardExam(ctx context.Context, id string) error {
	return svc.repo.DeleteBoardExam(ctx, id)
}

func boardExamFrom(in BoardExamInput) BoardExam {
	return BoardExam{
		Name:                 in.Name,
		Code:                 in.Code,
		Description:          in.Description,
		ExamDate:             in.ExamDate,
		RegistrationDeadline: in.RegistrationDeadline,
		Status:               in.Status,
	}
}
