package region

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
)

var (
	// errors
	ErrStateNotFound    = core.NewNotFoundError("state")
	ErrLGANotFound      = core.NewNotFoundError("lga")
	ErrDistrictNotFound = core.NewNotFoundError("senatorial district")

	errUnknownState = errors.New("unknown state")
	errForeignLGA   = errors.New("lga does not belong to the selected state")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateState(ctx context.Context, st State) (State, error)
		QueryAllStates(ctx context.Context) ([]State, error)
		GetStateByID(ctx context.Context, id string) (State, error)
		UpdateState(ctx context.Context, st State) (State, error)
		DeleteState(ctx context.Context, id string) error

		CreateLGA(ctx context.Context, lga LGA) (LGA, error)
		FilterLGAs(ctx context.Context, filter LGAFilter) ([]LGA, error)
		GetLGAByID(ctx context.Context, id string) (LGA, error)
		UpdateLGA(ctx context.Context, lga LGA) (LGA, error)
		DeleteLGA(ctx context.Context, id string) error

		CreateDistrict(ctx context.Context, sd SenatorialDistrict) (SenatorialDistrict, error)
		QueryAllDistricts(ctx context.Context) ([]SenatorialDistrict, error)
		GetDistrictByID(ctx context.Context, id string) (SenatorialDistrict, error)
		UpdateDistrict(ctx context.Context, sd SenatorialDistrict) (SenatorialDistrict, error)
		DeleteDistrict(ctx context.Context, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// States

func (svc *Service) CreateState(ctx context.Context, in StateInput) (State, error) {
	now := nowFunc().UTC()
	return svc.repo.CreateState(ctx, State{Name: in.Name, Code: in.Code, CreatedAt: now, UpdatedAt: now})
}

func (svc *Service) ListStates(ctx context.Context, ordering []core.Ordering) ([]State, error) {
	states, err := svc.repo.QueryAllStates(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying states")
	}
	return states, core.SortSlice(states, ordering, StateOrderings)
}

func (svc *Service) GetState(ctx context.Context, id string) (State, error) {
	return svc.repo.GetStateByID(ctx, id)
}

func (svc *Service) UpdateState(ctx context.Context, id string, in StateInput) (State, error) {
	st, err := svc.repo.GetStateByID(ctx, id)
	if err != nil {
		return State{}, err
	}
	st.Name = in.Name
	st.Code = in.Code
	st.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateState(ctx, st)
}

func (svc *Service) DeleteState(ctx context.Context, id string) error {
	return svc.repo.DeleteState(ctx, id)
}

// LGAs

func (svc *Service) CreateLGA(ctx context.Context, in LGAInput) (LGA, error) {
	if err := svc.checkState(ctx, in.StateID); err != nil {
		return LGA{}, err
	}
	now := nowFunc().UTC()
	return svc.repo.CreateLGA(ctx, LGA{Name: in.Name, StateID: in.StateID, CreatedAt: now, UpdatedAt: now})
}

func (svc *Service) ListLGAs(ctx context.Context, filter LGAFilter, ordering []core.Ordering) ([]LGA, error) {
	lgas, err := svc.repo.FilterLGAs(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "filtering lgas")
	}
	return lgas, core.SortSlice(lgas, ordering, LGAOrderings)
}

func (svc *Service) GetLGA(ctx context.Context, id string) (LGA, error) {
	return svc.repo.GetLGAByID(ctx, id)
}

func (svc *Service) UpdateLGA(ctx context.Context, id string, in LGAInput) (LGA, error) {
	lga, err := svc.repo.GetLGAByID(ctx, id)
	if err != nil {
		return LGA{}, err
	}
	if err := svc.checkState(ctx, in.StateID); err != nil {
		return LGA{}, err
	}
	lga.Name = in.Name
	lga.StateID = in.StateID
	lga.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateLGA(ctx, lga)
}

func (svc *Service) DeleteLGA(ctx context.Context, id string) error {
	return svc.repo.DeleteLGA(ctx, id)
}

// Senatorial districts

func (svc *Service) CreateDistrict(ctx context.Context, in DistrictInput) (SenatorialDistrict, error) {
	if err := svc.checkDistrict(ctx, in); err != nil {
		return SenatorialDistrict{}, err
	}
	now := nowFunc().UTC()
	return svc.repo.CreateDistrict(ctx, SenatorialDistrict{
		Name:      in.Name,
		Code:      in.Code,
		StateID:   in.StateID,
		LGAIDs:    nonNil(in.LGAIDs),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) ListDistricts(ctx context.Context, ordering []core.Ordering) ([]SenatorialDistrict, error) {
	districts, err := svc.repo.QueryAllDistricts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying senatorial districts")
	}
	return districts, core.SortSlice(districts, ordering, DistrictOrderings)
}

func (svc *Service) GetDistrict(ctx context.Context, id string) (SenatorialDistrict, error) {
	return svc.repo.GetDistrictByID(ctx, id)
}

func (svc *Service) UpdateDistrict(ctx context.Context, id string, in DistrictInput) (SenatorialDistrict, error) {
	sd, err := svc.repo.GetDistrictByID(ctx, id)
	if err != nil {
		return SenatorialDistrict{}, err
	}
	if err := svc.checkDistrict(ctx, in); err != nil {
		return SenatorialDistrict{}, err
	}
	sd.Name = in.Name
	sd.Code = in.Code
	sd.StateID = in.StateID
	sd.LGAIDs = nonNil(in.LGAIDs)
	sd.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateDistrict(ctx, sd)
}

func (svc *Service) DeleteDistrict(ctx context.Context, id string) error {
	return svc.repo.DeleteDistrict(ctx, id)
}

func (svc *Service) checkState(ctx context.Context, stateID string) error {
	if _, err := svc.repo.GetStateByID(ctx, stateID); err != nil {
		if core.IsNotFound(err) {
			return core.NewValidationError(nil, core.FieldError{Field: "state_id", Error: errUnknownState.Error()})
		}
		return errors.Wrap(err, "finding state by ID")
	}
	return nil
}

// checkDistrict makes sure the state exists and every selected LGA belongs to it.
func (svc *Service) checkDistrict(ctx context.Context, in DistrictInput) error {
	if err := svc.checkState(ctx, in.StateID); err != nil {
		return err
	}
	lgas, err := svc.repo.FilterLGAs(ctx, LGAFilter{StateID: in.StateID})
	if err != nil {
		return errors.Wrap(err, "filtering lgas")
	}
	allowed := make(map[string]bool, len(lgas))
	for _, lga := range lgas {
		allowed[lga.ID] = true
	}
	for _, id := range in.LGAIDs {
		if !allowed[id] {
			return core.NewValidationError(nil, core.FieldError{Field: "lga_ids", Error: errForeignLGA.Error() + ": " + id})
		}
	}
	return nil
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
