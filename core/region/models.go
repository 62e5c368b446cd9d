package region

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edudash/core"
)

type State struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type LGA struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StateID   string    `json:"state_id"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type SenatorialDistrict struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	StateID   string    `json:"state_id"`
	LGAIDs    []string  `json:"lga_ids"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

// StateInput is the state form payload, for both create and update.
type StateInput struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required,max=5,alphanum_"`
}

func (in *StateInput) Validate(validate *validator.Validate) error {
	in.Name = core.CleanString(in.Name)
	in.Code = strings.ToUpper(core.CleanString(in.Code))
	return validate.Struct(in)
}

// LGAInput is the LGA form payload, for both create and update.
type LGAInput struct {
	Name    string `json:"name" validate:"required"`
	StateID string `json:"state_id" validate:"required"`
}

func (in *LGAInput) Validate(validate *validator.Validate) error {
	in.Name = core.CleanString(in.Name)
	in.StateID = core.CleanString(in.StateID)
	return validate.Struct(in)
}

// DistrictInput is the senatorial district form payload, for both create and update.
type DistrictInput struct {
	Name    string   `json:"name" validate:"required"`
	Code    string   `json:"code" validate:"required,alphanum_"`
	StateID string   `json:"state_id" validate:"required"`
	LGAIDs  []string `json:"lga_ids"`
}

func (in *DistrictInput) Validate(validate *validator.Validate) error {
	in.Name = core.CleanString(in.Name)
	in.Code = strings.ToUpper(core.CleanString(in.Code))
	in.StateID = core.CleanString(in.StateID)
	in.LGAIDs = core.CleanStrings(in.LGAIDs)
	return validate.Struct(in)
}

// LGAFilter narrows LGAs to one state.
type LGAFilter struct {
	StateID string `json:"state_id"`
}

var _ core.Filter = (*LGAFilter)(nil)

func (f *LGAFilter) Set(key, value string) error {
	if key != "state_id" {
		return core.NewUnknownFilterError(key)
	}
	f.StateID = core.CleanString(value)
	return nil
}

var (
	StateOrderings = map[string]core.Comparator[State]{
		"name": func(a, b State) int { return core.CompareStrings(a.Name, b.Name) },
		"code": func(a, b State) int { return core.CompareStrings(a.Code, b.Code) },
	}
	LGAOrderings = map[string]core.Comparator[LGA]{
		"name":     func(a, b LGA) int { return core.CompareStrings(a.Name, b.Name) },
		"state_id": func(a, b LGA) int { return core.CompareStrings(a.StateID, b.StateID) },
	}
	DistrictOrderings = map[string]core.Comparator[SenatorialDistrict]{
		"name":     func(a, b SenatorialDistrict) int { return core.CompareStrings(a.Name, b.Name) },
		"code":     func(a, b SenatorialDistrict) int { return core.CompareStrings(a.Code, b.Code) },
		"state_id": func(a, b SenatorialDistrict) int { return core.CompareStrings(a.StateID, b.StateID) },
	}
)
