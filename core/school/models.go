package school

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edudash/core"
)

// Types
const (
	TypePrimary   = "primary"
	TypeSecondary = "secondary"
	TypeTertiary  = "tertiary"
)

// Ownerships
const (
	OwnershipFederal = "federal"
	OwnershipState   = "state"
	OwnershipPrivate = "private"
)

// Statuses
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	Types      = []string{TypePrimary, TypeSecondary, TypeTertiary}
	Ownerships = []string{OwnershipFederal, OwnershipState, OwnershipPrivate}
	Statuses   = []string{StatusPending, StatusApproved, StatusRejected}
)

type School struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	Ownership           string    `json:"ownership"`
	LGA                 string    `json:"lga"`
	State               string    `json:"state"`
	SenatorialDistrict  string    `json:"senatorial_district"`
	FederalConstituency string    `json:"federal_constituency"`
	Latitude            float64   `json:"latitude"`
	Longitude           float64   `json:"longitude"`
	Status              string    `json:"status"`
	HasWater            bool      `json:"has_water"`
	HasPower            bool      `json:"has_power"`
	HasInternet         bool      `json:"has_internet"`
	HasLibrary          bool      `json:"has_library"`
	HasSickBay          bool      `json:"has_sick_bay"`
	CreatedAt           time.Time `json:"created_at"` // UTC
	UpdatedAt           time.Time `json:"updated_at"` // UTC
}

// NewSchool contains information needed to create a new School.
type NewSchool struct {
	Name                string  `json:"name" validate:"required"`
	Type                string  `json:"type" validate:"required,oneof=primary secondary tertiary"`
	Ownership           string  `json:"ownership" validate:"required,oneof=federal state private"`
	LGA                 string  `json:"lga" validate:"required"`
	State               string  `json:"state" validate:"required"`
	SenatorialDistrict  string  `json:"senatorial_district"`
	FederalConstituency string  `json:"federal_constituency"`
	Latitude            float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude           float64 `json:"longitude" validate:"min=-180,max=180"`
	Status              string  `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	HasWater            bool    `json:"has_water"`
	HasPower            bool    `json:"has_power"`
	HasInternet         bool    `json:"has_internet"`
	HasLibrary          bool    `json:"has_library"`
	HasSickBay          bool    `json:"has_sick_bay"`
}

func (ns *NewSchool) Validate(validate *validator.Validate) error {
	ns.clean()
	if ns.Status == "" {
		ns.Status = StatusPending
	}
	return validate.Struct(ns)
}

func (ns *NewSchool) clean() {
	ns.Name = core.CleanString(ns.Name)
	ns.Type = core.CleanString(ns.Type, true /* lower */)
	ns.Ownership = core.CleanString(ns.Ownership, true /* lower */)
	ns.LGA = core.CleanString(ns.LGA)
	ns.State = core.CleanString(ns.State)
	ns.SenatorialDistrict = core.CleanString(ns.SenatorialDistrict)
	ns.FederalConstituency = core.CleanString(ns.FederalConstituency)
	ns.Status = core.CleanString(ns.Status, true /* lower */)
}

// UpdateSchool replaces every editable field of a School, as submitted by the edit form.
type UpdateSchool NewSchool

func (us *UpdateSchool) Validate(validate *validator.Validate) error {
	return (*NewSchool)(us).Validate(validate)
}

type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}

func (su *StatusUpdate) Validate(validate *validator.Validate) error {
	su.Status = core.CleanString(su.Status, true /* lower */)
	return validate.Struct(su)
}

// Filter holds the schools page filters. Text fields are case-insensitive substring matches.
type Filter struct {
	Name                string `json:"name"`
	Type                string `json:"type"`
	Ownership           string `json:"ownership"`
	LGA                 string `json:"lga"`
	State               string `json:"state"`
	SenatorialDistrict  string `json:"senatorial_district"`
	FederalConstituency string `json:"federal_constituency"`
	Status              string `json:"status"`
}

var _ core.Filter = (*Filter)(nil)

func (f *Filter) Set(key, value string) (err error) {
	value = core.CleanString(value)
	switch key {
	case "name":
		f.Name = value
	case "type":
		f.Type, err = core.OneOf(key, value, Types)
	case "ownership":
		f.Ownership, err = core.OneOf(key, value, Ownerships)
	case "lga":
		f.LGA = value
	case "state":
		f.State = value
	case "senatorial_district":
		f.SenatorialDistrict = value
	case "federal_constituency":
		f.FederalConstituency = value
	case "status":
		f.Status, err = core.OneOf(key, value, Statuses)
	default:
		err = core.NewUnknownFilterError(key)
	}
	return err
}

func (f Filter) IsEmpty() bool {
	return f == Filter{}
}

// Match reports whether s passes every set filter field.
func (f Filter) Match(s School) bool {
	return core.ContainsFold(s.Name, f.Name) &&
		(f.Type == "" || s.Type == f.Type) &&
		(f.Ownership == "" || s.Ownership == f.Ownership) &&
		core.ContainsFold(s.LGA, f.LGA) &&
		core.ContainsFold(s.State, f.State) &&
		core.ContainsFold(s.SenatorialDistrict, f.SenatorialDistrict) &&
		core.ContainsFold(s.FederalConstituency, f.FederalConstituency) &&
		(f.Status == "" || s.Status == f.Status)
}

// FilterPanel describes the schools page filter inputs.
func FilterPanel() []core.FilterField {
	return []core.FilterField{
		{Key: "name", Label: "School Name", Type: core.FieldText},
		{Key: "type", Label: "School Type", Type: core.FieldSelect, Options: core.Options(Types...)},
		{Key: "ownership", Label: "Ownership", Type: core.FieldSelect, Options: core.Options(Ownerships...)},
		{Key: "state", Label: "State", Type: core.FieldText},
		{Key: "lga", Label: "LGA", Type: core.FieldText},
		{Key: "senatorial_district", Label: "Senatorial District", Type: core.FieldText},
		{Key: "federal_constituency", Label: "Federal Constituency", Type: core.FieldText},
		{Key: "status", Label: "Status", Type: core.FieldSelect, Options: core.Options(Statuses...)},
	}
}

// Orderings lists the fields schools can be sorted by.
var Orderings = map[string]core.Comparator[School]{
	"name":       func(a, b School) int { return core.CompareStrings(a.Name, b.Name) },
	"type":       func(a, b School) int { return core.CompareStrings(a.Type, b.Type) },
	"ownership":  func(a, b School) int { return core.CompareStrings(a.Ownership, b.Ownership) },
	"state":      func(a, b School) int { return core.CompareStrings(a.State, b.State) },
	"lga":        func(a, b School) int { return core.CompareStrings(a.LGA, b.LGA) },
	"status":     func(a, b School) int { return core.CompareStrings(a.Status, b.Status) },
	"created_at": func(a, b School) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

type Stats struct {
	Total       int            `json:"total"`
	ByType      map[string]int `json:"by_type"`
	ByOwnership map[string]int `json:"by_ownership"`
	ByStatus    map[string]int `json:"by_status"`
}

// ComputeStats counts schools per type, ownership and status. Every known key is present.
func ComputeStats(schools []School) Stats {
	stats := Stats{
		Total:       len(schools),
		ByType:      zeroCounts(Types),
		ByOwnership: zeroCounts(Ownerships),
		ByStatus:    zeroCounts(Statuses),
	}
	for _, s := range schools {
		stats.ByType[s.Type]++
		stats.ByOwnership[s.Ownership]++
		stats.ByStatus[s.Status]++
	}
	return stats
}

func zeroCounts(keys []string) map[string]int {
	m := make(map[string]int, len(keys))
	for _, k := range keys {
		m[k] = 0
	}
	return m
}
