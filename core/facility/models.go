package facility

import (
	"time"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/school"
)

// Infrastructure statuses
const (
	StatusExcellent = "excellent"
	StatusGood      = "good"
	StatusFair      = "fair"
	StatusPoor      = "poor"
	StatusCritical  = "critical"
)

var InfrastructureStatuses = []string{StatusExcellent, StatusGood, StatusFair, StatusPoor, StatusCritical}

type Infrastructure struct {
	ID                 string    `json:"id"`
	SchoolID           string    `json:"school_id"`
	Category           string    `json:"category"`
	Status             string    `json:"status"`
	LastInspectionDate string    `json:"last_inspection_date"` // YYYY-MM-DD
	Notes              string    `json:"notes"`
	CreatedAt          time.Time `json:"created_at"` // UTC
	UpdatedAt          time.Time `json:"updated_at"` // UTC
}

// Flags tells which of the five tracked facilities a school has.
type Flags struct {
	Water    bool
	Power    bool
	Internet bool
	Library  bool
	SickBay  bool
}

func (f Flags) All() bool {
	return f.Water && f.Power && f.Internet && f.Library && f.SickBay
}

// Count is the number of facilities present.
func (f Flags) Count() int {
	n := 0
	for _, b := range []bool{f.Water, f.Power, f.Internet, f.Library, f.SickBay} {
		if b {
			n++
		}
	}
	return n
}

// Location is a school on the facilities map.
type Location struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	HasWater         bool    `json:"has_water"`
	HasPower         bool    `json:"has_power"`
	HasInternet      bool    `json:"has_internet"`
	HasLibrary       bool    `json:"has_library"`
	HasSickBay       bool    `json:"has_sick_bay"`
	HasAllFacilities bool    `json:"has_all_facilities"`
}

func (loc Location) Flags() Flags {
	return Flags{
		Water:    loc.HasWater,
		Power:    loc.HasPower,
		Internet: loc.HasInternet,
		Library:  loc.HasLibrary,
		SickBay:  loc.HasSickBay,
	}
}

func newLocation(s school.School, f Flags) Location {
	return Location{
		ID:               s.ID,
		Name:             s.Name,
		Latitude:         s.Latitude,
		Longitude:        s.Longitude,
		HasWater:         f.Water,
		HasPower:         f.Power,
		HasInternet:      f.Internet,
		HasLibrary:       f.Library,
		HasSickBay:       f.SickBay,
		HasAllFacilities: f.All(),
	}
}

type (
	WaterStats struct {
		Total     int            `json:"total"`
		BySource  map[string]int `json:"by_source"`
		Treatment int            `json:"treatment"`
	}

	PowerStats struct {
		Total      int            `json:"total"`
		BySource   map[string]int `json:"by_source"`
		WithBackup int            `json:"with_backup"`
	}

	InternetStats struct {
		Total  int            `json:"total"`
		ByType map[string]int `json:"by_type"`
	}

	Counts struct {
		Libraries int `json:"libraries"`
		SickBays  int `json:"sick_bays"`
	}

	Stats struct {
		TotalSchools         int           `json:"total_schools"`
		WaterAvailability    WaterStats    `json:"water_availability"`
		PowerAvailability    PowerStats    `json:"power_availability"`
		InternetAvailability InternetStats `json:"internet_availability"`
		Facilities           Counts        `json:"facilities"`
		FacilitiesLocation   []Location    `json:"facilities_location"`
	}
)

// Filter holds the facilities page filters. State and LGA match exactly, ignoring case.
type Filter struct {
	State               string `json:"state"`
	LGA                 string `json:"lga"`
	SenatorialDistrict  string `json:"senatorial_district"`
	FederalConstituency string `json:"federal_constituency"`
	SchoolType          string `json:"school_type"`
	SchoolOwnership     string `json:"school_ownership"`
}

var _ core.Filter = (*Filter)(nil)

func (f *Filter) Set(key, value string) (err error) {
	value = core.CleanString(value)
	switch key {
	case "state":
		f.State = value
	case "lga":
		f.LGA = value
	case "senatorial_district":
		f.SenatorialDistrict = value
	case "federal_constituency":
		f.FederalConstituency = value
	case "school_type":
		f.SchoolType, err = core.OneOf(key, value, school.Types)
	case "school_ownership":
		f.SchoolOwnership, err = core.OneOf(key, value, school.Ownerships)
	default:
		err = core.NewUnknownFilterError(key)
	}
	return err
}

func (f Filter) Match(s school.School) bool {
	return core.MatchFold(s.State, f.State) &&
		core.MatchFold(s.LGA, f.LGA) &&
		core.ContainsFold(s.SenatorialDistrict, f.SenatorialDistrict) &&
		core.ContainsFold(s.FederalConstituency, f.FederalConstituency) &&
		(f.SchoolType == "" || s.Type == f.SchoolType) &&
		(f.SchoolOwnership == "" || s.Ownership == f.SchoolOwnership)
}

func FilterPanel() []core.FilterField {
	return []core.FilterField{
		{Key: "state", Label: "State", Type: core.FieldText},
		{Key: "lga", Label: "LGA", Type: core.FieldText},
		{Key: "senatorial_district", Label: "Senatorial District", Type: core.FieldText},
		{Key: "federal_constituency", Label: "Federal Constituency", Type: core.FieldText},
		{Key: "school_type", Label: "School Type", Type: core.FieldSelect, Options: core.Options(school.Types...)},
		{Key: "school_ownership", Label: "Ownership", Type: core.FieldSelect, Options: core.Options(school.Ownerships...)},
	}
}

// Indicators toggles which facilities the map and table show. All are on by default.
type Indicators struct {
	Water    bool `json:"water"`
	Power    bool `json:"power"`
	Internet bool `json:"internet"`
	Library  bool `json:"library"`
	SickBay  bool `json:"sick_bay"`
}

func DefaultIndicators() Indicators {
	return Indicators{Water: true, Power: true, Internet: true, Library: true, SickBay: true}
}

// Set toggles one indicator by key.
func (ind *Indicators) Set(key string, on bool) error {
	switch key {
	case "water":
		ind.Water = on
	case "power":
		ind.Power = on
	case "internet":
		ind.Internet = on
	case "library":
		ind.Library = on
	case "sick_bay":
		ind.SickBay = on
	default:
		return core.NewValidationError(nil, core.FieldError{Field: key, Error: "unknown indicator"})
	}
	return nil
}

// Orderings sorts facility rows. Booleans put schools having the facility first when ascending.
var Orderings = map[string]core.Comparator[Location]{
	"name":               func(a, b Location) int { return core.CompareStrings(a.Name, b.Name) },
	"latitude":           func(a, b Location) int { return core.CompareNumbers(a.Latitude, b.Latitude) },
	"longitude":          func(a, b Location) int { return core.CompareNumbers(a.Longitude, b.Longitude) },
	"has_water":          func(a, b Location) int { return core.CompareBools(a.HasWater, b.HasWater) },
	"has_power":          func(a, b Location) int { return core.CompareBools(a.HasPower, b.HasPower) },
	"has_internet":       func(a, b Location) int { return core.CompareBools(a.HasInternet, b.HasInternet) },
	"has_library":        func(a, b Location) int { return core.CompareBools(a.HasLibrary, b.HasLibrary) },
	"has_sick_bay":       func(a, b Location) int { return core.CompareBools(a.HasSickBay, b.HasSickBay) },
	"has_all_facilities": func(a, b Location) int { return core.CompareBools(a.HasAllFacilities, b.HasAllFacilities) },
}
