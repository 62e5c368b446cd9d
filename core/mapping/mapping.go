// Package mapping turns schools into colored map markers.
package mapping

import (
	"math"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/performance"
	"github.com/trezcool/edudash/core/school"
)

const (
	FacilityRadius = 500
	baseRadius     = 500
)

// Facility metrics
const (
	MetricAll      = "all"
	MetricWater    = "water"
	MetricPower    = "power"
	MetricInternet = "internet"
	MetricLibrary  = "library"
	MetricSickBay  = "sick_bay"
)

var FacilityMetrics = []string{MetricAll, MetricWater, MetricPower, MetricInternet, MetricLibrary, MetricSickBay}

type Marker struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Value     float64 `json:"value"`
	Color     string  `json:"color"`
	Radius    float64 `json:"radius"` // meters
}

// ColorFor buckets a 0-100 score from green (>= 80) to red (< 20).
func ColorFor(score float64) string {
	switch {
	case score >= 80:
		return "#22c55e"
	case score >= 60:
		return "#84cc16"
	case score >= 40:
		return "#eab308"
	case score >= 20:
		return "#f97316"
	}
	return "#ef4444"
}

// PerformanceRadius grows with the order of magnitude of the student count; 0 for no students.
func PerformanceRadius(totalStudents int) float64 {
	if totalStudents <= 0 {
		return 0
	}
	return baseRadius * math.Log10(float64(totalStudents))
}

// FacilityScore scores a location on one facility (100 or 0), or on all of them (20 per facility).
func FacilityScore(loc facility.Location, metric string) float64 {
	f := loc.Flags()
	var has bool
	switch metric {
	case MetricWater:
		has = f.Water
	case MetricPower:
		has = f.Power
	case MetricInternet:
		has = f.Internet
	case MetricLibrary:
		has = f.Library
	case MetricSickBay:
		has = f.SickBay
	default:
		return float64(20 * f.Count())
	}
	if has {
		return 100
	}
	return 0
}

// FacilityMarkers places one fixed-size marker per location, colored by its facility score.
func FacilityMarkers(locations []facility.Location, metric string) []Marker {
	markers := make([]Marker, len(locations))
	for i, loc := range locations {
		score := FacilityScore(loc, metric)
		markers[i] = Marker{
			ID:        loc.ID,
			Name:      loc.Name,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Value:     score,
			Color:     ColorFor(score),
			Radius:    FacilityRadius,
		}
	}
	return markers
}

// PerformanceMarkers places one marker per school with a record, colored by the pass rate of its
// latest year and sized by its students.
func PerformanceMarkers(schools []school.School, records []performance.Record) []Marker {
	latest := make(map[string]performance.Record)
	for _, r := range records {
		if cur, ok := latest[r.SchoolID]; !ok || r.Year > cur.Year {
			latest[r.SchoolID] = r
		}
	}
	markers := make([]Marker, 0, len(schools))
	for _, s := range schools {
		r, ok := latest[s.ID]
		if !ok {
			continue
		}
		markers = append(markers, Marker{
			ID:        s.ID,
			Name:      s.Name,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Value:     r.PassRate,
			Color:     ColorFor(r.PassRate),
			Radius:    PerformanceRadius(r.TotalStudents),
		})
	}
	return markers
}

// MapFilter holds the school map filters. Population bounds of 0 are unset.
type MapFilter struct {
	State           string `json:"state"`
	LGA             string `json:"lga"`
	SchoolType      string `json:"school_type"`
	SchoolOwnership string `json:"school_ownership"`
	PopulationMin   int    `json:"population_min"`
	PopulationMax   int    `json:"population_max"`
	HasWater        bool   `json:"has_water"`
	HasPower        bool   `json:"has_power"`
	HasInternet     bool   `json:"has_internet"`
}

var _ core.Filter = (*MapFilter)(nil)

func (f *MapFilter) Set(key, value string) (err error) {
	value = core.CleanString(value)
	switch key {
	case "state":
		f.State = value
	case "lga":
		f.LGA = value
	case "school_type":
		f.SchoolType, err = core.OneOf(key, value, school.Types)
	case "school_ownership":
		f.SchoolOwnership, err = core.OneOf(key, value, school.Ownerships)
	case "population_min":
		f.PopulationMin, err = core.ParseFilterInt(key, value)
	case "population_max":
		f.PopulationMax, err = core.ParseFilterInt(key, value)
	case "has_water":
		f.HasWater, err = core.ParseFilterBool(key, value)
	case "has_power":
		f.HasPower, err = core.ParseFilterBool(key, value)
	case "has_internet":
		f.HasInternet, err = core.ParseFilterBool(key, value)
	default:
		err = core.NewUnknownFilterError(key)
	}
	return err
}

func FilterPanel() []core.FilterField {
	return []core.FilterField{
		{Key: "state", Label: "State", Type: core.FieldText},
		{Key: "lga", Label: "LGA", Type: core.FieldText},
		{Key: "school_type", Label: "School Type", Type: core.FieldSelect, Options: core.Options(school.Types...)},
		{Key: "school_ownership", Label: "Ownership", Type: core.FieldSelect, Options: core.Options(school.Ownerships...)},
		{Key: "population_min", Label: "Min. Students", Type: core.FieldText},
		{Key: "population_max", Label: "Max. Students", Type: core.FieldText},
		{Key: "has_water", Label: "Water", Type: core.FieldCheckbox},
		{Key: "has_power", Label: "Power", Type: core.FieldCheckbox},
		{Key: "has_internet", Label: "Internet", Type: core.FieldCheckbox},
	}
}

// Match reports whether a school with the given student count passes the filter.
func (f MapFilter) Match(s school.School, students int) bool {
	return (f.State == "" || s.State == f.State) &&
		(f.LGA == "" || s.LGA == f.LGA) &&
		(f.SchoolType == "" || s.Type == f.SchoolType) &&
		(f.SchoolOwnership == "" || s.Ownership == f.SchoolOwnership) &&
		(f.PopulationMin == 0 || students >= f.PopulationMin) &&
		(f.PopulationMax == 0 || students <= f.PopulationMax) &&
		(!f.HasWater || s.HasWater) &&
		(!f.HasPower || s.HasPower) &&
		(!f.HasInternet || s.HasInternet)
}

// PopulationMarkers places the schools passing filter, sized and colored by their student count.
func PopulationMarkers(schools []school.School, students map[string]int, filter MapFilter) []Marker {
	markers := make([]Marker, 0, len(schools))
	for _, s := range schools {
		n := students[s.ID]
		if !filter.Match(s, n) {
			continue
		}
		markers = append(markers, Marker{
			ID:        s.ID,
			Name:      s.Name,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
			Value:     float64(n),
			Color:     ColorFor(float64(n)),
			Radius:    PerformanceRadius(n),
		})
	}
	return markers
}
