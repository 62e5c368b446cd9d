package analytics

import (
	"strconv"
	"strings"

	"github.com/trezcool/edudash/core"
)

// Comparison domains
const (
	DomainFacilities   = "facilities"
	DomainPerformance  = "performance"
	DomainDemographics = "demographics"
	DomainStaff        = "staff"
)

// EmptyCell is shown for every item/metric pair without a value.
const EmptyCell = "-"

const (
	defaultStartYear = 2023
	defaultEndYear   = 2024
	yearChoices      = 5
)

type (
	Metric struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}

	ComparisonType struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}

	DomainOptions struct {
		Domain          string           `json:"domain"`
		Label           string           `json:"label"`
		Metrics         []Metric         `json:"metrics"`
		ComparisonTypes []ComparisonType `json:"comparison_types"`
		DefaultMetrics  []string         `json:"default_metrics"`
		Years           []int            `json:"years"`
	}

	// CompareQuery is the state of the comparison page.
	CompareQuery struct {
		Domain    string   `json:"domain"`
		Type      string   `json:"type"`
		Items     []string `json:"items"`
		Metrics   []string `json:"metrics"`
		StartYear int      `json:"start_year"`
		EndYear   int      `json:"end_year"`
	}

	Grid struct {
		CompareQuery
		Columns []Metric   `json:"columns"`
		Rows    [][]string `json:"rows"` // item name first, then one cell per column
	}
)

var (
	Domains = []string{DomainFacilities, DomainPerformance, DomainDemographics, DomainStaff}

	domainLabels = map[string]string{
		DomainFacilities:   "Infrastructure",
		DomainPerformance:  "Academic Performance",
		DomainDemographics: "Demographics",
		DomainStaff:        "Staff & Personnel",
	}

	domainMetrics = map[string][]Metric{
		DomainFacilities: {
			{ID: "water_availability", Label: "Water Availability"},
			{ID: "power_supply", Label: "Power Supply"},
			{ID: "internet_access", Label: "Internet Access"},
			{ID: "library_access", Label: "Library Access"},
			{ID: "medical_facility", Label: "Medical Facility"},
		},
		DomainPerformance: {
			{ID: "pass_rate", Label: "Pass Rate"},
			{ID: "average_score", Label: "Average Score"},
			{ID: "completion_rate", Label: "Completion Rate"},
		},
		DomainDemographics: {
			{ID: "total_students", Label: "Total Students"},
			{ID: "gender_ratio", Label: "Gender Ratio"},
			{ID: "age_distribution", Label: "Age Distribution"},
		},
		DomainStaff: {
			{ID: "teacher_count", Label: "Teacher Count"},
			{ID: "qualification_level", Label: "Qualification Level"},
			{ID: "experience_years", Label: "Years of Experience"},
		},
	}

	ComparisonTypes = []ComparisonType{
		{ID: "schools", Label: "School"},
		{ID: "geo_zone", Label: "Geopolitical"},
		{ID: "senatorial", Label: "Senatorial"},
		{ID: "state", Label: "State"},
		{ID: "federal", Label: "Federal"},
		{ID: "lga", Label: "LGA"},
		{ID: "qa_zone", Label: "QA Zone"},
	}
)

var _ core.Filter = (*CompareQuery)(nil)

func (q *CompareQuery) Set(key, value string) (err error) {
	value = core.CleanString(value)
	switch key {
	case "domain":
		q.Domain, err = core.OneOf(key, value, Domains)
	case "type":
		q.Type, err = core.OneOf(key, value, comparisonTypeIDs())
	case "items":
		q.Items = core.CleanStrings(strings.Split(value, ","))
	case "metrics":
		q.Metrics = core.CleanStrings(strings.Split(value, ","))
	case "start_year":
		q.StartYear, err = core.ParseFilterInt(key, value)
	case "end_year":
		q.EndYear, err = core.ParseFilterInt(key, value)
	default:
		err = core.NewUnknownFilterError(key)
	}
	return err
}

// Options lists what can be compared within a domain; an unknown domain is a validation error.
func Options(domain string) (DomainOptions, error) {
	metrics, ok := domainMetrics[domain]
	if !ok {
		return DomainOptions{}, core.NewValidationError(nil, core.FieldError{Field: "domain", Error: "invalid choice"})
	}
	years := make([]int, yearChoices)
	for i := range years {
		years[i] = defaultStartYear - i
	}
	return DomainOptions{
		Domain:          domain,
		Label:           domainLabels[domain],
		Metrics:         append([]Metric(nil), metrics...),
		ComparisonTypes: append([]ComparisonType(nil), ComparisonTypes...),
		DefaultMetrics:  []string{"pass_rate"},
		Years:           years,
	}, nil
}

// BuildGrid lays out the selected items against the selected metrics of the domain.
// Metrics outside the domain are ignored; every cell is empty until real figures exist.
func BuildGrid(q CompareQuery) (Grid, error) {
	if q.Domain == "" {
		q.Domain = DomainPerformance
	}
	opts, err := Options(q.Domain)
	if err != nil {
		return Grid{}, err
	}
	if q.Type == "" {
		q.Type = ComparisonTypes[0].ID
	}
	if q.StartYear == 0 {
		q.StartYear = defaultStartYear
	}
	if q.EndYear == 0 {
		q.EndYear = defaultEndYear
	}
	if q.StartYear > q.EndYear {
		return Grid{}, core.NewValidationError(nil, core.FieldError{Field: "start_year", Error: "must not be after end_year"})
	}

	selected := make(map[string]bool, len(q.Metrics))
	for _, m := range q.Metrics {
		selected[m] = true
	}
	grid := Grid{CompareQuery: q, Columns: make([]Metric, 0), Rows: make([][]string, 0, len(q.Items))}
	for _, m := range opts.Metrics {
		if selected[m.ID] {
			grid.Columns = append(grid.Columns, m)
		}
	}
	for _, item := range q.Items {
		row := make([]string, 0, len(grid.Columns)+1)
		row = append(row, item)
		for range grid.Columns {
			row = append(row, EmptyCell)
		}
		grid.Rows = append(grid.Rows, row)
	}
	return grid, nil
}

// YearRange renders the selected years, e.g. "2023 - 2024".
func (q CompareQuery) YearRange() string {
	return strconv.Itoa(q.StartYear) + " - " + strconv.Itoa(q.EndYear)
}

func comparisonTypeIDs() []string {
	ids := make([]string, len(ComparisonTypes))
	for i, ct := range ComparisonTypes {
		ids[i] = ct.ID
	}
	return ids
}
