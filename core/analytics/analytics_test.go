package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredict(t *testing.T) {
	got := Predict(PredictionQuery{})
	assert.Equal(t, PredictionQuery{Category: CategoryPerformance, Timeframe: "1y", Model: "regression"}, got.PredictionQuery)
	require.Len(t, got.Predictions, 3)
	assert.Equal(t, "Average Pass Rate", got.Predictions[0].Metric)
	assert.Len(t, got.Insights, 2)
	assert.Len(t, got.RiskFactors, 2)

	got = Predict(PredictionQuery{Category: CategoryEnrollment, Timeframe: "5y", Model: "ml"})
	assert.Equal(t, "5y", got.Timeframe)
	assert.Equal(t, 12500.0, got.Predictions[0].Current)
	assert.Equal(t, 13200.0, got.Predictions[0].Predicted)

	// results are copies
	got.Predictions[0].Current = 0
	assert.Equal(t, 12500.0, Predict(PredictionQuery{Category: CategoryEnrollment}).Predictions[0].Current)

	for _, c := range Categories {
		assert.NotEmpty(t, Predict(PredictionQuery{Category: c}).Predictions, c)
	}
}

func TestPredictionQuery_Set(t *testing.T) {
	var q PredictionQuery
	require.NoError(t, q.Set("category", " Resources "))
	require.NoError(t, q.Set("timeframe", "3Y"))
	assert.Equal(t, PredictionQuery{Category: CategoryResources, Timeframe: "3y"}, q)

	assert.EqualError(t, q.Set("model", "oracle"), "model: invalid choice")
	assert.EqualError(t, q.Set("horizon", "1"), "horizon: unknown filter")
}

func TestOptions(t *testing.T) {
	opts, err := Options(DomainStaff)
	require.NoError(t, err)
	assert.Equal(t, "Staff & Personnel", opts.Label)
	assert.Len(t, opts.Metrics, 3)
	assert.Equal(t, []int{2023, 2022, 2021, 2020, 2019}, opts.Years)
	assert.Len(t, opts.ComparisonTypes, 7)

	_, err = Options("sports")
	assert.EqualError(t, err, "domain: invalid choice")
}

func TestBuildGrid(t *testing.T) {
	tests := []struct {
		name     string
		q        CompareQuery
		wantErr  string
		wantCols []string
		wantRows [][]string
	}{
		{
			name:     "defaults",
			q:        CompareQuery{Items: []string{"Central High School"}, Metrics: []string{"pass_rate"}},
			wantCols: []string{"pass_rate"},
			wantRows: [][]string{{"Central High School", EmptyCell}},
		},
		{
			name: "metrics keep domain order, foreign metrics dropped",
			q: CompareQuery{
				Domain: DomainFacilities, Items: []string{"A", "B"},
				Metrics: []string{"medical_facility", "pass_rate", "water_availability"},
			},
			wantCols: []string{"water_availability", "medical_facility"},
			wantRows: [][]string{{"A", EmptyCell, EmptyCell}, {"B", EmptyCell, EmptyCell}},
		},
		{
			name:     "nothing selected",
			q:        CompareQuery{Domain: DomainDemographics},
			wantCols: []string{},
			wantRows: [][]string{},
		},
		{name: "unknown domain", q: CompareQuery{Domain: "sports"}, wantErr: "domain: invalid choice"},
		{name: "years reversed", q: CompareQuery{StartYear: 2024, EndYear: 2020}, wantErr: "start_year: must not be after end_year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := BuildGrid(tt.q)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			cols := make([]string, len(grid.Columns))
			for i, c := range grid.Columns {
				cols[i] = c.ID
			}
			assert.Equal(t, tt.wantCols, cols)
			assert.Equal(t, tt.wantRows, grid.Rows)
		})
	}

	grid, err := BuildGrid(CompareQuery{})
	require.NoError(t, err)
	assert.Equal(t, DomainPerformance, grid.Domain)
	assert.Equal(t, "schools", grid.Type)
	assert.Equal(t, "2023 - 2024", grid.YearRange())
}

func TestCompareQuery_Set(t *testing.T) {
	var q CompareQuery
	require.NoError(t, q.Set("items", "Central High School, ,Government College"))
	require.NoError(t, q.Set("metrics", "pass_rate"))
	require.NoError(t, q.Set("type", "lga"))
	require.NoError(t, q.Set("start_year", "2021"))
	assert.Equal(t, []string{"Central High School", "Government College"}, q.Items)
	assert.Equal(t, 2021, q.StartYear)

	assert.EqualError(t, q.Set("type", "ward"), "type: invalid choice")
	assert.EqualError(t, q.Set("end_year", "soon"), "end_year: must be a number")
}
