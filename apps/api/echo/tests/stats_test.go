package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edudash/core/dashboard"
	"github.com/trezcool/edudash/core/demographics"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/mapping"
	"github.com/trezcool/edudash/core/performance"
)

func getStats(t *testing.T, app http.Handler, path string, v interface{}) {
	t.Helper()
	req, rec := newAuthRequest(http.MethodGet, path, getToken(t, viewer))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, v)
}

func Test_dashboardApi_stats(t *testing.T) {
	app, _ := newApp(t)

	tests := []struct {
		name string
		path string
		want dashboard.Stats
	}{
		{
			name: "no filter",
			path: "/v1/dashboard/stats",
			want: dashboard.Stats{
				TotalSchools: 2, TotalStudents: 570, TotalTeachers: 23, AveragePerformance: 81.5, MaintenanceAlerts: 1,
				CurrentTermEnrollment: dashboard.TermEnrollment{Total: 465},
			},
		},
		{
			name: "federal schools",
			path: "/v1/dashboard/stats?school_ownership=federal",
			want: dashboard.Stats{TotalSchools: 1, TotalStudents: 320, TotalTeachers: 13, AveragePerformance: 85},
		},
		{
			name: "a year without records",
			path: "/v1/dashboard/stats?year=2019",
			want: dashboard.Stats{TotalSchools: 2, MaintenanceAlerts: 1, CurrentTermEnrollment: dashboard.TermEnrollment{Total: 465}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got dashboard.Stats
			getStats(t, app, tt.path, &got)
			assert.Equal(t, tt.want.TotalSchools, got.TotalSchools)
			assert.Equal(t, tt.want.TotalStudents, got.TotalStudents)
			assert.Equal(t, tt.want.TotalTeachers, got.TotalTeachers)
			assert.InDelta(t, tt.want.AveragePerformance, got.AveragePerformance, 0.0001)
			assert.Equal(t, tt.want.MaintenanceAlerts, got.MaintenanceAlerts)
			assert.Equal(t, tt.want.CurrentTermEnrollment.Total, got.CurrentTermEnrollment.Total)
			assert.Len(t, got.Schools, tt.want.TotalSchools)
		})
	}

	runHTTPTests(t, app, []httpTest{
		{
			name: "bad year", path: "/v1/dashboard/stats?year=last", token: getToken(t, viewer),
			wantCode: http.StatusBadRequest, wantData: marchallErr(t, map[string]string{"year": "must be a number"}),
		},
	})
}

func Test_facilityApi_stats(t *testing.T) {
	app, _ := newApp(t)

	var stats facility.Stats
	getStats(t, app, "/v1/facilities/stats?ordering=has_sick_bay,name", &stats)
	assert.Equal(t, 2, stats.TotalSchools)
	assert.Equal(t, facility.Counts{Libraries: 1, SickBays: 1}, stats.Facilities)
	require.Len(t, stats.FacilitiesLocation, 2)
	assert.True(t, stats.FacilitiesLocation[0].HasAllFacilities)
	assert.Equal(t, "Government College", stats.FacilitiesLocation[1].Name)
	assert.False(t, stats.FacilitiesLocation[1].HasAllFacilities)

	getStats(t, app, "/v1/facilities/stats?lga=ETI-OSA", &stats)
	assert.Equal(t, 1, stats.TotalSchools)
	assert.Equal(t, facility.Counts{Libraries: 0, SickBays: 0}, stats.Facilities)

	var markers []mapping.Marker
	getStats(t, app, "/v1/maps/facilities?metric=sick_bay", &markers)
	require.Len(t, markers, 2)
	assert.Equal(t, 100.0, markers[0].Value)
	assert.Equal(t, 0.0, markers[1].Value)
	assert.Equal(t, "#ef4444", markers[1].Color)
}

func Test_performanceApi_stats(t *testing.T) {
	app, _ := newApp(t)

	var stats performance.Stats
	getStats(t, app, "/v1/performance/stats?ordering=-pass_rate", &stats)
	assert.Equal(t, 81.5, stats.OverallPassRate)
	assert.Equal(t, 570, stats.TotalStudents)
	assert.Equal(t, 467, stats.PassedStudents)
	assert.Equal(t, "Mathematics", stats.TopSubject)
	assert.Equal(t, 82.0, stats.TopSubjectScore)
	assert.Equal(t, 228, stats.MaleStudents)
	assert.Equal(t, 237, stats.FemaleStudents)
	require.Len(t, stats.SchoolPerformance, 2)
	assert.Equal(t, "Government College", stats.SchoolPerformance[0].SchoolName)

	getStats(t, app, "/v1/performance/stats?exam_type=neco", &stats)
	assert.Equal(t, 0, stats.TotalStudents)
	assert.Empty(t, stats.SchoolPerformance)

	var markers []mapping.Marker
	getStats(t, app, "/v1/maps/performance?ownership=state", &markers)
	require.Len(t, markers, 1)
	assert.Equal(t, 78.0, markers[0].Value)
	assert.Equal(t, "#84cc16", markers[0].Color)
}

func Test_demographicsApi_stats(t *testing.T) {
	app, _ := newApp(t)

	var stats demographics.Stats
	getStats(t, app, "/v1/demographics/stats", &stats)
	assert.Equal(t, 1, stats.TotalSchools)
	assert.Equal(t, 465, stats.TotalStudents)
	assert.Equal(t, 0.96, stats.GenderRatio)
	require.Len(t, stats.SchoolDemographics, 1)
	row := stats.SchoolDemographics[0]
	assert.Equal(t, "Central High School", row.SchoolName)
	assert.Equal(t, 1, row.Teachers)
	assert.Equal(t, 2024, row.Year)

	getStats(t, app, "/v1/demographics/stats?school_ownership=federal", &stats)
	assert.Equal(t, 0, stats.TotalSchools)
	assert.Empty(t, stats.SchoolDemographics)

	runHTTPTests(t, app, []httpTest{
		{
			name: "bad checkbox", path: "/v1/demographics/stats?special_needs=maybe", token: getToken(t, viewer),
			wantCode: http.StatusBadRequest, wantData: marchallErr(t, map[string]string{"special_needs": "must be true or false"}),
		},
	})

	var markers []mapping.Marker
	getStats(t, app, "/v1/maps/population?population_min=100", &markers)
	require.Len(t, markers, 1)
	assert.Equal(t, 465.0, markers[0].Value)
}
