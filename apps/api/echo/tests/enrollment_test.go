package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edudash/core/enrollment"
)

func Test_enrollmentApi_stats(t *testing.T) {
	app, _ := newApp(t)
	token := getToken(t, viewer)

	req, rec := newAuthRequest(http.MethodGet, "/v1/enrollments/stats", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stats enrollment.Stats
	decodeData(t, rec, &stats)
	assert.Equal(t, enrollment.TermSummary{Term: enrollment.TermSecond, AcademicYear: "2023/2024", TotalEnrollment: 465}, stats.CurrentTerm)
	require.NotNil(t, stats.PreviousTerm)
	assert.Equal(t, 450, stats.PreviousTerm.TotalEnrollment)
	assert.InDelta(t, 3.3333, stats.TermOverTermGrowth, 0.001)

	runHTTPTests(t, app, []httpTest{
		{
			name: "no records", path: "/v1/enrollments/stats?school_id=2", token: token,
			wantCode: http.StatusNotFound, wantData: marchallErr(t, enrollment.ErrNoData.Error()),
		},
		{
			name: "unknown filter", path: "/v1/enrollments/stats?term=first", token: token,
			wantCode: http.StatusBadRequest, wantData: marchallErr(t, map[string]string{"term": "unknown filter"}),
		},
	})
}

func Test_enrollmentApi_write(t *testing.T) {
	app, _ := newApp(t)
	token := getToken(t, analyst)
	valid := enrollment.NewTermEnrollment{
		SchoolID: "2", AcademicYear: "2023/2024", Term: "First",
		TotalStudents: 5, MaleStudents: 100, FemaleStudents: 120, SpecialNeedsStudents: 4,
	}

	runHTTPTests(t, app, []httpTest{
		{
			name: "viewers are read-only", method: http.MethodPost, path: "/v1/enrollments", token: getToken(t, viewer),
			body: marchallObj(t, valid), wantCode: http.StatusForbidden,
		},
		{
			name: "bad academic year", method: http.MethodPost, path: "/v1/enrollments", token: token,
			body: marchallObj(t, enrollment.NewTermEnrollment{SchoolID: "2", AcademicYear: "2023/2025", Term: "first"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallErr(t, map[string]string{"academic_year": "academic year must look like 2023/2024"}),
		},
		{
			name: "more special needs students than students", method: http.MethodPost, path: "/v1/enrollments", token: token,
			body: marchallObj(t, enrollment.NewTermEnrollment{
				SchoolID: "2", AcademicYear: "2023/2024", Term: "first", MaleStudents: 1, FemaleStudents: 1, SpecialNeedsStudents: 3,
			}),
			wantCode: http.StatusBadRequest,
		},
	})

	req, rec := newAuthRequest(http.MethodPost, "/v1/enrollments", token, marchallObj(t, valid))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created enrollment.TermEnrollment
	decodeData(t, rec, &created)
	assert.Equal(t, 220, created.TotalStudents, "total is derived from male and female")
	assert.Equal(t, enrollment.TermFirst, created.Term)

	update := valid
	update.FemaleStudents = 130
	req, rec = newAuthRequest(http.MethodPut, "/v1/enrollments/"+created.ID, token, marchallObj(t, update))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated enrollment.TermEnrollment
	decodeData(t, rec, &updated)
	assert.Equal(t, 230, updated.TotalStudents)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	req, rec = newAuthRequest(http.MethodGet, "/v1/enrollments?school_id=2", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []enrollment.TermEnrollment
	decodeData(t, rec, &records)
	assert.Len(t, records, 1)

	runHTTPTests(t, app, []httpTest{
		{name: "delete", method: http.MethodDelete, path: "/v1/enrollments/" + created.ID, token: token, wantCode: http.StatusNoContent},
		{
			name: "deleted", path: "/v1/enrollments/" + created.ID, token: token,
			wantCode: http.StatusNotFound, wantData: marchallErr(t, "term enrollment not found"),
		},
	})
}

func Test_enrollmentApi_trends(t *testing.T) {
	app, _ := newApp(t)
	token := getToken(t, viewer)

	req, rec := newAuthRequest(http.MethodGet, "/v1/trends/enrollment?school_id=1", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var trends []enrollment.Trend
	decodeData(t, rec, &trends)
	require.Len(t, trends, 1)
	assert.Len(t, trends[0].Data, 4)

	req, rec = newAuthRequest(http.MethodGet, "/v1/trends/forecasts", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var forecasts []enrollment.Forecast
	decodeData(t, rec, &forecasts)
	assert.Len(t, forecasts, 2)

	req, rec = newAuthRequest(http.MethodGet, "/v1/trends/year-over-year?school_id=2", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var growth []enrollment.YearOverYear
	decodeData(t, rec, &growth)
	require.Len(t, growth, 1)
	require.Len(t, growth[0].GrowthRates, 3)
	assert.Equal(t, 2021, growth[0].GrowthRates[0].Year)
	assert.InDelta(t, 6.25, growth[0].GrowthRates[0].GrowthRate, 0.0001)

	runHTTPTests(t, app, []httpTest{
		{name: "unknown school", path: "/v1/trends/seasonal?school_id=42", token: token, wantCode: http.StatusOK, wantData: marchallData(t, []interface{}{})},
	})
}
