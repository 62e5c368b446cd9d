package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edudash/core/school"
)

func schoolNames(schools []school.School) []string {
	names := make([]string, len(schools))
	for i, s := range schools {
		names[i] = s.Name
	}
	return names
}

func Test_schoolApi_query(t *testing.T) {
	app, _ := newApp(t)
	token := getToken(t, viewer)

	runHTTPTests(t, app, []httpTest{
		{name: "auth required", path: "/v1/schools", wantCode: http.StatusUnauthorized, wantData: marchallErr(t, errMissingToken)},
		{
			name: "invalid ownership", path: "/v1/schools?ownership=church", token: token,
			wantCode: http.StatusBadRequest, wantData: marchallErr(t, map[string]string{"ownership": "invalid choice"}),
		},
	})

	tests := []struct {
		name      string
		path      string
		wantNames []string
	}{
		{name: "all", path: "/v1/schools", wantNames: []string{"Central High School", "Government College"}},
		{name: "ordered by -name", path: "/v1/schools?ordering=-name", wantNames: []string{"Government College", "Central High School"}},
		{name: "ownership=federal", path: "/v1/schools?ownership=federal", wantNames: []string{"Government College"}},
		{name: "lga contains ikeja", path: "/v1/schools?lga=ikeja", wantNames: []string{"Central High School"}},
		{name: "no primary schools", path: "/v1/schools?type=primary", wantNames: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var schools []school.School
			decodeData(t, rec, &schools)
			assert.Equal(t, tt.wantNames, schoolNames(schools))
		})
	}
}

func Test_schoolApi_statsAndSearch(t *testing.T) {
	app, _ := newApp(t)
	token := getToken(t, viewer)

	req, rec := newAuthRequest(http.MethodGet, "/v1/schools/stats", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stats school.Stats
	decodeData(t, rec, &stats)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, map[string]int{"primary": 0, "secondary": 2, "tertiary": 0}, stats.ByType)
	assert.Equal(t, map[string]int{"federal": 1, "state": 1, "private": 0}, stats.ByOwnership)
	assert.Equal(t, 2, stats.ByStatus[school.StatusApproved])

	req, rec = newAuthRequest(http.MethodGet, "/v1/schools/search?q=college", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var schools []school.School
	decodeData(t, rec, &schools)
	assert.Equal(t, []string{"Government College"}, schoolNames(schools))

	runHTTPTests(t, app, []httpTest{
		{
			name: "bad limit", path: "/v1/schools/search?q=a&limit=x", token: token,
			wantCode: http.StatusBadRequest, wantData: marchallErr(t, map[string]string{"limit": "must be a number"}),
		},
	})
}

func Test_schoolApi_write(t *testing.T) {
	app, _ := newApp(t)
	analystToken := getToken(t, analyst)
	newSchool := school.NewSchool{
		Name: " Unity Primary ", Type: "Primary", Ownership: "private", LGA: "Ikorodu", State: "Lagos",
		Latitude: 6.6194, Longitude: 3.5105, HasWater: true,
	}

	runHTTPTests(t, app, []httpTest{
		{
			name: "viewers cannot create", method: http.MethodPost, path: "/v1/schools", token: getToken(t, viewer),
			body: marchallObj(t, newSchool), wantCode: http.StatusForbidden, wantData: marchallErr(t, errForbidden),
		},
		{
			name: "invalid payload", method: http.MethodPost, path: "/v1/schools", token: analystToken,
			body:     marchallObj(t, school.NewSchool{Name: "X", Type: "nursery", Ownership: "state", LGA: "Ikeja", State: "Lagos", Latitude: 91}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "analysts cannot approve", method: http.MethodPut, path: "/v1/schools/1/status", token: analystToken,
			body: marchallObj(t, school.StatusUpdate{Status: school.StatusRejected}), wantCode: http.StatusForbidden,
		},
		{
			name: "unknown school", path: "/v1/schools/999", token: analystToken,
			wantCode: http.StatusNotFound, wantData: marchallErr(t, "school not found"),
		},
	})

	req, rec := newAuthRequest(http.MethodPost, "/v1/schools", analystToken, marchallObj(t, newSchool))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created school.School
	decodeData(t, rec, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Unity Primary", created.Name)
	assert.Equal(t, school.TypePrimary, created.Type)
	assert.Equal(t, school.StatusPending, created.Status)

	req, rec = newAuthRequest(http.MethodPut, "/v1/schools/"+created.ID+"/status", getToken(t, admin),
		marchallObj(t, school.StatusUpdate{Status: "APPROVED"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var approved school.School
	decodeData(t, rec, &approved)
	assert.Equal(t, school.StatusApproved, approved.Status)
	assert.Equal(t, "Unity Primary", approved.Name)

	runHTTPTests(t, app, []httpTest{
		{name: "delete", method: http.MethodDelete, path: "/v1/schools/" + created.ID, token: analystToken, wantCode: http.StatusNoContent},
		{name: "deleted", path: "/v1/schools/" + created.ID, token: analystToken, wantCode: http.StatusNotFound},
	})
}
