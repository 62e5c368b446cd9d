package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edudash/core/catalog"
	"github.com/trezcool/edudash/core/region"
	"github.com/trezcool/edudash/core/staff"
)

func Test_staffApi(t *testing.T) {
	app, _ := newApp(t)
	token := getToken(t, analyst)

	var members []staff.Staff
	getStats(t, app, "/v1/staff?role=teacher&ordering=-name", &members)
	require.Len(t, members, 2)
	assert.Equal(t, "Chiamaka Eze", members[0].Name)

	getStats(t, app, "/v1/staff?subject=english%20language", &members)
	require.Len(t, members, 1)
	assert.Equal(t, "2", members[0].ID)

	var stats staff.Stats
	getStats(t, app, "/v1/staff/stats", &stats)
	assert.Equal(t, 3, stats.TotalStaff)
	assert.Equal(t, 2, stats.ByRole[staff.RoleTeacher])
	assert.Equal(t, 285.0, stats.StudentTeacherRatio)

	runHTTPTests(t, app, []httpTest{
		{
			name: "invalid qualification", path: "/v1/staff?qualification=phd", token: token,
			wantCode: http.StatusBadRequest, wantData: marchallErr(t, map[string]string{"qualification": "invalid choice"}),
		},
		{
			name: "create requires the school", method: http.MethodPost, path: "/v1/staff", token: token,
			body: marchallObj(t, staff.NewStaff{
				Name: "Ngozi Okafor", Role: staff.RoleSupport, Qualification: staff.QualificationBachelors,
				ExperienceLevel: staff.ExperienceEntry,
			}),
			wantCode: http.StatusBadRequest, wantData: marchallErr(t, map[string]string{"school": "this field is required"}),
		},
		{name: "viewers cannot delete", method: http.MethodDelete, path: "/v1/staff/1", token: getToken(t, viewer), wantCode: http.StatusForbidden},
		{name: "delete", method: http.MethodDelete, path: "/v1/staff/1", token: token, wantCode: http.StatusNoContent},
		{name: "deleted", path: "/v1/staff/1", token: token, wantCode: http.StatusNotFound},
	})
}

func Test_regionApi(t *testing.T) {
	app, _ := newApp(t)
	adminToken := getToken(t, admin)

	var lgas []region.LGA
	getStats(t, app, "/v1/lgas?state_id=1&ordering=name", &lgas)
	require.Len(t, lgas, 3)
	assert.Equal(t, "Eti-Osa", lgas[0].Name)

	runHTTPTests(t, app, []httpTest{
		{
			name: "analysts cannot edit states", method: http.MethodPost, path: "/v1/states", token: getToken(t, analyst),
			body: marchallObj(t, region.StateInput{Name: "Oyo", Code: "OY"}), wantCode: http.StatusForbidden,
		},
		{
			name: "lga of an unknown state", method: http.MethodPost, path: "/v1/lgas", token: adminToken,
			body:     marchallObj(t, region.LGAInput{Name: "Ibadan North", StateID: "42"}),
			wantCode: http.StatusBadRequest, wantData: marchallErr(t, map[string]string{"state_id": "unknown state"}),
		},
		{
			name: "district with a foreign lga", method: http.MethodPost, path: "/v1/senatorial-districts", token: adminToken,
			body:     marchallObj(t, region.DistrictInput{Name: "Lagos West", Code: "law", StateID: "1", LGAIDs: []string{"3", "4"}}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown district", path: "/v1/senatorial-districts/9", token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallErr(t, "senatorial district not found"),
		},
	})

	req, rec := newAuthRequest(http.MethodPost, "/v1/states", adminToken, marchallObj(t, region.StateInput{Name: " Oyo ", Code: "oy"}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var st region.State
	decodeData(t, rec, &st)
	assert.Equal(t, "Oyo", st.Name)
	assert.Equal(t, "OY", st.Code)
}

func Test_catalogApi(t *testing.T) {
	app, _ := newApp(t)
	adminToken := getToken(t, admin)

	var entries []catalog.Entry
	getStats(t, app, "/v1/school-types?ordering=-code", &entries)
	require.Len(t, entries, 3)
	assert.Equal(t, "TER", entries[0].Code)

	getStats(t, app, "/v1/status-types", &entries)
	assert.Equal(t, "PEN", entries[0].Code)

	var exams []catalog.BoardExam
	getStats(t, app, "/v1/board-exams", &exams)
	assert.Len(t, exams, 2)

	runHTTPTests(t, app, []httpTest{
		{
			name: "bad exam date", method: http.MethodPost, path: "/v1/board-exams", token: adminToken,
			body: marchallObj(t, catalog.BoardExamInput{
				Name: "Basic Education Certificate Examination", Code: "BECE",
				ExamDate: "06/05/2024", RegistrationDeadline: "2024-02-01", Status: catalog.ExamUpcoming,
			}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "status type codes are alphanumeric", method: http.MethodPost, path: "/v1/status-types", token: adminToken,
			body:     marchallObj(t, catalog.EntryInput{Name: "Suspended", Code: "SU-S"}),
			wantCode: http.StatusBadRequest, wantData: marchallErr(t, map[string]string{"code": "only alphanumeric characters and underscores are allowed"}),
		},
		{
			name: "unknown status type", path: "/v1/status-types/42", token: adminToken,
			wantCode: http.StatusNotFound,
		},
	})
}
