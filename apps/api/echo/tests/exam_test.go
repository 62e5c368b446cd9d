package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/edudash/apps/api/echo"
	"github.com/trezcool/edudash/core/exam"
)

func Test_examApi_results(t *testing.T) {
	app, _ := newApp(t)
	token := getToken(t, analyst)

	req, rec := newAuthRequest(http.MethodGet, "/v1/exam-results/1", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var detail exam.ResultDetail
	decodeData(t, rec, &detail)
	assert.Equal(t, 195, detail.PassedStudents)
	assert.Len(t, detail.Subjects, 2)

	newResult := exam.NewResult{
		SchoolID: "2", ExamID: "2", AcademicYear: "2022/2023",
		TotalStudents: 200, PassedStudents: 150, PassRate: 12, AverageScore: 64,
		Subjects: []exam.NewSubject{{
			SubjectName: " Biology ", TotalStudents: 200, PassedStudents: 160,
			AverageScore: 61, HighestScore: 95, LowestScore: 20,
			GradeACount: 40, GradeBCount: 60, GradeCCount: 60, GradeDCount: 20, GradeFCount: 20,
		}},
	}

	tooManyGrades := newResult
	tooManyGrades.Subjects = []exam.NewSubject{newResult.Subjects[0]}
	tooManyGrades.Subjects[0].GradeFCount = 21

	morePassed := newResult
	morePassed.PassedStudents = 201

	runHTTPTests(t, app, []httpTest{
		{
			name: "grades exceed total", method: http.MethodPost, path: "/v1/exam-results", token: token,
			body:     marchallObj(t, tooManyGrades),
			wantCode: http.StatusBadRequest, wantData: marchallErr(t, map[string]string{"subjects": "grade counts exceed total students"}),
		},
		{
			name: "more passed than sat", method: http.MethodPost, path: "/v1/exam-results", token: token,
			body: marchallObj(t, morePassed), wantCode: http.StatusBadRequest,
		},
	})

	req, rec = newAuthRequest(http.MethodPost, "/v1/exam-results", token, marchallObj(t, newResult))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var recorded exam.ResultDetail
	decodeData(t, rec, &recorded)
	assert.Equal(t, 75.0, recorded.PassRate, "the pass rate is derived")
	require.Len(t, recorded.Subjects, 1)
	assert.Equal(t, recorded.ID, recorded.Subjects[0].ResultID)
	assert.Equal(t, "Biology", recorded.Subjects[0].SubjectName)
	assert.Equal(t, 80.0, recorded.Subjects[0].PassRate)

	req, rec = newAuthRequest(http.MethodGet, "/v1/exam-results/subjects?school_id=2", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var subjects []exam.SubjectResult
	decodeData(t, rec, &subjects)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Biology", subjects[0].SubjectName)

	runHTTPTests(t, app, []httpTest{
		{name: "delete", method: http.MethodDelete, path: "/v1/exam-results/" + recorded.ID, token: token, wantCode: http.StatusNoContent},
		{
			name: "deleted", path: "/v1/exam-results/" + recorded.ID, token: token,
			wantCode: http.StatusNotFound, wantData: marchallErr(t, "exam result not found"),
		},
		{
			name: "subjects went with it", path: "/v1/exam-results/subjects?school_id=2", token: token,
			wantCode: http.StatusOK, wantData: marchallData(t, []interface{}{}),
		},
	})
}

func Test_examApi_gradingSchemes(t *testing.T) {
	app, _ := newApp(t)
	adminToken := getToken(t, admin)
	invalidRanges := marchallErr(t, map[string]string{
		"grade_ranges": "Please ensure grade ranges cover all scores from 0 to 100 without gaps or overlaps.",
	})
	gap := []exam.GradeRange{{Min: 50, Max: 100, Grade: "P"}, {Min: 0, Max: 48, Grade: "F"}}
	tiled := []exam.GradeRange{{Min: 0, Max: 49, Grade: "F"}, {Min: 50, Max: 100, Grade: "P"}}

	runHTTPTests(t, app, []httpTest{
		{
			name: "validate gap", method: http.MethodPost, path: "/v1/grading-schemes/validate", token: getToken(t, viewer),
			body: marchallObj(t, echoapi.RangesRequest{GradeRanges: gap}), wantCode: http.StatusBadRequest, wantData: invalidRanges,
		},
		{
			name: "validate tiled", method: http.MethodPost, path: "/v1/grading-schemes/validate", token: getToken(t, viewer),
			body:     marchallObj(t, echoapi.RangesRequest{GradeRanges: tiled}),
			wantCode: http.StatusOK, wantData: marchallData(t, echoapi.SuccessResponse{Success: "grade ranges are valid"}),
		},
		{
			name: "analysts cannot create", method: http.MethodPost, path: "/v1/grading-schemes", token: getToken(t, analyst),
			body: marchallObj(t, exam.SchemeInput{Name: "X", ExamType: "BECE", GradeRanges: tiled}), wantCode: http.StatusForbidden,
		},
		{
			name: "create with a gap", method: http.MethodPost, path: "/v1/grading-schemes", token: adminToken,
			body: marchallObj(t, exam.SchemeInput{Name: "X", ExamType: "BECE", GradeRanges: gap}), wantCode: http.StatusBadRequest, wantData: invalidRanges,
		},
		{
			name: "unknown scheme", path: "/v1/grading-schemes/42", token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallErr(t, "grading scheme not found"),
		},
	})

	req, rec := newAuthRequest(http.MethodPost, "/v1/grading-schemes", adminToken,
		marchallObj(t, exam.SchemeInput{Name: "BECE Basic", ExamType: "BECE", GradeRanges: tiled}))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var scheme exam.GradingScheme
	decodeData(t, rec, &scheme)
	assert.Equal(t, exam.DefaultPassingScore, scheme.PassingScore)
	assert.True(t, scheme.IsActive)

	req, rec = newAuthRequest(http.MethodGet, "/v1/grading-schemes?ordering=name", adminToken)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var schemes []exam.GradingScheme
	decodeData(t, rec, &schemes)
	require.Len(t, schemes, 3)
	assert.Equal(t, []string{"BECE Basic", "NECO Standard", "WAEC Standard"}, []string{schemes[0].Name, schemes[1].Name, schemes[2].Name})
}
