package demographics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/demographics"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/school"
	"github.com/trezcool/edudash/core/staff"
	testutil "github.com/trezcool/edudash/tests"
)

func TestBalanced(t *testing.T) {
	tests := []struct {
		male, female int
		want         bool
	}{
		{0, 0, true},
		{100, 100, true},
		{100, 90, true},
		{90, 100, true},
		{100, 89, false},
		{0, 10, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, demographics.Balanced(tt.male, tt.female), "%d/%d", tt.male, tt.female)
	}
}

func TestComputeStats(t *testing.T) {
	created := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	schools := []school.School{
		{ID: "1", Name: "Zion Primary", Type: school.TypePrimary, State: "Ogun"},
		{ID: "2", Name: "Apex College", Type: school.TypeSecondary, State: "Lagos"},
		{ID: "3", Name: "No Data", Type: school.TypeSecondary, State: "Lagos"},
	}
	latest := map[string]enrollment.TermEnrollment{
		"1": {SchoolID: "1", TotalStudents: 100, MaleStudents: 50, FemaleStudents: 50, CreatedAt: created},
		"2": {SchoolID: "2", TotalStudents: 300, MaleStudents: 200, FemaleStudents: 100, SpecialNeedsStudents: 6, CreatedAt: created},
	}
	members := []staff.Staff{
		{Role: staff.RoleTeacher, School: "apex college"},
		{Role: staff.RoleTeacher, School: "Apex College", Specializations: []string{"Special Needs Education"}},
		{Role: staff.RoleAdministrator, School: "Apex College", Specializations: []string{"special education", "SEN"}},
	}

	stats := demographics.ComputeStats(schools, latest, members, demographics.Filter{})
	require.Len(t, stats.SchoolDemographics, 2)
	apex, zion := stats.SchoolDemographics[0], stats.SchoolDemographics[1]
	assert.Equal(t, "Apex College", apex.SchoolName)
	assert.Equal(t, 2, apex.Teachers)
	assert.Equal(t, 150, apex.ClassSize)
	assert.Equal(t, 15.0, apex.AverageAge)
	assert.Equal(t, 2024, apex.Year)
	assert.Equal(t, 4, zion.Teachers, "falls back to one teacher per 25 students")
	assert.Equal(t, 25, zion.ClassSize)
	assert.Equal(t, 9.0, zion.AverageAge)

	assert.Equal(t, 2, stats.TotalSchools)
	assert.Equal(t, 400, stats.TotalStudents)
	assert.Equal(t, 1.67, stats.GenderRatio)
	assert.Equal(t, 6, stats.SpecialNeedsStudents)
	assert.Equal(t, 2, stats.SpecialNeedsStaff)
	assert.Equal(t, 87.5, stats.AverageClassSize)
	assert.Equal(t, 66.7, stats.StudentTeacherRatio)

	stats = demographics.ComputeStats(schools, latest, members, demographics.Filter{GenderBalance: true})
	require.Len(t, stats.SchoolDemographics, 1)
	assert.Equal(t, "Zion Primary", stats.SchoolDemographics[0].SchoolName)

	stats = demographics.ComputeStats(schools, latest, members, demographics.Filter{SpecialNeeds: true, State: "lag"})
	require.Len(t, stats.SchoolDemographics, 1)
	assert.Equal(t, "Apex College", stats.SchoolDemographics[0].SchoolName)

	stats = demographics.ComputeStats(schools, nil, members, demographics.Filter{})
	assert.Zero(t, stats.TotalSchools)
	assert.Zero(t, stats.GenderRatio)
	assert.NotNil(t, stats.SchoolDemographics)
}

func TestFilter_Set(t *testing.T) {
	var f demographics.Filter
	require.NoError(t, f.Set("special_needs", "true"))
	require.NoError(t, f.Set("gender_balance", ""))
	assert.Equal(t, demographics.Filter{SpecialNeeds: true}, f)

	assert.EqualError(t, f.Set("gender_balance", "yes please"), "gender_balance: must be true or false")
	assert.EqualError(t, f.Set("lga", "Ikeja"), "lga: unknown filter")
}

func TestOrderings(t *testing.T) {
	rows := []demographics.SchoolDemographics{{SchoolName: "a", TotalStudents: 5}, {SchoolName: "b", TotalStudents: 50}}
	require.NoError(t, core.SortSlice(rows, core.ParseOrderings("-total_students"), demographics.Orderings))
	assert.Equal(t, "b", rows[0].SchoolName)
}

func TestService_Stats(t *testing.T) {
	svc := testutil.NewServices(testutil.OpenDB(t)).Demographics

	stats, err := svc.Stats(context.Background(), demographics.Filter{})
	require.NoError(t, err)
	require.Len(t, stats.SchoolDemographics, 1)
	row := stats.SchoolDemographics[0]
	assert.Equal(t, "Central High School", row.SchoolName)
	assert.Equal(t, 465, row.TotalStudents)
	assert.Equal(t, 228, row.MaleStudents)
	assert.Equal(t, 237, row.FemaleStudents)
	assert.Equal(t, 16, row.SpecialNeedsStudents)
	assert.Equal(t, 1, row.Teachers)
	assert.Equal(t, 2024, row.Year)
	assert.Equal(t, 0.96, stats.GenderRatio)

	stats, err = svc.Stats(context.Background(), demographics.Filter{SchoolOwnership: school.OwnershipFederal})
	require.NoError(t, err)
	assert.Empty(t, stats.SchoolDemographics)
}
