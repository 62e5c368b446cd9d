package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	member := Staff{
		Name: "Adebayo Ogunleye", Role: RoleTeacher, Qualification: QualificationMasters,
		ExperienceLevel: ExperienceSenior, Subjects: []string{"Mathematics", "Further Mathematics"},
		School: "Central High School",
	}

	var f Filter
	require.NoError(t, f.Set("subject", " mathematics "))
	assert.True(t, f.Match(member))
	require.NoError(t, f.Set("subject", "Math"))
	assert.False(t, f.Match(member), "subjects match whole names only")

	f = Filter{}
	require.NoError(t, f.Set("school", "central"))
	require.NoError(t, f.Set("role", RoleTeacher))
	assert.True(t, f.Match(member))
	require.NoError(t, f.Set("experience_level", ExperienceEntry))
	assert.False(t, f.Match(member))

	assert.EqualError(t, f.Set("role", "janitor"), "role: invalid choice")
	assert.EqualError(t, f.Set("qualification", "phd"), "qualification: invalid choice")
	assert.EqualError(t, f.Set("salary", "1"), "salary: unknown filter")

	for _, fld := range FilterPanel() {
		assert.NoError(t, f.Set(fld.Key, ""), fld.Key)
	}
	assert.True(t, f.Match(member))
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(nil, 500)
	assert.Zero(t, stats.TotalStaff)
	assert.Zero(t, stats.StudentTeacherRatio)
	assert.Zero(t, stats.AverageExperienceYears)
	assert.Len(t, stats.ByRole, len(Roles))

	stats = ComputeStats([]Staff{
		{Role: RoleTeacher, Qualification: QualificationMasters, ExperienceLevel: ExperienceSenior},
		{Role: RoleTeacher, Qualification: QualificationBachelors, ExperienceLevel: ExperienceIntermediate},
		{Role: RoleAdministrator, Qualification: QualificationDoctorate, ExperienceLevel: ExperienceExpert},
	}, 570)
	assert.Equal(t, 3, stats.TotalStaff)
	assert.Equal(t, map[string]int{RoleTeacher: 2, RoleAdministrator: 1, RoleSupport: 0}, stats.ByRole)
	assert.Equal(t, 1, stats.ByQualification[QualificationDoctorate])
	assert.Equal(t, 0, stats.ByQualification[QualificationTeachingCert])
	assert.Equal(t, 1, stats.ByExperience[ExperienceExpert])
	assert.Equal(t, 285.0, stats.StudentTeacherRatio)
	assert.Equal(t, 9.0, stats.AverageExperienceYears)

	// administrators only
	stats = ComputeStats([]Staff{{Role: RoleAdministrator, ExperienceLevel: ExperienceEntry}}, 100)
	assert.Zero(t, stats.StudentTeacherRatio)
	assert.Equal(t, 1.0, stats.AverageExperienceYears)
}
