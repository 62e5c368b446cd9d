package staff

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edudash/core"
)

// Roles
const (
	RoleTeacher       = "teacher"
	RoleAdministrator = "administrator"
	RoleSupport       = "support"
)

// Qualifications
const (
	QualificationBachelors    = "bachelors"
	QualificationMasters      = "masters"
	QualificationDoctorate    = "doctorate"
	QualificationTeachingCert = "teaching_cert"
)

// Experience levels
const (
	ExperienceEntry        = "entry"
	ExperienceIntermediate = "intermediate"
	ExperienceSenior       = "senior"
	ExperienceExpert       = "expert"
)

var (
	Roles            = []string{RoleTeacher, RoleAdministrator, RoleSupport}
	Qualifications   = []string{QualificationBachelors, QualificationMasters, QualificationDoctorate, QualificationTeachingCert}
	ExperienceLevels = []string{ExperienceEntry, ExperienceIntermediate, ExperienceSenior, ExperienceExpert}

	// rough years of experience per level, used for averages
	experienceYears = map[string]float64{
		ExperienceEntry:        1,
		ExperienceIntermediate: 4,
		ExperienceSenior:       8,
		ExperienceExpert:       15,
	}
)

type Staff struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	Qualification   string    `json:"qualification"`
	ExperienceLevel string    `json:"experience_level"`
	Subjects        []string  `json:"subjects"`
	School          string    `json:"school"`
	Certifications  []string  `json:"certifications"`
	Specializations []string  `json:"specializations"`
	CreatedAt       time.Time `json:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at"` // UTC
}

// NewStaff contains information needed to create a new Staff member.
type NewStaff struct {
	Name            string   `json:"name" validate:"required"`
	Role            string   `json:"role" validate:"required,oneof=teacher administrator support"`
	Qualification   string   `json:"qualification" validate:"required,oneof=bachelors masters doctorate teaching_cert"`
	ExperienceLevel string   `json:"experience_level" validate:"required,oneof=entry intermediate senior expert"`
	Subjects        []string `json:"subjects"`
	School          string   `json:"school" validate:"required"`
	Certifications  []string `json:"certifications"`
	Specializations []string `json:"specializations"`
}

func (ns *NewStaff) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Role = core.CleanString(ns.Role, true /* lower */)
	ns.Qualification = core.CleanString(ns.Qualification, true /* lower */)
	ns.ExperienceLevel = core.CleanString(ns.ExperienceLevel, true /* lower */)
	ns.School = core.CleanString(ns.School)
	ns.Subjects = core.CleanStrings(ns.Subjects)
	ns.Certifications = core.CleanStrings(ns.Certifications)
	ns.Specializations = core.CleanStrings(ns.Specializations)
	return validate.Struct(ns)
}

type UpdateStaff NewStaff

func (us *UpdateStaff) Validate(validate *validator.Validate) error {
	return (*NewStaff)(us).Validate(validate)
}

// Filter holds the staff page filters.
type Filter struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	Qualification   string `json:"qualification"`
	ExperienceLevel string `json:"experience_level"`
	Subject         string `json:"subject"`
	School          string `json:"school"`
}

var _ core.Filter = (*Filter)(nil)

func (f *Filter) Set(key, value string) (err error) {
	value = core.CleanString(value)
	switch key {
	case "name":
		f.Name = value
	case "role":
		f.Role, err = core.OneOf(key, value, Roles)
	case "qualification":
		f.Qualification, err = core.OneOf(key, value, Qualifications)
	case "experience_level":
		f.ExperienceLevel, err = core.OneOf(key, value, ExperienceLevels)
	case "subject":
		f.Subject = value
	case "school":
		f.School = value
	default:
		err = core.NewUnknownFilterError(key)
	}
	return err
}

func (f Filter) Match(s Staff) bool {
	return core.ContainsFold(s.Name, f.Name) &&
		(f.Role == "" || s.Role == f.Role) &&
		(f.Qualification == "" || s.Qualification == f.Qualification) &&
		(f.ExperienceLevel == "" || s.ExperienceLevel == f.ExperienceLevel) &&
		(f.Subject == "" || hasSubject(s.Subjects, f.Subject)) &&
		core.ContainsFold(s.School, f.School)
}

func hasSubject(subjects []string, want string) bool {
	for _, s := range subjects {
		if core.MatchFold(s, want) {
			return true
		}
	}
	return false
}

func FilterPanel() []core.FilterField {
	return []core.FilterField{
		{Key: "name", Label: "Name", Type: core.FieldText},
		{Key: "role", Label: "Role", Type: core.FieldSelect, Options: core.Options(Roles...)},
		{Key: "qualification", Label: "Qualification", Type: core.FieldSelect, Options: core.Options(Qualifications...)},
		{Key: "experience_level", Label: "Experience Level", Type: core.FieldSelect, Options: core.Options(ExperienceLevels...)},
		{Key: "subject", Label: "Subject", Type: core.FieldText},
		{Key: "school", Label: "School", Type: core.FieldText},
	}
}

var Orderings = map[string]core.Comparator[Staff]{
	"name":             func(a, b Staff) int { return core.CompareStrings(a.Name, b.Name) },
	"role":             func(a, b Staff) int { return core.CompareStrings(a.Role, b.Role) },
	"qualification":    func(a, b Staff) int { return core.CompareStrings(a.Qualification, b.Qualification) },
	"experience_level": func(a, b Staff) int { return core.CompareStrings(a.ExperienceLevel, b.ExperienceLevel) },
	"school":           func(a, b Staff) int { return core.CompareStrings(a.School, b.School) },
	"created_at":       func(a, b Staff) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

type Stats struct {
	TotalStaff             int            `json:"total_staff"`
	ByRole                 map[string]int `json:"by_role"`
	ByQualification        map[string]int `json:"by_qualification"`
	ByExperience           map[string]int `json:"by_experience"`
	StudentTeacherRatio    float64        `json:"student_teacher_ratio"`
	AverageExperienceYears float64        `json:"average_experience_years"`
}

// ComputeStats counts staff per role, qualification and experience level.
// totalStudents feeds the student/teacher ratio, which is 0 without teachers.
func ComputeStats(members []Staff, totalStudents int) Stats {
	stats := Stats{
		TotalStaff:      len(members),
		ByRole:          zeroCounts(Roles),
		ByQualification: zeroCounts(Qualifications),
		ByExperience:    zeroCounts(ExperienceLevels),
	}
	var years float64
	for _, m := range members {
		stats.ByRole[m.Role]++
		stats.ByQualification[m.Qualification]++
		stats.ByExperience[m.ExperienceLevel]++
		years += experienceYears[m.ExperienceLevel]
	}
	if n := len(members); n > 0 {
		stats.AverageExperienceYears = core.Round(years/float64(n), 1)
	}
	if teachers := stats.ByRole[RoleTeacher]; teachers > 0 {
		stats.StudentTeacherRatio = core.Round(float64(totalStudents)/float64(teachers), 1)
	}
	return stats
}

func zeroCounts(keys []string) map[string]int {
	m := make(map[string]int, len(keys))
	for _, k := range keys {
		m[k] = 0
	}
	return m
}
