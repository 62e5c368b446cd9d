package performance

import (
	"time"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/school"
)

// Exam types
const (
	ExamWAEC = "WAEC"
	ExamNECO = "NECO"
)

var ExamTypes = []string{ExamWAEC, ExamNECO}

// Record is a school's result in one exam sitting.
type Record struct {
	ID            string    `json:"id"`
	SchoolID      string    `json:"school_id"`
	Year          int       `json:"year"`
	ExamType      string    `json:"exam_type"`
	TotalStudents int       `json:"total_students"`
	PassRate      float64   `json:"pass_rate"`
	AverageScore  float64   `json:"average_score"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

// PassedStudents estimates the students who passed from the pass rate.
func (r Record) PassedStudents() int {
	return int(float64(r.TotalStudents)*r.PassRate/100 + .5)
}

// ComparisonFilters holds the performance page filters.
type ComparisonFilters struct {
	State           string `json:"state"`
	ExamType        string `json:"exam_type"`
	Year            int    `json:"year"`
	Subject         string `json:"subject"`
	SchoolType      string `json:"school_type"`
	SchoolOwnership string `json:"school_ownership"`
}

var _ core.Filter = (*ComparisonFilters)(nil)

func (f *ComparisonFilters) Set(key, value string) (err error) {
	value = core.CleanString(value)
	switch key {
	case "state":
		f.State = value
	case "exam_type":
		f.ExamType = value
	case "year":
		f.Year, err = core.ParseFilterInt(key, value)
	case "subject":
		f.Subject = value
	case "school_type":
		f.SchoolType, err = core.OneOf(key, value, school.Types)
	case "school_ownership":
		f.SchoolOwnership, err = core.OneOf(key, value, school.Ownerships)
	default:
		err = core.NewUnknownFilterError(key)
	}
	return err
}

func (f ComparisonFilters) MatchSchool(s school.School) bool {
	return core.ContainsFold(s.State, f.State) &&
		(f.SchoolType == "" || s.Type == f.SchoolType) &&
		(f.SchoolOwnership == "" || s.Ownership == f.SchoolOwnership)
}

func (f ComparisonFilters) MatchRecord(r Record) bool {
	return core.MatchFold(r.ExamType, f.ExamType) && (f.Year == 0 || r.Year == f.Year)
}

func FilterPanel() []core.FilterField {
	return []core.FilterField{
		{Key: "state", Label: "State", Type: core.FieldText},
		{Key: "exam_type", Label: "Exam Type", Type: core.FieldSelect, Options: core.Options(ExamTypes...)},
		{Key: "year", Label: "Year", Type: core.FieldText},
		{Key: "subject", Label: "Subject", Type: core.FieldText},
		{Key: "school_type", Label: "School Type", Type: core.FieldSelect, Options: core.Options(school.Types...)},
		{Key: "school_ownership", Label: "Ownership", Type: core.FieldSelect, Options: core.Options(school.Ownerships...)},
	}
}

type (
	SchoolPerformance struct {
		SchoolName    string  `json:"school_name"`
		ExamType      string  `json:"exam_type"`
		TotalStudents int     `json:"total_students"`
		PassRate      float64 `json:"pass_rate"`
		AverageScore  float64 `json:"average_score"`
		Year          int     `json:"year"`
	}

	SubjectPerformance struct {
		Name              string             `json:"name"`
		PassRate          float64            `json:"pass_rate"`
		TotalStudents     int                `json:"total_students"`
		AverageScore      float64            `json:"average_score"`
		HighestScore      float64            `json:"highest_score"`
		LowestScore       float64            `json:"lowest_score"`
		GradeDistribution map[string]float64 `json:"grade_distribution"` // % of graded students
	}

	ExamTrend struct {
		Year          int     `json:"year"`
		ExamType      string  `json:"exam_type"`
		PassRate      float64 `json:"pass_rate"`
		TotalStudents int     `json:"total_students"`
	}

	Stats struct {
		OverallPassRate    float64              `json:"overall_pass_rate"`
		TotalStudents      int                  `json:"total_students"`
		PassedStudents     int                  `json:"passed_students"`
		TopSubject         string               `json:"top_subject"`
		TopSubjectScore    float64              `json:"top_subject_score"`
		TopSubjectPassRate float64              `json:"top_subject_pass_rate"`
		YoYGrowth          float64              `json:"yoy_growth"`
		PreviousYearRate   float64              `json:"previous_year_rate"`
		CurrentYearRate    float64              `json:"current_year_rate"`
		MaleStudents       int                  `json:"male_students"`
		FemaleStudents     int                  `json:"female_students"`
		SchoolPerformance  []SchoolPerformance  `json:"school_performance"`
		SubjectPerformance []SubjectPerformance `json:"subject_performance"`
		ExamTrends         []ExamTrend          `json:"exam_trends"`
	}
)

var SchoolOrderings = map[string]core.Comparator[SchoolPerformance]{
	"school_name":    func(a, b SchoolPerformance) int { return core.CompareStrings(a.SchoolName, b.SchoolName) },
	"exam_type":      func(a, b SchoolPerformance) int { return core.CompareStrings(a.ExamType, b.ExamType) },
	"total_students": func(a, b SchoolPerformance) int { return core.CompareNumbers(a.TotalStudents, b.TotalStudents) },
	"pass_rate":      func(a, b SchoolPerformance) int { return core.CompareNumbers(a.PassRate, b.PassRate) },
	"average_score":  func(a, b SchoolPerformance) int { return core.CompareNumbers(a.AverageScore, b.AverageScore) },
	"year":           func(a, b SchoolPerformance) int { return core.CompareNumbers(a.Year, b.Year) },
}
