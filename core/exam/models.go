// Package exam records board exam results per school, their per-subject breakdown
// and the grading schemes used to grade them.
package exam

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edudash/core"
)

type Result struct {
	ID             string    `json:"id"`
	SchoolID       string    `json:"school_id"`
	ExamID         string    `json:"exam_id"`
	AcademicYear   string    `json:"academic_year"`
	TotalStudents  int       `json:"total_students"`
	PassedStudents int       `json:"passed_students"`
	PassRate       float64   `json:"pass_rate"`
	AverageScore   float64   `json:"average_score"`
	CreatedAt      time.Time `json:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at"` // UTC
}

type SubjectResult struct {
	ID             string    `json:"id"`
	ResultID       string    `json:"result_id"`
	SubjectName    string    `json:"subject_name"`
	TotalStudents  int       `json:"total_students"`
	PassedStudents int       `json:"passed_students"`
	PassRate       float64   `json:"pass_rate"`
	AverageScore   float64   `json:"average_score"`
	HighestScore   float64   `json:"highest_score"`
	LowestScore    float64   `json:"lowest_score"`
	GradeACount    int       `json:"grade_a_count"`
	GradeBCount    int       `json:"grade_b_count"`
	GradeCCount    int       `json:"grade_c_count"`
	GradeDCount    int       `json:"grade_d_count"`
	GradeFCount    int       `json:"grade_f_count"`
	CreatedAt      time.Time `json:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at"` // UTC
}

// ResultDetail is a result with its subject breakdown.
type ResultDetail struct {
	Result
	Subjects []SubjectResult `json:"subjects"`
}

// NewSubject is one subject row of the exam results form.
type NewSubject struct {
	SubjectName    string  `json:"subject_name" validate:"required"`
	TotalStudents  int     `json:"total_students" validate:"min=0"`
	PassedStudents int     `json:"passed_students" validate:"min=0,ltefield=TotalStudents"`
	PassRate       float64 `json:"pass_rate"`
	AverageScore   float64 `json:"average_score" validate:"min=0,max=100"`
	HighestScore   float64 `json:"highest_score" validate:"min=0,max=100"`
	LowestScore    float64 `json:"lowest_score" validate:"min=0,max=100,ltefield=HighestScore"`
	GradeACount    int     `json:"grade_a_count" validate:"min=0"`
	GradeBCount    int     `json:"grade_b_count" validate:"min=0"`
	GradeCCount    int     `json:"grade_c_count" validate:"min=0"`
	GradeDCount    int     `json:"grade_d_count" validate:"min=0"`
	GradeFCount    int     `json:"grade_f_count" validate:"min=0"`
}

// GradeTotal is the number of students spread over the grade buckets.
func (ns NewSubject) GradeTotal() int {
	return ns.GradeACount + ns.GradeBCount + ns.GradeCCount + ns.GradeDCount + ns.GradeFCount
}

// NewResult is the exam results form payload: the school result and its subjects.
type NewResult struct {
	SchoolID       string       `json:"school_id" validate:"required"`
	ExamID         string       `json:"exam_id" validate:"required"`
	AcademicYear   string       `json:"academic_year" validate:"required,academic_year"`
	TotalStudents  int          `json:"total_students" validate:"min=0"`
	PassedStudents int          `json:"passed_students" validate:"min=0,ltefield=TotalStudents"`
	PassRate       float64      `json:"pass_rate"`
	AverageScore   float64      `json:"average_score" validate:"min=0,max=100"`
	Subjects       []NewSubject `json:"subjects" validate:"dive"`
}

const msgGradesExceedTotal = "grade counts exceed total students"

func (nr *NewResult) Validate(validate *validator.Validate) error {
	nr.SchoolID = core.CleanString(nr.SchoolID)
	nr.ExamID = core.CleanString(nr.ExamID)
	nr.AcademicYear = core.CleanString(nr.AcademicYear)
	nr.PassRate = PassRate(nr.PassedStudents, nr.TotalStudents)
	for i := range nr.Subjects {
		sub := &nr.Subjects[i]
		sub.SubjectName = core.CleanString(sub.SubjectName)
		sub.PassRate = PassRate(sub.PassedStudents, sub.TotalStudents)
	}
	if err := validate.Struct(nr); err != nil {
		return err
	}
	for _, sub := range nr.Subjects {
		if sub.GradeTotal() > sub.TotalStudents {
			return core.NewValidationError(nil, core.FieldError{Field: "subjects", Error: msgGradesExceedTotal})
		}
	}
	return nil
}

// Filter narrows results to a school and/or a board exam.
type Filter struct {
	SchoolID string `json:"school_id"`
	ExamID   string `json:"exam_id"`
}

var _ core.Filter = (*Filter)(nil)

func (f *Filter) Set(key, value string) error {
	value = core.CleanString(value)
	switch key {
	case "school_id":
		f.SchoolID = value
	case "exam_id":
		f.ExamID = value
	default:
		return core.NewUnknownFilterError(key)
	}
	return nil
}

func (f Filter) Match(r Result) bool {
	return (f.SchoolID == "" || r.SchoolID == f.SchoolID) &&
		(f.ExamID == "" || r.ExamID == f.ExamID)
}

var Orderings = map[string]core.Comparator[Result]{
	"academic_year":  func(a, b Result) int { return core.CompareStrings(a.AcademicYear, b.AcademicYear) },
	"total_students": func(a, b Result) int { return core.CompareNumbers(a.TotalStudents, b.TotalStudents) },
	"pass_rate":      func(a, b Result) int { return core.CompareNumbers(a.PassRate, b.PassRate) },
	"average_score":  func(a, b Result) int { return core.CompareNumbers(a.AverageScore, b.AverageScore) },
	"created_at":     func(a, b Result) int { return a.CreatedAt.Compare(b.CreatedAt) },
}
