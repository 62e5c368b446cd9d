package exam

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// PassRate is passed/total as a percentage; 0 when total is 0.
func PassRate(passed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(passed) / float64(total) * 100
}

// FormatRate renders a pass rate the way the results form displays it.
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f", rate)
}

// SubjectForm is one editable subject row of the exam results form.
type SubjectForm struct {
	NewSubject
}

// Set applies a field change from its string form. The pass rate follows every
// total/passed change. A grade bucket change that would put more students in the
// grade buckets than sat the exam is dropped, and Set returns false.
func (sf *SubjectForm) Set(field, value string) (bool, error) {
	if field == "subject_name" {
		sf.SubjectName = value
		return true, nil
	}

	next := sf.NewSubject
	switch field {
	case "total_students", "passed_students",
		"grade_a_count", "grade_b_count", "grade_c_count", "grade_d_count", "grade_f_count":
		n, err := strconv.Atoi(value)
		if err != nil {
			return false, errors.Errorf("%s: must be a number", field)
		}
		*next.intField(field) = n
	case "average_score", "highest_score", "lowest_score":
		x, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false, errors.Errorf("%s: must be a number", field)
		}
		*next.floatField(field) = x
	default:
		return false, errors.Errorf("unknown field: %s", field)
	}

	switch field {
	case "total_students", "passed_students":
		next.PassRate = PassRate(next.PassedStudents, next.TotalStudents)
	case "grade_a_count", "grade_b_count", "grade_c_count", "grade_d_count", "grade_f_count":
		if next.GradeTotal() > next.TotalStudents {
			return false, nil
		}
	}
	sf.NewSubject = next
	return true, nil
}

func (ns *NewSubject) intField(name string) *int {
	switch name {
	case "total_students":
		return &ns.TotalStudents
	case "passed_students":
		return &ns.PassedStudents
	case "grade_a_count":
		return &ns.GradeACount
	case "grade_b_count":
		return &ns.GradeBCount
	case "grade_c_count":
		return &ns.GradeCCount
	case "grade_d_count":
		return &ns.GradeDCount
	}
	return &ns.GradeFCount
}

func (ns *NewSubject) floatField(name string) *float64 {
	switch name {
	case "average_score":
		return &ns.AverageScore
	case "highest_score":
		return &ns.HighestScore
	}
	return &ns.LowestScore
}
