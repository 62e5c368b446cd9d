// Package catalog holds the descriptive lookup tables: school types, status types and board exams.
package catalog

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edudash/core"
)

// Board exam statuses
const (
	ExamUpcoming  = "upcoming"
	ExamOngoing   = "ongoing"
	ExamCompleted = "completed"
)

var ExamStatuses = []string{ExamUpcoming, ExamOngoing, ExamCompleted}

// Entry kinds
const (
	KindSchoolType = "school_type"
	KindStatusType = "status_type"
)

var Kinds = []string{KindSchoolType, KindStatusType}

// Entry is a coded lookup row. School types and status types share this shape.
type Entry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

type BoardExam struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Code                 string    `json:"code"`
	Description          string    `json:"description"`
	ExamDate             string    `json:"exam_date"`             // YYYY-MM-DD
	RegistrationDeadline string    `json:"registration_deadline"` // YYYY-MM-DD
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"` // UTC
	UpdatedAt            time.Time `json:"updated_at"` // UTC
}

// EntryInput is the school type / status type form payload.
type EntryInput struct {
	Name        string `json:"name" validate:"required"`
	Code        string `json:"code" validate:"required,alphanum_"`
	Description string `json:"description"`
}

func (in *EntryInput) Validate(validate *validator.Validate) error {
	in.Name = core.CleanString(in.Name)
	in.Code = strings.ToUpper(core.CleanString(in.Code))
	in.Description = core.CleanString(in.Description)
	return validate.Struct(in)
}

// BoardExamInput is the board exam form payload.
type BoardExamInput struct {
	Name                 string `json:"name" validate:"required"`
	Code                 string `json:"code" validate:"required,alphanum_"`
	Description          string `json:"description"`
	ExamDate             string `json:"exam_date" validate:"required,datetime=2006-01-02"`
	RegistrationDeadline string `json:"registration_deadline" validate:"required,datetime=2006-01-02"`
	Status               string `json:"status" validate:"required,oneof=upcoming ongoing completed"`
}

func (in *BoardExamInput) Validate(validate *validator.Validate) error {
	in.Name = core.CleanString(in.Name)
	in.Code = strings.ToUpper(core.CleanString(in.Code))
	in.Description = core.CleanString(in.Description)
	in.ExamDate = core.CleanString(in.ExamDate)
	in.RegistrationDeadline = core.CleanString(in.RegistrationDeadline)
	in.Status = core.CleanString(in.Status, true /* lower */)
	if err := validate.Struct(in); err != nil {
		return err
	}
	// both dates parsed fine above
	if in.RegistrationDeadline > in.ExamDate {
		return core.NewValidationError(nil, core.FieldError{
			Field: "registration_deadline",
			Error: "registration deadline must not be after the exam date",
		})
	}
	return nil
}

var (
	EntryOrderings = map[string]core.Comparator[Entry]{
		"name": func(a, b Entry) int { return core.CompareStrings(a.Name, b.Name) },
		"code": func(a, b Entry) int { return core.CompareStrings(a.Code, b.Code) },
	}
	BoardExamOrderings = map[string]core.Comparator[BoardExam]{
		"name":      func(a, b BoardExam) int { return core.CompareStrings(a.Name, b.Name) },
		"code":      func(a, b BoardExam) int { return core.CompareStrings(a.Code, b.Code) },
		"exam_date": func(a, b BoardExam) int { return strings.Compare(a.ExamDate, b.ExamDate) },
		"status":    func(a, b BoardExam) int { return core.CompareStrings(a.Status, b.Status) },
	}
)
