package exam

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/edudash/core"
)

const (
	DefaultPassingScore = 40

	msgInvalidRanges = "Please ensure grade ranges cover all scores from 0 to 100 without gaps or overlaps."
)

type GradeRange struct {
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
}

type GradingScheme struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	ExamType     string       `json:"exam_type"`
	PassingScore int          `json:"passing_score"`
	GradeRanges  []GradeRange `json:"grade_ranges"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"` // UTC
	UpdatedAt    time.Time    `json:"updated_at"` // UTC
}

// GradeFor returns the range holding score, if any.
func (gs GradingScheme) GradeFor(score int) (GradeRange, bool) {
	for _, r := range gs.GradeRanges {
		if score >= r.Min && score <= r.Max {
			return r, true
		}
	}
	return GradeRange{}, false
}

// SchemeInput is the grading scheme modal payload. IsActive defaults to true.
type SchemeInput struct {
	Name         string       `json:"name" validate:"required"`
	ExamType     string       `json:"exam_type" validate:"required"`
	PassingScore *int         `json:"passing_score" validate:"omitempty,min=0,max=100"`
	GradeRanges  []GradeRange `json:"grade_ranges"`
	IsActive     *bool        `json:"is_active"`
}

func (in *SchemeInput) Validate(validate *validator.Validate) error {
	in.Name = core.CleanString(in.Name)
	in.ExamType = core.CleanString(in.ExamType)
	if in.PassingScore == nil {
		score := DefaultPassingScore
		in.PassingScore = &score
	}
	if in.IsActive == nil {
		active := true
		in.IsActive = &active
	}
	for i := range in.GradeRanges {
		in.GradeRanges[i].Grade = core.CleanString(in.GradeRanges[i].Grade)
		in.GradeRanges[i].Description = core.CleanString(in.GradeRanges[i].Description)
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	return ValidateRanges(in.GradeRanges)
}

// ValidateRanges checks that the ranges tile 0..100 exactly: sorted by max descending,
// each range starts right above the next one, the first ends at 100 and the last starts at 0.
func ValidateRanges(ranges []GradeRange) error {
	invalid := core.NewValidationError(nil, core.FieldError{Field: "grade_ranges", Error: msgInvalidRanges})
	if len(ranges) == 0 {
		return invalid
	}

	sorted := append([]GradeRange(nil), ranges...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Max > sorted[j].Max })
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].Min != sorted[i+1].Max+1 {
			return invalid
		}
	}
	if sorted[0].Max != 100 || sorted[len(sorted)-1].Min != 0 {
		return invalid
	}
	return nil
}

var SchemeOrderings = map[string]core.Comparator[GradingScheme]{
	"name":       func(a, b GradingScheme) int { return core.CompareStrings(a.Name, b.Name) },
	"exam_type":  func(a, b GradingScheme) int { return core.CompareStrings(a.ExamType, b.ExamType) },
	"is_active":  func(a, b GradingScheme) int { return core.CompareBools(a.IsActive, b.IsActive) },
	"created_at": func(a, b GradingScheme) int { return a.CreatedAt.Compare(b.CreatedAt) },
}
