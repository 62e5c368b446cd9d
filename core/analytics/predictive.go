// Package analytics serves the predictive and comparison screens. Their figures are
// placeholders until a forecasting backend exists.
package analytics

import (
	"github.com/trezcool/edudash/core"
)

// Prediction categories
const (
	CategoryPerformance = "performance"
	CategoryResources   = "resources"
	CategoryStudents    = "students"
	CategoryEnrollment  = "enrollment"
)

// Trends
const (
	TrendIncrease   = "increase"
	TrendDecrease   = "decrease"
	TrendStable     = "stable"
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
)

var (
	Categories = []string{CategoryPerformance, CategoryResources, CategoryStudents, CategoryEnrollment}
	Timeframes = []string{"1y", "3y", "5y"}
	Models     = []string{"regression", "ml", "timeseries"}
)

type (
	Prediction struct {
		Metric     string  `json:"metric"`
		Current    float64 `json:"current"`
		Predicted  float64 `json:"predicted"`
		Confidence int     `json:"confidence"`
		Trend      string  `json:"trend"`
	}

	Insight struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Confidence  int    `json:"confidence"`
		Impact      string `json:"impact"`
	}

	RiskFactor struct {
		Factor string `json:"factor"`
		Risk   string `json:"risk"`
		Trend  string `json:"trend"`
	}

	// PredictionQuery selects what the predictive page shows. Empty fields take the defaults.
	PredictionQuery struct {
		Category  string `json:"category"`
		Timeframe string `json:"timeframe"`
		Model     string `json:"model"`
	}

	Predictions struct {
		PredictionQuery
		Predictions []Prediction `json:"predictions"`
		Insights    []Insight    `json:"insights"`
		RiskFactors []RiskFactor `json:"risk_factors"`
	}
)

var _ core.Filter = (*PredictionQuery)(nil)

func (q *PredictionQuery) Set(key, value string) (err error) {
	value = core.CleanString(value, true /* lower */)
	switch key {
	case "category":
		q.Category, err = core.OneOf(key, value, Categories)
	case "timeframe":
		q.Timeframe, err = core.OneOf(key, value, Timeframes)
	case "model":
		q.Model, err = core.OneOf(key, value, Models)
	default:
		err = core.NewUnknownFilterError(key)
	}
	return err
}

func (q PredictionQuery) withDefaults() PredictionQuery {
	if q.Category == "" {
		q.Category = CategoryPerformance
	}
	if q.Timeframe == "" {
		q.Timeframe = Timeframes[0]
	}
	if q.Model == "" {
		q.Model = Models[0]
	}
	return q
}

var (
	predictions = map[string][]Prediction{
		CategoryPerformance: {
			{Metric: "Average Pass Rate", Current: 75, Predicted: 78, Confidence: 90, Trend: TrendIncrease},
			{Metric: "Student Retention", Current: 92, Predicted: 94, Confidence: 85, Trend: TrendIncrease},
			{Metric: "Academic Performance", Current: 82, Predicted: 80, Confidence: 88, Trend: TrendDecrease},
		},
		CategoryResources: {
			{Metric: "Teacher Demand", Current: 450, Predicted: 485, Confidence: 92, Trend: TrendIncrease},
			{Metric: "Infrastructure Cost", Current: 100, Predicted: 115, Confidence: 87, Trend: TrendIncrease},
			{Metric: "Resource Utilization", Current: 78, Predicted: 85, Confidence: 89, Trend: TrendIncrease},
		},
		CategoryStudents: {
			{Metric: "At-Risk Students", Current: 15, Predicted: 12, Confidence: 85, Trend: TrendDecrease},
			{Metric: "College Readiness", Current: 72, Predicted: 78, Confidence: 88, Trend: TrendIncrease},
			{Metric: "Career Placement", Current: 68, Predicted: 75, Confidence: 86, Trend: TrendIncrease},
		},
		CategoryEnrollment: {
			{Metric: "Total Enrollment", Current: 12500, Predicted: 13200, Confidence: 93, Trend: TrendIncrease},
			{Metric: "Class Size Average", Current: 32, Predicted: 30, Confidence: 87, Trend: TrendDecrease},
			{Metric: "Special Programs", Current: 450, Predicted: 520, Confidence: 85, Trend: TrendIncrease},
		},
	}

	insights = map[string][]Insight{
		CategoryPerformance: {
			{Title: "Teacher Training Impact", Description: "Professional development shows strong correlation with student performance", Confidence: 92, Impact: "High"},
			{Title: "Resource Availability", Description: "Access to digital resources correlates with improved test scores", Confidence: 88, Impact: "Medium"},
		},
		CategoryResources: {
			{Title: "Staffing Optimization", Description: "Predicted 8% increase in STEM teacher demand by next year", Confidence: 90, Impact: "High"},
			{Title: "Maintenance Planning", Description: "Preventive maintenance could reduce costs by 15%", Confidence: 85, Impact: "Medium"},
		},
		CategoryStudents: {
			{Title: "Early Intervention", Description: "Early warning system could improve retention by 12%", Confidence: 87, Impact: "High"},
			{Title: "Career Guidance", Description: "Personalized guidance could improve placement rates by 15%", Confidence: 84, Impact: "Medium"},
		},
		CategoryEnrollment: {
			{Title: "Demographic Shifts", Description: "Expected 5% growth in school-age population by 2025", Confidence: 91, Impact: "High"},
			{Title: "Program Demand", Description: "STEM program enrollment expected to grow by 18%", Confidence: 86, Impact: "High"},
		},
	}

	riskFactors = map[string][]RiskFactor{
		CategoryPerformance: {
			{Factor: "Teacher Turnover", Risk: "medium", Trend: TrendStable},
			{Factor: "Resource Gaps", Risk: "high", Trend: TrendIncreasing},
		},
		CategoryResources: {
			{Factor: "Budget Constraints", Risk: "high", Trend: TrendIncreasing},
			{Factor: "Equipment Obsolescence", Risk: "medium", Trend: TrendStable},
		},
		CategoryStudents: {
			{Factor: "Attendance Issues", Risk: "high", Trend: TrendDecreasing},
			{Factor: "Learning Gaps", Risk: "medium", Trend: TrendStable},
		},
		CategoryEnrollment: {
			{Factor: "Demographic Changes", Risk: "medium", Trend: TrendIncreasing},
			{Factor: "Competition", Risk: "low", Trend: TrendStable},
		},
	}
)

// Predict returns the placeholder predictions of a category. The timeframe and model are
// echoed back and do not change the figures.
func Predict(q PredictionQuery) Predictions {
	q = q.withDefaults()
	return Predictions{
		PredictionQuery: q,
		Predictions:     append([]Prediction(nil), predictions[q.Category]...),
		Insights:        append([]Insight(nil), insights[q.Category]...),
		RiskFactors:     append([]RiskFactor(nil), riskFactors[q.Category]...),
	}
}
