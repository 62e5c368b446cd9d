package enrollment

type (
	YearlyEnrollment struct {
		Year           int    `json:"year"`
		Term           string `json:"term"`
		TotalStudents  int    `json:"total_students"`
		MaleStudents   int    `json:"male_students"`
		FemaleStudents int    `json:"female_students"`
	}

	// Trend is a school's enrollment history, oldest year first.
	Trend struct {
		SchoolID string             `json:"school_id"`
		Data     []YearlyEnrollment `json:"data"`
	}

	TermPattern struct {
		Year        int    `json:"year"`
		Term        string `json:"term"`
		Enrollment  int    `json:"enrollment"`
		Withdrawals int    `json:"withdrawals"`
	}

	SeasonalPattern struct {
		SchoolID string        `json:"school_id"`
		Data     []TermPattern `json:"data"`
	}

	Projection struct {
		Year                int    `json:"year"`
		ProjectedEnrollment int    `json:"projected_enrollment"`
		ConfidenceInterval  [2]int `json:"confidence_interval"`
	}

	Forecast struct {
		SchoolID  string       `json:"school_id"`
		Forecasts []Projection `json:"forecasts"`
	}

	YearGrowth struct {
		Year       int     `json:"year"`
		GrowthRate float64 `json:"growth_rate"`
	}

	YearOverYear struct {
		SchoolID    string       `json:"school_id"`
		GrowthRates []YearGrowth `json:"growth_rates"`
	}
)

// ComputeYearOverYear derives the growth of every year over the one before it, per school.
func ComputeYearOverYear(trends []Trend) []YearOverYear {
	out := make([]YearOverYear, 0, len(trends))
	for _, tr := range trends {
		rates := make([]YearGrowth, 0, len(tr.Data))
		for i := 1; i < len(tr.Data); i++ {
			prev, curr := tr.Data[i-1], tr.Data[i]
			rates = append(rates, YearGrowth{
				Year:       curr.Year,
				GrowthRate: Growth(curr.TotalStudents, prev.TotalStudents),
			})
		}
		out = append(out, YearOverYear{SchoolID: tr.SchoolID, GrowthRates: rates})
	}
	return out
}
