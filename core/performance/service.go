// Package performance aggregates exam performance across schools.
package performance

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/exam"
	"github.com/trezcool/edudash/core/school"
)

type (
	Repository interface {
		// FilterRecords returns the records of schoolID, or every record when schoolID is empty.
		FilterRecords(ctx context.Context, schoolID string) ([]Record, error)
	}

	SchoolSource interface {
		QueryAllSchools(ctx context.Context) ([]school.School, error)
	}

	SubjectSource interface {
		Subjects(ctx context.Context, filter exam.Filter) ([]exam.SubjectResult, error)
	}

	EnrollmentSource interface {
		LatestBySchool(ctx context.Context) (map[string]enrollment.TermEnrollment, error)
	}

	Service struct {
		repo        Repository
		schools     SchoolSource
		subjects    SubjectSource
		enrollments EnrollmentSource
	}
)

func NewService(repo Repository, schools SchoolSource, subjects SubjectSource, enrollments EnrollmentSource) *Service {
	return &Service{repo: repo, schools: schools, subjects: subjects, enrollments: enrollments}
}

func (svc *Service) List(ctx context.Context, schoolID string) ([]Record, error) {
	return svc.repo.FilterRecords(ctx, schoolID)
}

// TotalStudents is the number of students who sat an exam, over every record.
func (svc *Service) TotalStudents(ctx context.Context) (int, error) {
	records, err := svc.repo.FilterRecords(ctx, "")
	if err != nil {
		return 0, errors.Wrap(err, "filtering performance records")
	}
	total := 0
	for _, r := range records {
		total += r.TotalStudents
	}
	return total, nil
}

func (svc *Service) Stats(ctx context.Context, filter ComparisonFilters) (Stats, error) {
	all, err := svc.schools.QueryAllSchools(ctx)
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying schools")
	}
	schools := make(map[string]school.School)
	for _, s := range all {
		if filter.MatchSchool(s) {
			schools[s.ID] = s
		}
	}

	records, err := svc.repo.FilterRecords(ctx, "")
	if err != nil {
		return Stats{}, errors.Wrap(err, "filtering performance records")
	}
	kept := make([]Record, 0, len(records))
	for _, r := range records {
		if _, ok := schools[r.SchoolID]; ok && filter.MatchRecord(r) {
			kept = append(kept, r)
		}
	}

	var subjects []exam.SubjectResult
	if svc.subjects != nil {
		for id := range schools {
			subs, err := svc.subjects.Subjects(ctx, exam.Filter{SchoolID: id})
			if err != nil {
				return Stats{}, errors.Wrap(err, "querying subject results")
			}
			for _, sub := range subs {
				if core.MatchFold(sub.SubjectName, filter.Subject) {
					subjects = append(subjects, sub)
				}
			}
		}
	}

	stats := ComputeStats(kept, schools, subjects)
	if svc.enrollments != nil {
		latest, err := svc.enrollments.LatestBySchool(ctx)
		if err != nil {
			return Stats{}, errors.Wrap(err, "querying enrollments")
		}
		for id := range schools {
			if te, ok := latest[id]; ok {
				stats.MaleStudents += te.MaleStudents
				stats.FemaleStudents += te.FemaleStudents
			}
		}
	}
	return stats, nil
}

// ComputeStats aggregates records of the given schools and the subject rows recorded for them.
func ComputeStats(records []Record, schools map[string]school.School, subjects []exam.SubjectResult) Stats {
	stats := Stats{
		SchoolPerformance:  make([]SchoolPerformance, 0, len(records)),
		SubjectPerformance: subjectPerformance(subjects),
		ExamTrends:         examTrends(records),
	}

	var rates float64
	byYear := make(map[int][]float64)
	for _, r := range records {
		rates += r.PassRate
		stats.TotalStudents += r.TotalStudents
		stats.PassedStudents += r.PassedStudents()
		byYear[r.Year] = append(byYear[r.Year], r.PassRate)
		stats.SchoolPerformance = append(stats.SchoolPerformance, SchoolPerformance{
			SchoolName:    schools[r.SchoolID].Name,
			ExamType:      r.ExamType,
			TotalStudents: r.TotalStudents,
			PassRate:      r.PassRate,
			AverageScore:  r.AverageScore,
			Year:          r.Year,
		})
	}
	if len(records) > 0 {
		stats.OverallPassRate = core.Round(rates/float64(len(records)), 1)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	if n := len(years); n > 0 {
		stats.CurrentYearRate = core.Round(mean(byYear[years[n-1]]), 1)
		if n > 1 {
			stats.PreviousYearRate = core.Round(mean(byYear[years[n-2]]), 1)
			if stats.PreviousYearRate != 0 {
				stats.YoYGrowth = core.Round((stats.CurrentYearRate-stats.PreviousYearRate)/stats.PreviousYearRate*100, 1)
			}
		}
	}

	for _, sp := range stats.SubjectPerformance {
		if stats.TopSubject == "" || sp.AverageScore > stats.TopSubjectScore {
			stats.TopSubject = sp.Name
			stats.TopSubjectScore = sp.AverageScore
			stats.TopSubjectPassRate = sp.PassRate
		}
	}
	return stats
}

func subjectPerformance(subjects []exam.SubjectResult) []SubjectPerformance {
	type acc struct {
		SubjectPerformance
		passed, rows int
		scores       float64
		grades       [5]int
	}
	byName := make(map[string]*acc)
	var names []string
	for _, sub := range subjects {
		a, ok := byName[sub.SubjectName]
		if !ok {
			a = &acc{SubjectPerformance: SubjectPerformance{Name: sub.SubjectName, LowestScore: sub.LowestScore}}
			byName[sub.SubjectName] = a
			names = append(names, sub.SubjectName)
		}
		a.rows++
		a.TotalStudents += sub.TotalStudents
		a.passed += sub.PassedStudents
		a.scores += sub.AverageScore
		if sub.HighestScore > a.HighestScore {
			a.HighestScore = sub.HighestScore
		}
		if sub.LowestScore < a.LowestScore {
			a.LowestScore = sub.LowestScore
		}
		a.grades[0] += sub.GradeACount
		a.grades[1] += sub.GradeBCount
		a.grades[2] += sub.GradeCCount
		a.grades[3] += sub.GradeDCount
		a.grades[4] += sub.GradeFCount
	}
	sort.Strings(names)

	out := make([]SubjectPerformance, 0, len(names))
	for _, name := range names {
		a := byName[name]
		a.PassRate = core.Round(exam.PassRate(a.passed, a.TotalStudents), 1)
		a.AverageScore = core.Round(a.scores/float64(a.rows), 1)
		graded := 0
		for _, g := range a.grades {
			graded += g
		}
		a.GradeDistribution = make(map[string]float64, len(a.grades))
		for i, letter := range []string{"A", "B", "C", "D", "F"} {
			a.GradeDistribution[letter] = 0
			if graded > 0 {
				a.GradeDistribution[letter] = core.Round(float64(a.grades[i])/float64(graded)*100, 1)
			}
		}
		out = append(out, a.SubjectPerformance)
	}
	return out
}

func examTrends(records []Record) []ExamTrend {
	type key struct {
		year     int
		examType string
	}
	rates := make(map[key][]float64)
	totals := make(map[key]int)
	var keys []key
	for _, r := range records {
		k := key{r.Year, r.ExamType}
		if _, ok := rates[k]; !ok {
			keys = append(keys, k)
		}
		rates[k] = append(rates[k], r.PassRate)
		totals[k] += r.TotalStudents
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].examType < keys[j].examType
	})

	trends := make([]ExamTrend, len(keys))
	for i, k := range keys {
		trends[i] = ExamTrend{Year: k.year, ExamType: k.examType, PassRate: core.Round(mean(rates[k]), 1), TotalStudents: totals[k]}
	}
	return trends
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
