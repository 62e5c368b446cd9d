package main

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/edudash/apps/api/echo"
	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/analytics"
	"github.com/trezcool/edudash/core/catalog"
	"github.com/trezcool/edudash/core/dashboard"
	"github.com/trezcool/edudash/core/demographics"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/exam"
	"github.com/trezcool/edudash/core/export"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/performance"
	"github.com/trezcool/edudash/core/region"
	"github.com/trezcool/edudash/core/school"
	"github.com/trezcool/edudash/core/staff"
	"github.com/trezcool/edudash/core/user"
)

type (
	// query is what a page store holds: the raw filter values and the ordering, as typed in.
	query struct {
		Params   map[string]string
		Ordering string
	}

	card struct {
		Label string
		Value string
	}

	// view is what a page shows: stats cards above a table.
	view struct {
		Cards []card
		Table *export.Table
	}

	page struct {
		route

		filter   func() core.Filter // nil when the page takes no filters
		panel    func() []core.FilterField
		sortable []string
		viewers  []string // empty: any signed-in user
		editors  []string // roles allowed to add, edit and delete; empty: nobody
		debounce bool

		fetch  func(ctx context.Context, f core.Filter, ords []core.Ordering) (view, error)
		remove func(ctx context.Context, id string) error
		form   formFunc // nil on read-only pages
		// noSelfDelete forbids deleting the row of the signed-in user.
		noSelfDelete bool
	}
)

var (
	adminOnly = []string{user.RoleAdmin}
	editors   = []string{user.RoleAdmin, user.RoleAnalyst}
)

func (q query) with(key, value string) query {
	params := make(map[string]string, len(q.Params)+1)
	for k, v := range q.Params {
		params[k] = v
	}
	if value == "" {
		delete(params, key)
	} else {
		params[key] = value
	}
	return query{Params: params, Ordering: q.Ordering}
}

// build turns q into the page's typed filter and orderings.
func (p *page) build(q query) (core.Filter, []core.Ordering, error) {
	var f core.Filter
	if p.filter != nil {
		f = p.filter()
	}
	keys := make([]string, 0, len(q.Params))
	for k := range q.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if f == nil {
			return nil, nil, core.NewUnknownFilterError(k)
		}
		if err := f.Set(k, q.Params[k]); err != nil {
			return nil, nil, err
		}
	}

	ords := core.ParseOrderings(q.Ordering)
	for _, ord := range ords {
		if !contains(p.sortable, ord.Field) {
			return nil, nil, core.NewValidationError(nil, core.FieldError{Field: "ordering", Error: "unknown ordering field: " + ord.Field})
		}
	}
	return f, ords, nil
}

func (p *page) load(ctx context.Context, q query) (view, error) {
	f, ords, err := p.build(q)
	if err != nil {
		return view{}, err
	}
	return p.fetch(ctx, f, ords)
}

func (p *page) canView(role string) bool {
	return len(p.viewers) == 0 || contains(p.viewers, role)
}

func (p *page) canDelete(role string) bool {
	return p.remove != nil && contains(p.editors, role)
}

func (p *page) canEdit(role string) bool {
	return p.form != nil && contains(p.editors, role)
}

func newPages(svc echoapi.Services) map[string]*page {
	list := []*page{
		dashboardPage(svc.Dashboard),
		facilitiesPage(svc.Facility),
		performancePage(svc.Performance),
		demographicsPage(svc.Demographics),
		comparePage(),
		predictivePage(),
		schoolsPage(svc.School),
		staffPage(svc.Staff),
		enrollmentPage(svc.Enrollment),
		examResultsPage(svc.Exam),
		gradingSchemesPage(svc.Grading),
		usersPage(svc.User),
		statesPage(svc.Region),
		lgasPage(svc.Region),
		districtsPage(svc.Region),
		entriesPage(svc.Catalog, catalog.KindSchoolType),
		entriesPage(svc.Catalog, catalog.KindStatusType),
		boardExamsPage(svc.Catalog),
	}
	pages := make(map[string]*page, len(list))
	for _, p := range list {
		p.route = resolve(p.Path, true)
		pages[p.Path] = p
	}
	return pages
}

// =========================================================================
// Analytics

func dashboardPage(svc *dashboard.Service) *page {
	return &page{
		route:  route{Path: homePath},
		filter: func() core.Filter { return new(dashboard.Filter) },
		panel:  dashboard.FilterPanel,
		fetch: func(ctx context.Context, f core.Filter, _ []core.Ordering) (view, error) {
			stats, err := svc.Stats(ctx, *f.(*dashboard.Filter))
			if err != nil {
				return view{}, errors.Wrap(err, "computing dashboard stats")
			}
			t := export.NewTable("recent_activities", "Category", "Description", "Status", "Priority")
			for _, req := range stats.RecentActivities {
				t.AddRow(req.Category, req.Description, req.Status, req.Priority)
			}
			return view{
				Cards: []card{
					{"Total Schools", itoa(stats.TotalSchools)},
					{"Total Students", itoa(stats.TotalStudents)},
					{"Current Term Enrollment", itoa(stats.CurrentTermEnrollment.Total) + " (" + percent(stats.CurrentTermEnrollment.Growth) + ")"},
					{"Total Teachers", itoa(stats.TotalTeachers)},
					{"Average Performance", percent(stats.AveragePerformance)},
					{"Maintenance Alerts", itoa(stats.MaintenanceAlerts)},
				},
				Table: t,
			}, nil
		},
	}
}

func facilitiesPage(svc *facility.Service) *page {
	return &page{
		route:    route{Path: "/facilities"},
		filter:   func() core.Filter { return new(facility.Filter) },
		panel:    facility.FilterPanel,
		sortable: fields(facility.Orderings),
		debounce: true,
		fetch: func(ctx context.Context, f core.Filter, ords []core.Ordering) (view, error) {
			stats, err := svc.Stats(ctx, *f.(*facility.Filter))
			if err != nil {
				return view{}, errors.Wrap(err, "computing facility stats")
			}
			rows := stats.FacilitiesLocation
			if err := core.SortSlice(rows, ords, facility.Orderings); err != nil {
				return view{}, err
			}
			return view{
				Cards: []card{
					{"Total Schools", itoa(stats.TotalSchools)},
					{"Water", itoa(stats.WaterAvailability.Total)},
					{"Power", itoa(stats.PowerAvailability.Total)},
					{"Internet", itoa(stats.InternetAvailability.Total)},
					{"Libraries", itoa(stats.Facilities.Libraries)},
					{"Sick Bays", itoa(stats.Facilities.SickBays)},
				},
				Table: export.FacilityTable(rows),
			}, nil
		},
	}
}

func performancePage(svc *performance.Service) *page {
	return &page{
		route:    route{Path: "/performance"},
		filter:   func() core.Filter { return new(performance.ComparisonFilters) },
		panel:    performance.FilterPanel,
		sortable: fields(performance.SchoolOrderings),
		fetch: func(ctx context.Context, f core.Filter, ords []core.Ordering) (view, error) {
			stats, err := svc.Stats(ctx, *f.(*performance.ComparisonFilters))
			if err != nil {
				return view{}, errors.Wrap(err, "computing performance stats")
			}
			rows := stats.SchoolPerformance
			if err := core.SortSlice(rows, ords, performance.SchoolOrderings); err != nil {
				return view{}, err
			}
			return view{
				Cards: []card{
					{"Overall Pass Rate", percent(stats.OverallPassRate)},
					{"Total Students", itoa(stats.TotalStudents)},
					{"Passed Students", itoa(stats.PassedStudents)},
					{"Top Subject", stats.TopSubject},
					{"Year over Year", percent(stats.YoYGrowth)},
				},
				Table: export.PerformanceTable(rows),
			}, nil
		},
	}
}

func demographicsPage(svc *demographics.Service) *page {
	return &page{
		route:    route{Path: "/demographics"},
		filter:   func() core.Filter { return new(demographics.Filter) },
		panel:    demographics.FilterPanel,
		sortable: fields(demographics.Orderings),
		fetch: func(ctx context.Context, f core.Filter, ords []core.Ordering) (view, error) {
			stats, err := svc.Stats(ctx, *f.(*demographics.Filter))
			if err != nil {
				return view{}, errors.Wrap(err, "computing demographics stats")
			}
			rows := stats.SchoolDemographics
			if err := core.SortSlice(rows, ords, demographics.Orderings); err != nil {
				return view{}, err
			}
			return view{
				Cards: []card{
					{"Total Students", itoa(stats.TotalStudents)},
					{"Gender Ratio", ftoa(stats.GenderRatio)},
					{"Special Needs Students", itoa(stats.SpecialNeedsStudents)},
					{"Total Schools", itoa(stats.TotalSchools)},
					{"Student Teacher Ratio", ftoa(stats.StudentTeacherRatio)},
				},
				Table: export.DemographicsTable(rows),
			}, nil
		},
	}
}

func comparePage() *page {
	return &page{
		route:  route{Path: "/compare"},
		filter: func() core.Filter { return new(analytics.CompareQuery) },
		fetch: func(_ context.Context, f core.Filter, _ []core.Ordering) (view, error) {
			grid, err := analytics.BuildGrid(*f.(*analytics.CompareQuery))
			if err != nil {
				return view{}, err
			}
			header := []string{"Item"}
			for _, col := range grid.Columns {
				header = append(header, col.Label)
			}
			t := export.NewTable("comparison", header...)
			for _, row := range grid.Rows {
				t.AddRow(row...)
			}
			return view{
				Cards: []card{
					{"Domain", grid.Domain},
					{"Compare By", grid.Type},
					{"Years", grid.YearRange()},
				},
				Table: t,
			}, nil
		},
	}
}

func predictivePage() *page {
	return &page{
		route:  route{Path: "/predictive"},
		filter: func() core.Filter { return new(analytics.PredictionQuery) },
		fetch: func(_ context.Context, f core.Filter, _ []core.Ordering) (view, error) {
			preds := analytics.Predict(*f.(*analytics.PredictionQuery))
			t := export.NewTable("predictions", "Metric", "Current", "Predicted", "Confidence", "Trend")
			for _, p := range preds.Predictions {
				t.AddRow(p.Metric, ftoa(p.Current), ftoa(p.Predicted), itoa(p.Confidence)+"%", p.Trend)
			}
			cards := []card{
				{"Category", preds.Category},
				{"Timeframe", preds.Timeframe},
				{"Model", preds.Model},
			}
			for _, in := range preds.Insights {
				cards = append(cards, card{"Insight", in.Title})
			}
			for _, rf := range preds.RiskFactors {
				cards = append(cards, card{"Risk", rf.Factor + " (" + rf.Risk + ")"})
			}
			return view{Cards: cards, Table: t}, nil
		},
	}
}

// =========================================================================
// Management

func schoolsPage(svc *school.Service) *page {
	return &page{
		route:    route{Path: "/schools"},
		filter:   func() core.Filter { return new(school.Filter) },
		panel:    school.FilterPanel,
		sortable: fields(school.Orderings),
		editors:  editors,
		fetch: func(ctx context.Context, f core.Filter, ords []core.Ordering) (view, error) {
			schools, err := svc.List(ctx, *f.(*school.Filter), ords)
			if err != nil {
				return view{}, errors.Wrap(err, "listing schools")
			}
			t := export.NewTable("schools", "ID", "Name", "Type", "Ownership", "LGA", "State", "Status")
			for _, s := range schools {
				t.AddRow(s.ID, s.Name, s.Type, s.Ownership, s.LGA, s.State, s.Status)
			}
			return view{Cards: []card{{"Schools", itoa(len(schools))}}, Table: t}, nil
		},
		remove: svc.Delete,
		form:   schoolForm(svc),
	}
}

func staffPage(svc *staff.Service) *page {
	return &page{
		route:    route{Path: "/staff"},
		filter:   func() core.Filter { return new(staff.Filter) },
		panel:    staff.FilterPanel,
		sortable: fields(staff.Orderings),
		editors:  editors,
		fetch: func(ctx context.Context, f core.Filter, ords []core.Ordering) (view, error) {
			members, err := svc.List(ctx, *f.(*staff.Filter), ords)
			if err != nil {
				return view{}, errors.Wrap(err, "listing staff")
			}
			t := export.NewTable("staff", "ID", "Name", "Role", "Qualification", "Experience", "School", "Subjects")
			for _, m := range members {
				t.AddRow(m.ID, m.Name, m.Role, m.Qualification, m.ExperienceLevel, m.School, strings.Join(m.Subjects, "; "))
			}
			return view{Cards: []card{{"Staff", itoa(len(members))}}, Table: t}, nil
		},
		remove: svc.Delete,
		form:   staffForm(svc),
	}
}

func enrollmentPage(svc *enrollment.Service) *page {
	return &page{
		route:    route{Path: "/academic-records/enrollment"},
		filter:   func() core.Filter { return new(enrollment.Filter) },
		sortable: fields(enrollment.Orderings),
		editors:  editors,
		fetch: func(ctx context.Context, f core.Filter, ords []core.Ordering) (view, error) {
			records, err := svc.List(ctx, *f.(*enrollment.Filter), ords)
			if err != nil {
				return view{}, errors.Wrap(err, "listing term enrollments")
			}
			t := export.NewTable("enrollment", "ID", "School", "Academic Year", "Term", "Total", "Male", "Female", "Special Needs")
			for _, r := range records {
				t.AddRow(r.ID, r.SchoolID, r.AcademicYear, r.Term, itoa(r.TotalStudents), itoa(r.MaleStudents), itoa(r.FemaleStudents), itoa(r.SpecialNeedsStudents))
			}
			return view{Cards: []card{{"Records", itoa(len(records))}}, Table: t}, nil
		},
		remove: svc.Delete,
		form:   enrollmentForm(svc),
	}
}

func examResultsPage(svc *exam.Service) *page {
	return &page{
		route:    route{Path: "/academic-records/exam-results"},
		filter:   func() core.Filter { return new(exam.Filter) },
		sortable: fields(exam.Orderings),
		editors:  editors,
		fetch: func(ctx context.Context, f core.Filter, ords []core.Ordering) (view, error) {
			results, err := svc.List(ctx, *f.(*exam.Filter), ords)
			if err != nil {
				return view{}, errors.Wrap(err, "listing exam results")
			}
			t := export.NewTable("exam_results", "ID", "School", "Exam", "Academic Year", "Total", "Passed", "Pass Rate", "Average Score")
			for _, r := range results {
				t.AddRow(r.ID, r.SchoolID, r.ExamID, r.AcademicYear, itoa(r.TotalStudents), itoa(r.PassedStudents), exam.FormatRate(r.PassRate), ftoa(r.AverageScore))
			}
			return view{Cards: []card{{"Results", itoa(len(results))}}, Table: t}, nil
		},
		remove: svc.Delete,
		form:   examResultForm(svc),
	}
}

func gradingSchemesPage(svc *exam.GradingService) *page {
	return &page{
		route:    route{Path: "/grading-schemes"},
		sortable: fields(exam.SchemeOrderings),
		editors:  adminOnly,
		fetch: func(ctx context.Context, _ core.Filter, ords []core.Ordering) (view, error) {
			schemes, err := svc.List(ctx, ords)
			if err != nil {
				return view{}, errors.Wrap(err, "listing grading schemes")
			}
			t := export.NewTable("grading_schemes", "ID", "Name", "Exam Type", "Passing Score", "Grades", "Active")
			for _, s := range schemes {
				grades := make([]string, len(s.GradeRanges))
				for i, gr := range s.GradeRanges {
					grades[i] = gr.Grade + " " + itoa(gr.Min) + "-" + itoa(gr.Max)
				}
				t.AddRow(s.ID, s.Name, s.ExamType, itoa(s.PassingScore), strings.Join(grades, ", "), yesNo(s.IsActive))
			}
			return view{Cards: []card{{"Schemes", itoa(len(schemes))}}, Table: t}, nil
		},
		remove: svc.Delete,
		form:   gradingSchemeForm(svc),
	}
}

func usersPage(svc *user.Service) *page {
	return &page{
		route:        route{Path: "/users"},
		filter:       func() core.Filter { return new(user.Filter) },
		panel:        user.FilterPanel,
		sortable:     fields(user.Orderings),
		viewers:      adminOnly,
		editors:      adminOnly,
		noSelfDelete: true,
		fetch: func(ctx context.Context, f core.Filter, ords []core.Ordering) (view, error) {
			users, err := svc.List(ctx, *f.(*user.Filter), ords)
			if err != nil {
				return view{}, errors.Wrap(err, "listing users")
			}
			t := export.NewTable("users", "ID", "Email", "Role")
			for _, u := range users {
				t.AddRow(u.ID, u.Email, u.Role)
			}
			return view{Cards: []card{{"Users", itoa(len(users))}}, Table: t}, nil
		},
		remove: svc.Delete,
		form:   userForm(svc),
	}
}

// =========================================================================
// Reference data

func statesPage(svc *region.Service) *page {
	return &page{
		route:    route{Path: "/states"},
		sortable: fields(region.StateOrderings),
		editors:  adminOnly,
		fetch: func(ctx context.Context, _ core.Filter, ords []core.Ordering) (view, error) {
			states, err := svc.ListStates(ctx, ords)
			if err != nil {
				return view{}, errors.Wrap(err, "listing states")
			}
			t := export.NewTable("states", "ID", "Name", "Code")
			for _, s := range states {
				t.AddRow(s.ID, s.Name, s.Code)
			}
			return view{Table: t}, nil
		},
		remove: svc.DeleteState,
		form:   stateForm(svc),
	}
}

func lgasPage(svc *region.Service) *page {
	return &page{
		route:    route{Path: "/lgas"},
		filter:   func() core.Filter { return new(region.LGAFilter) },
		sortable: fields(region.LGAOrderings),
		editors:  adminOnly,
		fetch: func(ctx context.Context, f core.Filter, ords []core.Ordering) (view, error) {
			lgas, err := svc.ListLGAs(ctx, *f.(*region.LGAFilter), ords)
			if err != nil {
				return view{}, errors.Wrap(err, "listing LGAs")
			}
			t := export.NewTable("lgas", "ID", "Name", "State")
			for _, l := range lgas {
				t.AddRow(l.ID, l.Name, l.StateID)
			}
			return view{Table: t}, nil
		},
		remove: svc.DeleteLGA,
		form:   lgaForm(svc),
	}
}

func districtsPage(svc *region.Service) *page {
	return &page{
		route:    route{Path: "/senatorial-districts"},
		sortable: fields(region.DistrictOrderings),
		editors:  adminOnly,
		fetch: func(ctx context.Context, _ core.Filter, ords []core.Ordering) (view, error) {
			districts, err := svc.ListDistricts(ctx, ords)
			if err != nil {
				return view{}, errors.Wrap(err, "listing senatorial districts")
			}
			t := export.NewTable("senatorial_districts", "ID", "Name", "Code", "State", "LGAs")
			for _, d := range districts {
				t.AddRow(d.ID, d.Name, d.Code, d.StateID, strings.Join(d.LGAIDs, ", "))
			}
			return view{Table: t}, nil
		},
		remove: svc.DeleteDistrict,
		form:   districtForm(svc),
	}
}

func entriesPage(svc *catalog.Service, kind string) *page {
	path := "/school-types"
	if kind == catalog.KindStatusType {
		path = "/status-types"
	}
	return &page{
		route:    route{Path: path},
		sortable: fields(catalog.EntryOrderings),
		editors:  adminOnly,
		fetch: func(ctx context.Context, _ core.Filter, ords []core.Ordering) (view, error) {
			entries, err := svc.ListEntries(ctx, kind, ords)
			if err != nil {
				return view{}, errors.Wrap(err, "listing "+kind+" entries")
			}
			t := export.NewTable(strings.Trim(path, "/"), "ID", "Name", "Code", "Description")
			for _, e := range entries {
				t.AddRow(e.ID, e.Name, e.Code, e.Description)
			}
			return view{Table: t}, nil
		},
		remove: func(ctx context.Context, id string) error {
			return svc.DeleteEntry(ctx, kind, id)
		},
		form: entryForm(svc, kind),
	}
}

func boardExamsPage(svc *catalog.Service) *page {
	return &page{
		route:    route{Path: "/board-exams"},
		sortable: fields(catalog.BoardExamOrderings),
		editors:  adminOnly,
		fetch: func(ctx context.Context, _ core.Filter, ords []core.Ordering) (view, error) {
			exams, err := svc.ListBoardExams(ctx, ords)
			if err != nil {
				return view{}, errors.Wrap(err, "listing board exams")
			}
			t := export.NewTable("board_exams", "ID", "Name", "Code", "Exam Date", "Registration Deadline", "Status")
			for _, e := range exams {
				t.AddRow(e.ID, e.Name, e.Code, e.ExamDate, e.RegistrationDeadline, e.Status)
			}
			return view{Table: t}, nil
		},
		remove: svc.DeleteBoardExam,
		form:   boardExamForm(svc),
	}
}

// fields lists the sortable field names of an orderings map.
func fields[T any](orderings map[string]core.Comparator[T]) []string {
	names := make([]string, 0, len(orderings))
	for name := range orderings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(x float64) string { return strconv.FormatFloat(core.Round(x, 2), 'f', -1, 64) }

func percent(x float64) string { return ftoa(x) + "%" }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
