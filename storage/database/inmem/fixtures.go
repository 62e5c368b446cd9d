package inmemdb

import (
	"time"

	"github.com/trezcool/edudash/core/catalog"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/exam"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/maintenance"
	"github.com/trezcool/edudash/core/performance"
	"github.com/trezcool/edudash/core/region"
	"github.com/trezcool/edudash/core/school"
	"github.com/trezcool/edudash/core/staff"
	"github.com/trezcool/edudash/core/user"
)

var seededAt = date(2024, time.February, 6)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seed loads the fixtures every fresh DB starts with. Seeded rows keep short numeric ids.
func (db *DB) seed() {
	for _, u := range []user.User{
		{ID: "1", Email: "admin@example.com", Role: user.RoleAdmin, CreatedAt: seededAt},
		{ID: "2", Email: "analyst@example.com", Role: user.RoleAnalyst, CreatedAt: seededAt},
		{ID: "3", Email: "viewer@example.com", Role: user.RoleViewer, CreatedAt: seededAt},
	} {
		db.user.insert(u.ID, u)
	}

	for _, s := range []school.School{
		{
			ID: "1", Name: "Central High School", Type: school.TypeSecondary, Ownership: school.OwnershipState,
			LGA: "Ikeja", State: "Lagos", SenatorialDistrict: "Lagos Central", FederalConstituency: "Ikeja",
			Latitude: 6.6018, Longitude: 3.3515, Status: school.StatusApproved,
			HasWater: true, HasPower: true, HasInternet: true, HasLibrary: true, HasSickBay: true,
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID: "2", Name: "Government College", Type: school.TypeSecondary, Ownership: school.OwnershipFederal,
			LGA: "Eti-Osa", State: "Lagos", SenatorialDistrict: "Lagos East", FederalConstituency: "Eti-Osa",
			Latitude: 6.4698, Longitude: 3.5852, Status: school.StatusApproved,
			HasWater: true, HasPower: true, HasInternet: true, HasLibrary: true, HasSickBay: false,
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
	} {
		db.school.insert(s.ID, s)
	}

	for _, st := range []staff.Staff{
		{
			ID: "1", Name: "Adebayo Ogunleye", Role: staff.RoleTeacher, Qualification: staff.QualificationMasters,
			ExperienceLevel: staff.ExperienceSenior, Subjects: []string{"Mathematics", "Further Mathematics"},
			School: "Central High School", Certifications: []string{"TRCN"}, Specializations: []string{},
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID: "2", Name: "Chiamaka Eze", Role: staff.RoleTeacher, Qualification: staff.QualificationBachelors,
			ExperienceLevel: staff.ExperienceIntermediate, Subjects: []string{"English Language"},
			School: "Government College", Certifications: []string{"TRCN"}, Specializations: []string{"Special Needs Education"},
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID: "3", Name: "Musa Abdullahi", Role: staff.RoleAdministrator, Qualification: staff.QualificationDoctorate,
			ExperienceLevel: staff.ExperienceExpert, Subjects: []string{},
			School: "Central High School", Certifications: []string{}, Specializations: []string{"School Administration"},
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
	} {
		db.staff.insert(st.ID, st)
	}

	for _, st := range []region.State{
		{ID: "1", Name: "Lagos", Code: "LA", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "2", Name: "Ogun", Code: "OG", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "3", Name: "Federal Capital Territory", Code: "FC", CreatedAt: seededAt, UpdatedAt: seededAt},
	} {
		db.state.insert(st.ID, st)
	}
	for _, lga := range []region.LGA{
		{ID: "1", Name: "Ikeja", StateID: "1", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "2", Name: "Eti-Osa", StateID: "1", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "3", Name: "Ikorodu", StateID: "1", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "4", Name: "Abeokuta South", StateID: "2", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "5", Name: "Abuja Municipal", StateID: "3", CreatedAt: seededAt, UpdatedAt: seededAt},
	} {
		db.lga.insert(lga.ID, lga)
	}
	for _, sd := range []region.SenatorialDistrict{
		{ID: "1", Name: "Lagos Central", Code: "LAC", StateID: "1", LGAIDs: []string{"1"}, CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "2", Name: "Lagos East", Code: "LAE", StateID: "1", LGAIDs: []string{"2", "3"}, CreatedAt: seededAt, UpdatedAt: seededAt},
	} {
		db.district.insert(sd.ID, sd)
	}

	for _, e := range []catalog.Entry{
		{ID: "1", Name: "Primary", Code: "PRI", Description: "Basic education, primary 1 to 6", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "2", Name: "Secondary", Code: "SEC", Description: "Junior and senior secondary school", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "3", Name: "Tertiary", Code: "TER", Description: "Colleges, polytechnics and universities", CreatedAt: seededAt, UpdatedAt: seededAt},
	} {
		db.schoolType.insert(e.ID, e)
	}
	for _, e := range []catalog.Entry{
		{ID: "1", Name: "Pending", Code: "PEN", Description: "Awaiting review", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "2", Name: "Approved", Code: "APP", Description: "Verified and approved", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "3", Name: "Rejected", Code: "REJ", Description: "Submission rejected", CreatedAt: seededAt, UpdatedAt: seededAt},
	} {
		db.statusType.insert(e.ID, e)
	}
	for _, be := range []catalog.BoardExam{
		{
			ID: "1", Name: "West African Senior School Certificate Examination", Code: "WAEC",
			Description: "Senior secondary certificate exam", ExamDate: "2024-05-06", RegistrationDeadline: "2024-02-28",
			Status: catalog.ExamUpcoming, CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID: "2", Name: "Senior School Certificate Examination", Code: "NECO",
			Description: "National examinations council certificate exam", ExamDate: "2024-06-17", RegistrationDeadline: "2024-03-31",
			Status: catalog.ExamUpcoming, CreatedAt: seededAt, UpdatedAt: seededAt,
		},
	} {
		db.boardExam.insert(be.ID, be)
	}

	for _, gs := range []exam.GradingScheme{
		{
			ID: "1", Name: "WAEC Standard", ExamType: "WAEC", PassingScore: exam.DefaultPassingScore, IsActive: true,
			GradeRanges: []exam.GradeRange{
				{Min: 75, Max: 100, Grade: "A1", Description: "Excellent"},
				{Min: 70, Max: 74, Grade: "B2", Description: "Very Good"},
				{Min: 65, Max: 69, Grade: "B3", Description: "Good"},
				{Min: 60, Max: 64, Grade: "C4", Description: "Credit"},
				{Min: 55, Max: 59, Grade: "C5", Description: "Credit"},
				{Min: 50, Max: 54, Grade: "C6", Description: "Credit"},
				{Min: 45, Max: 49, Grade: "D7", Description: "Pass"},
				{Min: 40, Max: 44, Grade: "E8", Description: "Pass"},
				{Min: 0, Max: 39, Grade: "F9", Description: "Fail"},
			},
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID: "2", Name: "NECO Standard", ExamType: "NECO", PassingScore: exam.DefaultPassingScore, IsActive: true,
			GradeRanges: []exam.GradeRange{
				{Min: 75, Max: 100, Grade: "A", Description: "Distinction"},
				{Min: 65, Max: 74, Grade: "B", Description: "Very Good"},
				{Min: 50, Max: 64, Grade: "C", Description: "Credit"},
				{Min: 40, Max: 49, Grade: "D", Description: "Pass"},
				{Min: 0, Max: 39, Grade: "F", Description: "Fail"},
			},
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
	} {
		db.gradingScheme.insert(gs.ID, gs)
	}

	db.result.insert("1", exam.Result{
		ID: "1", SchoolID: "1", ExamID: "1", AcademicYear: "2022/2023",
		TotalStudents: 250, PassedStudents: 195, PassRate: 78, AverageScore: 72,
		CreatedAt: seededAt, UpdatedAt: seededAt,
	})
	for _, sub := range []exam.SubjectResult{
		{
			ID: "1", ResultID: "1", SubjectName: "Mathematics", TotalStudents: 250, PassedStudents: 212, PassRate: 84.8,
			AverageScore: 82, HighestScore: 98, LowestScore: 45,
			GradeACount: 62, GradeBCount: 88, GradeCCount: 62, GradeDCount: 25, GradeFCount: 13,
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
		{
			ID: "2", ResultID: "1", SubjectName: "English Language", TotalStudents: 250, PassedStudents: 190, PassRate: 76,
			AverageScore: 68, HighestScore: 91, LowestScore: 31,
			GradeACount: 40, GradeBCount: 70, GradeCCount: 80, GradeDCount: 35, GradeFCount: 25,
			CreatedAt: seededAt, UpdatedAt: seededAt,
		},
	} {
		db.subjectResult.insert(sub.ID, sub)
	}

	for _, in := range []facility.Infrastructure{
		{ID: "1", SchoolID: "1", Category: "Classroom Block", Status: facility.StatusGood, LastInspectionDate: "2024-01-15", Notes: "Regular maintenance required", CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "2", SchoolID: "2", Category: "Laboratory", Status: facility.StatusExcellent, LastInspectionDate: "2024-01-20", Notes: "Newly renovated", CreatedAt: seededAt, UpdatedAt: seededAt},
	} {
		db.infrastructure.insert(in.ID, in)
	}

	for _, r := range []performance.Record{
		{ID: "1", SchoolID: "1", Year: 2023, ExamType: performance.ExamWAEC, TotalStudents: 250, PassRate: 78, AverageScore: 72, CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "2", SchoolID: "2", Year: 2023, ExamType: performance.ExamWAEC, TotalStudents: 320, PassRate: 85, AverageScore: 76, CreatedAt: seededAt, UpdatedAt: seededAt},
	} {
		db.performance.insert(r.ID, r)
	}

	for _, req := range []maintenance.Request{
		{ID: "1", SchoolID: "1", Category: "Plumbing", Description: "Water leak in main building", Status: maintenance.StatusOpen, Priority: maintenance.PriorityHigh, CreatedAt: seededAt, UpdatedAt: seededAt},
		{ID: "2", SchoolID: "2", Category: "Electrical", Description: "Faulty wiring in computer lab", Status: maintenance.StatusInProgress, Priority: maintenance.PriorityMedium, CreatedAt: seededAt, UpdatedAt: seededAt},
	} {
		db.maintenance.insert(req.ID, req)
	}

	for _, te := range []enrollment.TermEnrollment{
		{
			ID: "1", SchoolID: "1", AcademicYear: "2023/2024", Term: enrollment.TermFirst,
			TotalStudents: 450, MaleStudents: 220, FemaleStudents: 230, NewAdmissions: 75, Withdrawals: 12, SpecialNeedsStudents: 15,
			CreatedAt: date(2023, time.September, 15), UpdatedAt: date(2023, time.September, 15),
		},
		{
			ID: "2", SchoolID: "1", AcademicYear: "2023/2024", Term: enrollment.TermSecond,
			TotalStudents: 465, MaleStudents: 228, FemaleStudents: 237, NewAdmissions: 30, Withdrawals: 15, SpecialNeedsStudents: 16,
			CreatedAt: date(2024, time.January, 15), UpdatedAt: date(2024, time.January, 15),
		},
	} {
		db.enrollment.insert(te.ID, te)
	}

	db.trends = []enrollment.Trend{
		{SchoolID: "1", Data: []enrollment.YearlyEnrollment{
			{Year: 2020, Term: enrollment.TermFirst, TotalStudents: 1050, MaleStudents: 550, FemaleStudents: 500},
			{Year: 2021, Term: enrollment.TermFirst, TotalStudents: 1100, MaleStudents: 580, FemaleStudents: 520},
			{Year: 2022, Term: enrollment.TermFirst, TotalStudents: 1150, MaleStudents: 620, FemaleStudents: 530},
			{Year: 2023, Term: enrollment.TermFirst, TotalStudents: 1200, MaleStudents: 650, FemaleStudents: 550},
		}},
		{SchoolID: "2", Data: []enrollment.YearlyEnrollment{
			{Year: 2020, Term: enrollment.TermFirst, TotalStudents: 800, MaleStudents: 420, FemaleStudents: 380},
			{Year: 2021, Term: enrollment.TermFirst, TotalStudents: 850, MaleStudents: 450, FemaleStudents: 400},
			{Year: 2022, Term: enrollment.TermFirst, TotalStudents: 900, MaleStudents: 470, FemaleStudents: 430},
			{Year: 2023, Term: enrollment.TermFirst, TotalStudents: 950, MaleStudents: 500, FemaleStudents: 450},
		}},
	}
	db.seasonal = []enrollment.SeasonalPattern{
		{SchoolID: "1", Data: []enrollment.TermPattern{
			{Year: 2023, Term: enrollment.TermFirst, Enrollment: 1200, Withdrawals: 20},
			{Year: 2023, Term: enrollment.TermSecond, Enrollment: 1180, Withdrawals: 15},
			{Year: 2023, Term: enrollment.TermThird, Enrollment: 1165, Withdrawals: 25},
		}},
		{SchoolID: "2", Data: []enrollment.TermPattern{
			{Year: 2023, Term: enrollment.TermFirst, Enrollment: 950, Withdrawals: 15},
			{Year: 2023, Term: enrollment.TermSecond, Enrollment: 935, Withdrawals: 10},
			{Year: 2023, Term: enrollment.TermThird, Enrollment: 925, Withdrawals: 20},
		}},
	}
	db.forecasts = []enrollment.Forecast{
		{SchoolID: "1", Forecasts: []enrollment.Projection{
			{Year: 2024, ProjectedEnrollment: 1250, ConfidenceInterval: [2]int{1200, 1300}},
			{Year: 2025, ProjectedEnrollment: 1300, ConfidenceInterval: [2]int{1240, 1360}},
			{Year: 2026, ProjectedEnrollment: 1350, ConfidenceInterval: [2]int{1280, 1420}},
		}},
		{SchoolID: "2", Forecasts: []enrollment.Projection{
			{Year: 2024, ProjectedEnrollment: 980, ConfidenceInterval: [2]int{950, 1010}},
			{Year: 2025, ProjectedEnrollment: 1020, ConfidenceInterval: [2]int{980, 1060}},
			{Year: 2026, ProjectedEnrollment: 1060, ConfidenceInterval: [2]int{1010, 1110}},
		}},
	}
}
