package enrollment

// Form holds the term enrollment form state. Every count change keeps the total in sync.
type Form struct {
	data NewTermEnrollment
}

func NewForm(editing *TermEnrollment) *Form {
	f := new(Form)
	if editing != nil {
		f.data = NewTermEnrollment{
			SchoolID:             editing.SchoolID,
			AcademicYear:         editing.AcademicYear,
			Term:                 editing.Term,
			MaleStudents:         editing.MaleStudents,
			FemaleStudents:       editing.FemaleStudents,
			NewAdmissions:        editing.NewAdmissions,
			Withdrawals:          editing.Withdrawals,
			SpecialNeedsStudents: editing.SpecialNeedsStudents,
		}
	} else {
		f.data.Term = TermFirst
	}
	f.data.TotalStudents = Total(f.data.MaleStudents, f.data.FemaleStudents)
	return f
}

func (f *Form) SetSchool(id string) { f.data.SchoolID = id }
func (f *Form) SetAcademicYear(y string) { f.data.AcademicYear = y }
func (f *Form) SetTerm(term string) { f.data.Term = term }
func (f *Form) SetNewAdmissions(n int) { f.data.NewAdmissions = n }
func (f *Form) SetWithdrawals(n int) { f.data.Withdrawals = n }
func (f *Form) SetSpecialNeeds(n int) { f.data.SpecialNeedsStudents = n }

func (f *Form) SetMale(n int) {
	f.data.MaleStudents = n
	f.data.TotalStudents = Total(f.data.MaleStudents, f.data.FemaleStudents)
}

func (f *Form) SetFemale(n int) {
	f.data.FemaleStudents = n
	f.data.TotalStudents = Total(f.data.MaleStudents, f.data.FemaleStudents)
}

func (f *Form) TotalStudents() int { return f.data.TotalStudents }

// Payload returns the submitted data, total re-derived.
func (f *Form) Payload() NewTermEnrollment {
	p := f.data
	p.TotalStudents = Total(p.MaleStudents, p.FemaleStudents)
	return p
}
