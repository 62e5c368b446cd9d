package main

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/catalog"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/exam"
	"github.com/trezcool/edudash/core/region"
	"github.com/trezcool/edudash/core/school"
	"github.com/trezcool/edudash/core/staff"
	"github.com/trezcool/edudash/core/user"
)

var errNoEdit = errors.New("rows of this page cannot be edited")

type (
	// form is the modal of a page. It is seeded empty (add) or from the edited row,
	// takes one field change at a time and saves through the page's service.
	form struct {
		fields []formField
		// more handles keys outside fields; nil means there are none.
		more func(key, value string) error
		// derived lists read-only lines recomputed after every change.
		derived func() [][2]string
		save    func(ctx context.Context, validate *validator.Validate) (id string, err error)
	}

	formField struct {
		key string
		get func() string
		set func(value string) error // nil when the field is derived
	}

	// formFunc builds the form of a page; id is empty when adding.
	formFunc func(ctx context.Context, id string) (*form, error)
)

func fieldError(key, msg string) error {
	return core.NewValidationError(nil, core.FieldError{Field: key, Error: msg})
}

func (f *form) set(key, value string) error {
	value = core.CleanString(value)
	for _, fld := range f.fields {
		if fld.key != key {
			continue
		}
		if fld.set == nil {
			return fieldError(key, "read only")
		}
		return fld.set(value)
	}
	if f.more != nil {
		return f.more(key, value)
	}
	return fieldError(key, "unknown field")
}

func (f *form) values() [][2]string {
	vals := make([][2]string, 0, len(f.fields))
	for _, fld := range f.fields {
		vals = append(vals, [2]string{fld.key, fld.get()})
	}
	if f.derived != nil {
		vals = append(vals, f.derived()...)
	}
	return vals
}

// =========================================================================
// Fields

func textField(key string, p *string) formField {
	return formField{
		key: key,
		get: func() string { return *p },
		set: func(v string) error { *p = v; return nil },
	}
}

func intFunc(key string, get func() int, set func(int)) formField {
	return formField{
		key: key,
		get: func() string { return itoa(get()) },
		set: func(v string) error {
			n, err := core.ParseFilterInt(key, v)
			if err != nil {
				return err
			}
			set(n)
			return nil
		},
	}
}

func intField(key string, p *int) formField {
	return intFunc(key, func() int { return *p }, func(n int) { *p = n })
}

func floatField(key string, p *float64) formField {
	return formField{
		key: key,
		get: func() string { return ftoa(*p) },
		set: func(v string) error {
			if v == "" {
				*p = 0
				return nil
			}
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fieldError(key, "must be a number")
			}
			*p = x
			return nil
		},
	}
}

func boolField(key string, p *bool) formField {
	return formField{
		key: key,
		get: func() string { return strconv.FormatBool(*p) },
		set: func(v string) error {
			b, err := core.ParseFilterBool(key, v)
			if err != nil {
				return err
			}
			*p = b
			return nil
		},
	}
}

// listField holds a comma separated list.
func listField(key string, p *[]string) formField {
	return formField{
		key: key,
		get: func() string { return strings.Join(*p, ", ") },
		set: func(v string) error { *p = splitList(v); return nil },
	}
}

func readOnly(key string, get func() string) formField {
	return formField{key: key, get: get}
}

func splitList(v string) []string {
	return core.CleanStrings(strings.Split(v, ","))
}

// =========================================================================
// Management

func schoolForm(svc *school.Service) formFunc {
	return func(ctx context.Context, id string) (*form, error) {
		var in school.NewSchool
		if id != "" {
			s, err := svc.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			in = school.NewSchool{
				Name: s.Name, Type: s.Type, Ownership: s.Ownership, LGA: s.LGA, State: s.State,
				SenatorialDistrict: s.SenatorialDistrict, FederalConstituency: s.FederalConstituency,
				Latitude: s.Latitude, Longitude: s.Longitude, Status: s.Status,
				HasWater: s.HasWater, HasPower: s.HasPower, HasInternet: s.HasInternet,
				HasLibrary: s.HasLibrary, HasSickBay: s.HasSickBay,
			}
		}
		return &form{
			fields: []formField{
				textField("name", &in.Name),
				textField("type", &in.Type),
				textField("ownership", &in.Ownership),
				textField("lga", &in.LGA),
				textField("state", &in.State),
				textField("senatorial_district", &in.SenatorialDistrict),
				textField("federal_constituency", &in.FederalConstituency),
				floatField("latitude", &in.Latitude),
				floatField("longitude", &in.Longitude),
				textField("status", &in.Status),
				boolField("has_water", &in.HasWater),
				boolField("has_power", &in.HasPower),
				boolField("has_internet", &in.HasInternet),
				boolField("has_library", &in.HasLibrary),
				boolField("has_sick_bay", &in.HasSickBay),
			},
			save: func(ctx context.Context, validate *validator.Validate) (string, error) {
				if id == "" {
					if err := in.Validate(validate); err != nil {
						return "", err
					}
					s, err := svc.Create(ctx, in)
					return s.ID, err
				}
				us := school.UpdateSchool(in)
				if err := us.Validate(validate); err != nil {
					return "", err
				}
				s, err := svc.Update(ctx, id, us)
				return s.ID, err
			},
		}, nil
	}
}

func staffForm(svc *staff.Service) formFunc {
	return func(ctx context.Context, id string) (*form, error) {
		var in staff.NewStaff
		if id != "" {
			m, err := svc.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			in = staff.NewStaff{
				Name: m.Name, Role: m.Role, Qualification: m.Qualification, ExperienceLevel: m.ExperienceLevel,
				Subjects: m.Subjects, School: m.School, Certifications: m.Certifications, Specializations: m.Specializations,
			}
		}
		return &form{
			fields: []formField{
				textField("name", &in.Name),
				textField("role", &in.Role),
				textField("qualification", &in.Qualification),
				textField("experience_level", &in.ExperienceLevel),
				listField("subjects", &in.Subjects),
				textField("school", &in.School),
				listField("certifications", &in.Certifications),
				listField("specializations", &in.Specializations),
			},
			save: func(ctx context.Context, validate *validator.Validate) (string, error) {
				if id == "" {
					if err := in.Validate(validate); err != nil {
						return "", err
					}
					m, err := svc.Create(ctx, in)
					return m.ID, err
				}
				us := staff.UpdateStaff(in)
				if err := us.Validate(validate); err != nil {
					return "", err
				}
				m, err := svc.Update(ctx, id, us)
				return m.ID, err
			},
		}, nil
	}
}

func enrollmentForm(svc *enrollment.Service) formFunc {
	return func(ctx context.Context, id string) (*form, error) {
		var editing *enrollment.TermEnrollment
		if id != "" {
			te, err := svc.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			editing = &te
		}
		f := enrollment.NewForm(editing)
		data := f.Payload
		return &form{
			fields: []formField{
				{key: "school_id", get: func() string { return data().SchoolID }, set: func(v string) error { f.SetSchool(v); return nil }},
				{key: "academic_year", get: func() string { return data().AcademicYear }, set: func(v string) error { f.SetAcademicYear(v); return nil }},
				{key: "term", get: func() string { return data().Term }, set: func(v string) error { f.SetTerm(v); return nil }},
				intFunc("male_students", func() int { return data().MaleStudents }, f.SetMale),
				intFunc("female_students", func() int { return data().FemaleStudents }, f.SetFemale),
				readOnly("total_students", func() string { return itoa(f.TotalStudents()) }),
				intFunc("new_admissions", func() int { return data().NewAdmissions }, f.SetNewAdmissions),
				intFunc("withdrawals", func() int { return data().Withdrawals }, f.SetWithdrawals),
				intFunc("special_needs_students", func() int { return data().SpecialNeedsStudents }, f.SetSpecialNeeds),
			},
			derived: func() [][2]string {
				return [][2]string{{"academic_year_options", strings.Join(enrollment.AcademicYears(time.Now()), ", ")}}
			},
			save: func(ctx context.Context, validate *validator.Validate) (string, error) {
				ne := f.Payload()
				if err := ne.Validate(validate); err != nil {
					return "", err
				}
				var (
					te  enrollment.TermEnrollment
					err error
				)
				if id == "" {
					te, err = svc.Create(ctx, ne)
				} else {
					te, err = svc.Update(ctx, id, ne)
				}
				return te.ID, err
			},
		}, nil
	}
}

// examResultForm records a result with its subject rows. Recorded results are not edited.
// "subject NAME" starts a new subject row; "subject.FIELD" keys change the last one.
func examResultForm(svc *exam.Service) formFunc {
	return func(_ context.Context, id string) (*form, error) {
		if id != "" {
			return nil, errNoEdit
		}
		var (
			nr       exam.NewResult
			subjects []*exam.SubjectForm
		)
		return &form{
			fields: []formField{
				textField("school_id", &nr.SchoolID),
				textField("exam_id", &nr.ExamID),
				textField("academic_year", &nr.AcademicYear),
				intField("total_students", &nr.TotalStudents),
				intField("passed_students", &nr.PassedStudents),
				readOnly("pass_rate", func() string { return exam.FormatRate(exam.PassRate(nr.PassedStudents, nr.TotalStudents)) }),
				floatField("average_score", &nr.AverageScore),
			},
			more: func(key, value string) error {
				if key == "subject" {
					if value == "" {
						return fieldError(key, "name the subject")
					}
					subjects = append(subjects, &exam.SubjectForm{NewSubject: exam.NewSubject{SubjectName: value}})
					return nil
				}
				field, ok := strings.CutPrefix(key, "subject.")
				if !ok {
					return fieldError(key, "unknown field")
				}
				if len(subjects) == 0 {
					return fieldError(key, "add a subject first: subject NAME")
				}
				applied, err := subjects[len(subjects)-1].Set(field, value)
				if err != nil {
					return fieldError(key, strings.TrimPrefix(err.Error(), field+": "))
				}
				if !applied {
					return fieldError(key, "grade counts would exceed total students")
				}
				return nil
			},
			derived: func() [][2]string {
				lines := make([][2]string, len(subjects))
				for i, sf := range subjects {
					lines[i] = [2]string{
						"subject " + itoa(i+1),
						sf.SubjectName + ": " + itoa(sf.PassedStudents) + "/" + itoa(sf.TotalStudents) +
							" passed, pass rate " + exam.FormatRate(sf.PassRate) +
							", grades A-F " + strings.Join([]string{
							itoa(sf.GradeACount), itoa(sf.GradeBCount), itoa(sf.GradeCCount), itoa(sf.GradeDCount), itoa(sf.GradeFCount),
						}, "/"),
					}
				}
				return lines
			},
			save: func(ctx context.Context, validate *validator.Validate) (string, error) {
				nr.Subjects = make([]exam.NewSubject, len(subjects))
				for i, sf := range subjects {
					nr.Subjects[i] = sf.NewSubject
				}
				if err := nr.Validate(validate); err != nil {
					return "", err
				}
				detail, err := svc.Record(ctx, nr)
				return detail.ID, err
			},
		}, nil
	}
}

func gradingSchemeForm(svc *exam.GradingService) formFunc {
	return func(ctx context.Context, id string) (*form, error) {
		var in exam.SchemeInput
		if id != "" {
			gs, err := svc.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			score, active := gs.PassingScore, gs.IsActive
			in = exam.SchemeInput{
				Name: gs.Name, ExamType: gs.ExamType, PassingScore: &score, IsActive: &active,
				GradeRanges: append([]exam.GradeRange(nil), gs.GradeRanges...),
			}
		}
		return &form{
			fields: []formField{
				textField("name", &in.Name),
				textField("exam_type", &in.ExamType),
				{
					key: "passing_score",
					get: func() string {
						if in.PassingScore == nil {
							return ""
						}
						return itoa(*in.PassingScore)
					},
					set: func(v string) error {
						if v == "" {
							in.PassingScore = nil
							return nil
						}
						n, err := core.ParseFilterInt("passing_score", v)
						if err != nil {
							return err
						}
						in.PassingScore = &n
						return nil
					},
				},
				{
					key: "is_active",
					get: func() string {
						if in.IsActive == nil {
							return ""
						}
						return strconv.FormatBool(*in.IsActive)
					},
					set: func(v string) error {
						b, err := core.ParseFilterBool("is_active", v)
						if err != nil {
							return err
						}
						in.IsActive = &b
						return nil
					},
				},
				{
					key: "grade_ranges",
					get: func() string { return formatRanges(in.GradeRanges) },
					set: func(v string) error {
						ranges, err := parseRanges(v)
						if err != nil {
							return err
						}
						in.GradeRanges = ranges
						return nil
					},
				},
			},
			// ranges are checked on every change, saving still rejects invalid ones
			derived: func() [][2]string {
				check := "ok"
				if err := exam.ValidateRanges(in.GradeRanges); err != nil {
					check = err.Error()
				}
				return [][2]string{{"ranges_check", check}}
			},
			save: func(ctx context.Context, validate *validator.Validate) (string, error) {
				if err := in.Validate(validate); err != nil {
					return "", err
				}
				var (
					gs  exam.GradingScheme
					err error
				)
				if id == "" {
					gs, err = svc.Create(ctx, in)
				} else {
					gs, err = svc.Update(ctx, id, in)
				}
				return gs.ID, err
			},
		}, nil
	}
}

// parseRanges reads "A1:75-100, B2:60-74".
func parseRanges(v string) ([]exam.GradeRange, error) {
	bad := fieldError("grade_ranges", "must look like A1:75-100, B2:60-74")
	parts := splitList(v)
	ranges := make([]exam.GradeRange, 0, len(parts))
	for _, part := range parts {
		grade, bounds, ok := strings.Cut(part, ":")
		if !ok {
			return nil, bad
		}
		lo, hi, ok := strings.Cut(bounds, "-")
		if !ok {
			return nil, bad
		}
		minScore, err1 := strconv.Atoi(strings.TrimSpace(lo))
		maxScore, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 != nil || err2 != nil || strings.TrimSpace(grade) == "" {
			return nil, bad
		}
		ranges = append(ranges, exam.GradeRange{Grade: strings.TrimSpace(grade), Min: minScore, Max: maxScore})
	}
	return ranges, nil
}

func formatRanges(ranges []exam.GradeRange) string {
	parts := make([]string, len(ranges))
	for i, gr := range ranges {
		parts[i] = gr.Grade + ":" + itoa(gr.Min) + "-" + itoa(gr.Max)
	}
	return strings.Join(parts, ", ")
}

func userForm(svc *user.Service) formFunc {
	return func(ctx context.Context, id string) (*form, error) {
		var in user.NewUser
		if id != "" {
			u, err := svc.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			in = user.NewUser{Email: u.Email, Role: u.Role}
		}
		return &form{
			fields: []formField{
				textField("email", &in.Email),
				textField("role", &in.Role),
			},
			save: func(ctx context.Context, validate *validator.Validate) (string, error) {
				if id == "" {
					if err := in.Validate(validate); err != nil {
						return "", err
					}
					u, err := svc.Create(ctx, in)
					return u.ID, err
				}
				uu := user.UpdateUser(in)
				if err := uu.Validate(validate); err != nil {
					return "", err
				}
				u, err := svc.Update(ctx, id, uu)
				return u.ID, err
			},
		}, nil
	}
}

// =========================================================================
// Reference data

func stateForm(svc *region.Service) formFunc {
	return func(ctx context.Context, id string) (*form, error) {
		var in region.StateInput
		if id != "" {
			st, err := svc.GetState(ctx, id)
			if err != nil {
				return nil, err
			}
			in = region.StateInput{Name: st.Name, Code: st.Code}
		}
		return &form{
			fields: []formField{
				textField("name", &in.Name),
				textField("code", &in.Code),
			},
			save: func(ctx context.Context, validate *validator.Validate) (string, error) {
				if err := in.Validate(validate); err != nil {
					return "", err
				}
				var (
					st  region.State
					err error
				)
				if id == "" {
					st, err = svc.CreateState(ctx, in)
				} else {
					st, err = svc.UpdateState(ctx, id, in)
				}
				return st.ID, err
			},
		}, nil
	}
}

func lgaForm(svc *region.Service) formFunc {
	return func(ctx context.Context, id string) (*form, error) {
		var in region.LGAInput
		if id != "" {
			lga, err := svc.GetLGA(ctx, id)
			if err != nil {
				return nil, err
			}
			in = region.LGAInput{Name: lga.Name, StateID: lga.StateID}
		}
		return &form{
			fields: []formField{
				textField("name", &in.Name),
				textField("state_id", &in.StateID),
			},
			save: func(ctx context.Context, validate *validator.Validate) (string, error) {
				if err := in.Validate(validate); err != nil {
					return "", err
				}
				var (
					lga region.LGA
					err error
				)
				if id == "" {
					lga, err = svc.CreateLGA(ctx, in)
				} else {
					lga, err = svc.UpdateLGA(ctx, id, in)
				}
				return lga.ID, err
			},
		}, nil
	}
}

// districtForm narrows the LGA choices to the selected state; switching state clears them.
func districtForm(svc *region.Service) formFunc {
	return func(ctx context.Context, id string) (*form, error) {
		var editing *region.SenatorialDistrict
		if id != "" {
			sd, err := svc.GetDistrict(ctx, id)
			if err != nil {
				return nil, err
			}
			editing = &sd
		}
		lgas, err := svc.ListLGAs(ctx, region.LGAFilter{}, nil)
		if err != nil {
			return nil, errors.Wrap(err, "listing LGAs")
		}
		df := region.NewDistrictForm(editing, lgas)

		return &form{
			fields: []formField{
				textField("name", &df.Input.Name),
				textField("code", &df.Input.Code),
				{
					key: "state_id",
					get: func() string { return df.Input.StateID },
					set: func(v string) error { df.SetState(v); return nil },
				},
				{
					key: "lga_ids",
					get: func() string { return strings.Join(df.Input.LGAIDs, ", ") },
					set: func(v string) error {
						prev := df.Input.LGAIDs
						df.Input.LGAIDs = nil
						for _, lgaID := range splitList(v) {
							if contains(df.Input.LGAIDs, lgaID) {
								continue
							}
							if !df.ToggleLGA(lgaID) {
								df.Input.LGAIDs = prev
								return fieldError("lga_ids", "not an option for the selected state: "+lgaID)
							}
						}
						return nil
					},
				},
			},
			derived: func() [][2]string {
				opts := df.LGAOptions()
				if len(opts) == 0 {
					return [][2]string{{"lga_options", "select a state first"}}
				}
				names := make([]string, len(opts))
				for i, lga := range opts {
					names[i] = lga.ID + " " + lga.Name
				}
				return [][2]string{{"lga_options", strings.Join(names, ", ")}}
			},
			save: func(ctx context.Context, validate *validator.Validate) (string, error) {
				in := df.Input
				if err := in.Validate(validate); err != nil {
					return "", err
				}
				var (
					sd  region.SenatorialDistrict
					err error
				)
				if id == "" {
					sd, err = svc.CreateDistrict(ctx, in)
				} else {
					sd, err = svc.UpdateDistrict(ctx, id, in)
				}
				return sd.ID, err
			},
		}, nil
	}
}

func entryForm(svc *catalog.Service, kind string) formFunc {
	return func(ctx context.Context, id string) (*form, error) {
		var in catalog.EntryInput
		if id != "" {
			e, err := svc.GetEntry(ctx, kind, id)
			if err != nil {
				return nil, err
			}
			in = catalog.EntryInput{Name: e.Name, Code: e.Code, Description: e.Description}
		}
		return &form{
			fields: []formField{
				textField("name", &in.Name),
				textField("code", &in.Code),
				textField("description", &in.Description),
			},
			save: func(ctx context.Context, validate *validator.Validate) (string, error) {
				if err := in.Validate(validate); err != nil {
					return "", err
				}
				var (
					e   catalog.Entry
					err error
				)
				if id == "" {
					e, err = svc.CreateEntry(ctx, kind, in)
				} else {
					e, err = svc.UpdateEntry(ctx, kind, id, in)
				}
				return e.ID, err
			},
		}, nil
	}
}

func boardExamForm(svc *catalog.Service) formFunc {
	return func(ctx context.Context, id string) (*form, error) {
		in := catalog.BoardExamInput{Status: catalog.ExamUpcoming}
		if id != "" {
			be, err := svc.GetBoardExam(ctx, id)
			if err != nil {
				return nil, err
			}
			in = catalog.BoardExamInput{
				Name: be.Name, Code: be.Code, Description: be.Description,
				ExamDate: be.ExamDate, RegistrationDeadline: be.RegistrationDeadline, Status: be.Status,
			}
		}
		return &form{
			fields: []formField{
				textField("name", &in.Name),
				textField("code", &in.Code),
				textField("description", &in.Description),
				textField("exam_date", &in.ExamDate),
				textField("registration_deadline", &in.RegistrationDeadline),
				textField("status", &in.Status),
			},
			save: func(ctx context.Context, validate *validator.Validate) (string, error) {
				if err := in.Validate(validate); err != nil {
					return "", err
				}
				var (
					be  catalog.BoardExam
					err error
				)
				if id == "" {
					be, err = svc.CreateBoardExam(ctx, in)
				} else {
					be, err = svc.UpdateBoardExam(ctx, id, in)
				}
				return be.ID, err
			},
		}, nil
	}
}
