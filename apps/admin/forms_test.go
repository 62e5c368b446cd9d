package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edudash/core/exam"
)

// renders splits out at every form render titled title; renders[i] follows the i-th render.
func renders(t *testing.T, out, title string) []string {
	parts := strings.Split(out, title)
	require.Greater(t, len(parts), 1, "output misses %q:\n%s", title, out)
	return parts[1:]
}

func Test_parseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    [][2]string
		wantErr bool
	}{
		{name: "none", args: nil, want: nil},
		{name: "pairs", args: []string{"name=Ogun", "CODE=og"}, want: [][2]string{{"name", "Ogun"}, {"code", "og"}}},
		{name: "multi word value", args: []string{"name=Federal", "Capital", "Territory", "code=FC"}, want: [][2]string{{"name", "Federal Capital Territory"}, {"code", "FC"}}},
		{name: "empty value", args: []string{"description="}, want: [][2]string{{"description", ""}}},
		{name: "value with equals", args: []string{"name=a=b"}, want: [][2]string{{"name", "a=b"}}},
		{name: "leading word", args: []string{"Ogun", "code=OG"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_parseRanges(t *testing.T) {
	got, err := parseRanges("A1:75-100, B2: 60-74 ,F9:0-59")
	require.NoError(t, err)
	assert.Equal(t, []exam.GradeRange{
		{Grade: "A1", Min: 75, Max: 100},
		{Grade: "B2", Min: 60, Max: 74},
		{Grade: "F9", Min: 0, Max: 59},
	}, got)
	assert.Equal(t, "A1:75-100, B2:60-74, F9:0-59", formatRanges(got))

	for _, bad := range []string{"A1", "A1:75", ":0-10", "A1:x-10"} {
		_, err := parseRanges(bad)
		assert.EqualError(t, err, "grade_ranges: must look like A1:75-100, B2:60-74", bad)
	}
}

func Test_console_addEditStates(t *testing.T) {
	out := runConsole(t,
		"login admin@example.com",
		"go /states",
		"delete 2",
		"y",
		"add name=Ogun code=og",
		"edit 1 name=Lagos State",
		"edit 3 code=F-C",
		"form",
		"cancel",
		"save",
		"edit 9",
		"logout",
		"login viewer@example.com",
		"go /states",
		"add name=Oyo code=OY",
	)

	added := after(t, out, "added ")
	assert.Regexp(t, `Ogun\s*\|\s*OG\s*\|`, added, "the code is upper cased")
	assert.Contains(t, added, "add, edit ID or delete ID to change rows")

	updated := after(t, out, "updated 1")
	assert.Regexp(t, `\|\s*1\s*\|\s*Lagos State\s*\|\s*LA\s*\|`, updated)
	assert.Contains(t, updated, "error: code: only alphanumeric characters and underscores are allowed")
	assert.Regexp(t, `code\s*\|\s*F-C\s*\|`, after(t, out, "Edit 3 | States"), "a failed save keeps the form open")
	assert.Contains(t, updated, "cancelled")
	assert.Contains(t, updated, "error: no form is open: add or edit ID")
	assert.Contains(t, updated, "error: state not found")

	assert.Contains(t, after(t, out, "signed in as viewer@example.com"), "error: permission denied")
}

func Test_console_districtForm(t *testing.T) {
	out := runConsole(t,
		"login admin@example.com",
		"go /senatorial-districts",
		"add",
		"set name Lagos West",
		"set code LAW",
		"set state_id 1",
		"set lga_ids 1, 2",
		"set state_id 2",
		"set lga_ids 1",
		"set lga_ids 4",
		"save",
		"edit 2",
	)

	forms := renders(t, out, "Add | Senatorial Districts")
	require.Len(t, forms, 7)
	assert.Regexp(t, `lga_options\s*\|\s*select a state first`, forms[0])
	assert.Regexp(t, `name\s*\|\s*Lagos West\s*\|`, forms[1])
	assert.Regexp(t, `lga_options\s*\|\s*1 Ikeja, 2 Eti-Osa, 3 Ikorodu\s*\|`, forms[3])
	assert.Regexp(t, `lga_ids\s*\|\s*1, 2\s*\|`, forms[4])

	switched := forms[5]
	assert.Regexp(t, `lga_ids\s*\|\s*\|`, switched, "changing state clears the LGAs")
	assert.Regexp(t, `lga_options\s*\|\s*4 Abeokuta South\s*\|`, switched)
	assert.Contains(t, switched, "error: lga_ids: not an option for the selected state: 1")

	added := after(t, out, "added ")
	assert.Regexp(t, `Lagos West\s*\|\s*LAW\s*\|\s*2\s*\|\s*4\s*\|`, added)
	assert.Regexp(t, `lga_ids\s*\|\s*2, 3\s*\|`, after(t, added, "Edit 2 | Senatorial Districts"), "edit seeds the form from the row")
}

func Test_console_examResultForm(t *testing.T) {
	out := runConsole(t,
		"login analyst@example.com",
		"go /academic-records/exam-results",
		"edit 1",
		"add",
		"set school_id 1",
		"set exam_id 1",
		"set academic_year 2023/2024",
		"set total_students 100",
		"set passed_students 70",
		"set passed_students 120",
		"save",
		"set passed_students 70",
		"set subject.total_students 50",
		"set subject Mathematics",
		"set subject.total_students 50",
		"set subject.passed_students 40",
		"set subject.grade_a_count 60",
		"set subject.grade_a_count 30",
		"save",
	)

	assert.Contains(t, out, "error: rows of this page cannot be edited")

	forms := renders(t, out, "Add | Exam Results")
	require.Len(t, forms, 12)
	assert.Regexp(t, `pass_rate\s*\|\s*0\.00\s*\|`, forms[0])
	assert.Regexp(t, `pass_rate\s*\|\s*70\.00\s*\|`, forms[5])

	overflow := forms[6]
	assert.Regexp(t, `pass_rate\s*\|\s*120\.00\s*\|`, overflow)
	assert.Contains(t, overflow, "error: passed_students:")

	subjects := forms[7]
	assert.Contains(t, subjects, "error: subject.total_students: add a subject first: subject NAME")
	assert.Contains(t, forms[10], "Mathematics: 40/50 passed, pass rate 80.00, grades A-F 0/0/0/0/0")
	assert.Contains(t, forms[10], "error: subject.grade_a_count: grade counts would exceed total students")
	assert.Contains(t, forms[11], "Mathematics: 40/50 passed, pass rate 80.00, grades A-F 30/0/0/0/0")

	added := after(t, out, "added ")
	assert.Regexp(t, `2023/2024\s*\|\s*100\s*\|\s*70\s*\|\s*70\.00\s*\|`, added)
	assert.Contains(t, added, "Results: 2")
}

func Test_console_enrollmentForm(t *testing.T) {
	out := runConsole(t,
		"login analyst@example.com",
		"go /academic-records/enrollment",
		"add school_id=2 academic_year=2023/2024 male_students=100 female_students=120 special_needs_students=5",
		"edit 1",
		"set male_students 230",
		"set total_students 5",
		"set female_students many",
		"save",
		"add school_id=2 academic_year=2023-2024",
		"cancel",
	)

	added := after(t, out, "added ")
	assert.Regexp(t, `\|\s*2\s*\|\s*2023/2024\s*\|\s*first\s*\|\s*220\s*\|\s*100\s*\|\s*120\s*\|\s*5\s*\|`, added, "the total is derived")

	forms := renders(t, out, "Edit 1 | Enrollment")
	require.Len(t, forms, 2)
	assert.Regexp(t, `total_students\s*\|\s*450\s*\|`, forms[0])
	assert.Regexp(t, `academic_year_options\s*\|\s*\d{4}/\d{4}, \d{4}/\d{4}, \d{4}/\d{4}\s*\|`, forms[0])
	assert.Regexp(t, `total_students\s*\|\s*460\s*\|`, forms[1])
	assert.Contains(t, forms[1], "error: total_students: read only")
	assert.Contains(t, forms[1], "error: female_students: must be a number")

	updated := after(t, out, "updated 1")
	assert.Regexp(t, `\|\s*1\s*\|\s*1\s*\|\s*2023/2024\s*\|\s*first\s*\|\s*460\s*\|`, updated)
	assert.Contains(t, updated, "error: academic_year: academic year must look like 2023/2024")
	assert.Contains(t, updated, "cancelled")
}
