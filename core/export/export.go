// Package export writes the rows currently shown by a page to CSV or XLSX.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/edudash/core/demographics"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/performance"
)

// Formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const sheetName = "Sheet1"

var Formats = []string{FormatCSV, FormatXLSX}

// Table is a header row and the data rows below it. Name is the download file name, without extension.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

func NewTable(name string, header ...string) *Table {
	return &Table{Name: name, Header: header, Rows: make([][]string, 0)}
}

func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Filename is the download name of the table in the given format.
func (t *Table) Filename(format string) string {
	return t.Name + "." + format
}

// ContentType of a format, for HTTP downloads.
func ContentType(format string) string {
	if format == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write writes t in the given format; anything but xlsx is CSV.
func (t *Table) Write(w io.Writer, format string) error {
	if strings.EqualFold(format, FormatXLSX) {
		return t.WriteXLSX(w)
	}
	return t.WriteCSV(w)
}

func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return errors.Wrap(err, "writing csv rows")
	}
	return nil
}

func (t *Table) WriteXLSX(w io.Writer) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	for i, cells := range append([][]string{t.Header}, t.Rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.Wrap(err, "naming cell")
		}
		row := make([]interface{}, len(cells))
		for j, c := range cells {
			row[j] = c
		}
		if err := file.SetSheetRow(sheetName, cell, &row); err != nil {
			return errors.Wrapf(err, "writing row %d", i+1)
		}
	}
	if err := file.Write(w); err != nil {
		return errors.Wrap(err, "writing xlsx")
	}
	return nil
}

func FacilityTable(locations []facility.Location) *Table {
	t := NewTable("facility_data", "Name", "Latitude", "Longitude", "Water", "Power", "Internet", "Library", "Sick Bay", "All Facilities")
	for _, loc := range locations {
		t.AddRow(
			loc.Name,
			formatFloat(loc.Latitude),
			formatFloat(loc.Longitude),
			strconv.FormatBool(loc.HasWater),
			strconv.FormatBool(loc.HasPower),
			strconv.FormatBool(loc.HasInternet),
			strconv.FormatBool(loc.HasLibrary),
			strconv.FormatBool(loc.HasSickBay),
			strconv.FormatBool(loc.HasAllFacilities),
		)
	}
	return t
}

func PerformanceTable(rows []performance.SchoolPerformance) *Table {
	t := NewTable("performance_data", "School Name", "Exam Type", "Total Students", "Pass Rate", "Average Score", "Year")
	for _, r := range rows {
		t.AddRow(
			r.SchoolName,
			r.ExamType,
			strconv.Itoa(r.TotalStudents),
			formatFloat(r.PassRate),
			formatFloat(r.AverageScore),
			strconv.Itoa(r.Year),
		)
	}
	return t
}

func DemographicsTable(rows []demographics.SchoolDemographics) *Table {
	t := NewTable("demographics_data", "School Name", "Total Students", "Male Students", "Female Students",
		"Special Needs Students", "Average Age", "Class Size", "Teachers", "Year")
	for _, r := range rows {
		t.AddRow(
			r.SchoolName,
			strconv.Itoa(r.TotalStudents),
			strconv.Itoa(r.MaleStudents),
			strconv.Itoa(r.FemaleStudents),
			strconv.Itoa(r.SpecialNeedsStudents),
			formatFloat(r.AverageAge),
			strconv.Itoa(r.ClassSize),
			strconv.Itoa(r.Teachers),
			strconv.Itoa(r.Year),
		)
	}
	return t
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
