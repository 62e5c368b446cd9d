package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/edudash/core/demographics"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/performance"
)

func TestTable_WriteCSV(t *testing.T) {
	table := FacilityTable([]facility.Location{
		{Name: "Central High School", Latitude: 6.6018, Longitude: 3.3515, HasWater: true, HasPower: true},
		{Name: "Lekki, Annex", Latitude: 6.5, Longitude: 3.6},
	})
	assert.Equal(t, "facility_data.csv", table.Filename(FormatCSV))

	var buf bytes.Buffer
	require.NoError(t, table.Write(&buf, FormatCSV))
	assert.Equal(t,
		"Name,Latitude,Longitude,Water,Power,Internet,Library,Sick Bay,All Facilities\n"+
			"Central High School,6.6018,3.3515,true,true,false,false,false,false\n"+
			"\"Lekki, Annex\",6.5,3.6,false,false,false,false,false,false\n",
		buf.String())

	buf.Reset()
	require.NoError(t, NewTable("empty", "A", "B").Write(&buf, "txt"))
	assert.Equal(t, "A,B\n", buf.String())
}

func TestTable_WriteXLSX(t *testing.T) {
	table := PerformanceTable([]performance.SchoolPerformance{
		{SchoolName: "Central High School", ExamType: "WAEC", TotalStudents: 250, PassRate: 78, AverageScore: 72.5, Year: 2023},
	})
	assert.Equal(t, "performance_data.xlsx", table.Filename(FormatXLSX))

	var buf bytes.Buffer
	require.NoError(t, table.Write(&buf, "XLSX"))

	file, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := file.GetRows(sheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"School Name", "Exam Type", "Total Students", "Pass Rate", "Average Score", "Year"},
		{"Central High School", "WAEC", "250", "78", "72.5", "2023"},
	}, rows)
}

func TestDemographicsTable(t *testing.T) {
	table := DemographicsTable([]demographics.SchoolDemographics{{
		SchoolName: "Central High School", TotalStudents: 465, MaleStudents: 228, FemaleStudents: 237,
		SpecialNeedsStudents: 16, AverageAge: 14.5, ClassSize: 35, Teachers: 18, Year: 2024,
	}})
	require.Len(t, table.Rows, 1)
	assert.Len(t, table.Header, 9)
	assert.Equal(t, []string{"Central High School", "465", "228", "237", "16", "14.5", "35", "18", "2024"}, table.Rows[0])
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv; charset=utf-8", ContentType(FormatCSV))
	assert.Contains(t, ContentType(FormatXLSX), "spreadsheetml")
}
