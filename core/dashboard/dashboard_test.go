package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/edudash/core/dashboard"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/maintenance"
	"github.com/trezcool/edudash/core/performance"
	"github.com/trezcool/edudash/core/school"
	testutil "github.com/trezcool/edudash/tests"
)

func TestComputeStats(t *testing.T) {
	schools := []school.School{{ID: "1"}, {ID: "2"}}
	records := []performance.Record{
		{SchoolID: "1", Year: 2023, TotalStudents: 100, PassRate: 60},
		{SchoolID: "2", Year: 2023, TotalStudents: 60, PassRate: 80},
		{SchoolID: "2", Year: 2022, TotalStudents: 40, PassRate: 50},
		{SchoolID: "9", Year: 2023, TotalStudents: 1000, PassRate: 10},
	}
	requests := []maintenance.Request{
		{SchoolID: "1", Status: maintenance.StatusOpen},
		{SchoolID: "2", Status: maintenance.StatusCompleted},
		{SchoolID: "9", Status: maintenance.StatusOpen},
	}
	jan := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	terms := []enrollment.TermEnrollment{
		{SchoolID: "1", TotalStudents: 200, CreatedAt: jan.AddDate(0, -4, 0)},
		{SchoolID: "1", TotalStudents: 210, CreatedAt: jan},
		{SchoolID: "9", TotalStudents: 5000, CreatedAt: jan.AddDate(0, 1, 0)},
	}

	stats := dashboard.ComputeStats(dashboard.Filter{}, schools, records, requests, terms)
	assert.Equal(t, 2, stats.TotalSchools)
	assert.Equal(t, 200, stats.TotalStudents)
	assert.Equal(t, 8, stats.TotalTeachers)
	assert.InDelta(t, 63.33, stats.AveragePerformance, .01)
	assert.Len(t, stats.RecentActivities, 2)
	assert.Equal(t, 1, stats.MaintenanceAlerts)
	assert.Equal(t, 210, stats.CurrentTermEnrollment.Total)
	assert.InDelta(t, 5.0, stats.CurrentTermEnrollment.Growth, 1e-9)

	stats = dashboard.ComputeStats(dashboard.Filter{Year: 2023}, schools, records, requests, terms)
	assert.Equal(t, 160, stats.TotalStudents)
	assert.Equal(t, 70.0, stats.AveragePerformance)
	assert.Equal(t, 6, stats.TotalTeachers)

	stats = dashboard.ComputeStats(dashboard.Filter{}, nil, records, requests, terms)
	assert.Zero(t, stats.TotalSchools)
	assert.Zero(t, stats.AveragePerformance)
	assert.Equal(t, dashboard.TermEnrollment{}, stats.CurrentTermEnrollment)
	assert.NotNil(t, stats.RecentActivities)
}

func TestFilter_Set(t *testing.T) {
	var f dashboard.Filter
	require.NoError(t, f.Set("year", "2023"))
	require.NoError(t, f.Set("lga", " Ikeja "))
	assert.Equal(t, dashboard.Filter{Year: 2023, LGA: "Ikeja"}, f)

	assert.EqualError(t, f.Set("year", "last"), "year: must be a number")
	assert.EqualError(t, f.Set("school_type", "nursery"), "school_type: invalid choice")
	assert.EqualError(t, f.Set("term", "first"), "term: unknown filter")

	for _, fld := range dashboard.FilterPanel() {
		var empty dashboard.Filter
		assert.NoError(t, empty.Set(fld.Key, ""), fld.Key)
	}
}

func TestService_Stats(t *testing.T) {
	ctx := context.Background()
	svc := testutil.NewServices(testutil.OpenDB(t)).Dashboard

	stats, err := svc.Stats(ctx, dashboard.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSchools)
	assert.Equal(t, 570, stats.TotalStudents)
	assert.Equal(t, 23, stats.TotalTeachers)
	assert.Equal(t, 81.5, stats.AveragePerformance)
	assert.Equal(t, 1, stats.MaintenanceAlerts)
	assert.Equal(t, 465, stats.CurrentTermEnrollment.Total)
	assert.InDelta(t, 3.33, stats.CurrentTermEnrollment.Growth, .01)

	stats, err = svc.Stats(ctx, dashboard.Filter{LGA: "eti-osa"})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalSchools)
	assert.Equal(t, 320, stats.TotalStudents)
	assert.Zero(t, stats.MaintenanceAlerts)
	assert.Zero(t, stats.CurrentTermEnrollment.Total)

	stats, err = svc.Stats(ctx, dashboard.Filter{Year: 2020})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSchools)
	assert.Zero(t, stats.TotalStudents)
}
