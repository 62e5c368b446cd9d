package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/enrollment"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/mapping"
	"github.com/trezcool/edudash/core/performance"
	"github.com/trezcool/edudash/core/school"
)

type mapApi struct {
	schools     *school.Service
	facilities  *facility.Service
	performance *performance.Service
	enrollments *enrollment.Service
}

func registerMapAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	schools *school.Service,
	facilities *facility.Service,
	perf *performance.Service,
	enrollments *enrollment.Service,
) {
	api := mapApi{schools: schools, facilities: facilities, performance: perf, enrollments: enrollments}

	mg := g.Group("/maps", jwt)
	mg.GET("/facilities", api.facilityMarkers)
	mg.GET("/performance", api.performanceMarkers)
	mg.GET("/population", api.populationMarkers)
}

// facilityMapQuery is the facility filter plus the metric the markers are colored by.
type facilityMapQuery struct {
	Metric string
	facility.Filter
}

func (q *facilityMapQuery) Set(key, value string) (err error) {
	if key == "metric" {
		q.Metric, err = core.OneOf(key, core.CleanString(value), mapping.FacilityMetrics)
		return err
	}
	return q.Filter.Set(key, value)
}

func (api *mapApi) facilityMarkers(ctx echo.Context) error {
	var q facilityMapQuery
	if err := bindFilter(ctx, &q); err != nil {
		return err
	}
	if q.Metric == "" {
		q.Metric = mapping.MetricAll
	}
	stats, err := api.facilities.Stats(ctx.Request().Context(), q.Filter)
	if err != nil {
		return errors.Wrap(err, "computing facility stats")
	}
	return respond(ctx, http.StatusOK, mapping.FacilityMarkers(stats.FacilitiesLocation, q.Metric))
}

func (api *mapApi) performanceMarkers(ctx echo.Context) error {
	var filter school.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	schools, err := api.schools.List(ctx.Request().Context(), filter, nil)
	if err != nil {
		return errors.Wrap(err, "querying schools")
	}
	records, err := api.performance.List(ctx.Request().Context(), "")
	if err != nil {
		return errors.Wrap(err, "querying performance records")
	}
	return respond(ctx, http.StatusOK, mapping.PerformanceMarkers(schools, records))
}

func (api *mapApi) populationMarkers(ctx echo.Context) error {
	var filter mapping.MapFilter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	schools, err := api.schools.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying schools")
	}
	latest, err := api.enrollments.LatestBySchool(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying latest enrollments")
	}
	students := make(map[string]int, len(latest))
	for id, te := range latest {
		students[id] = te.TotalStudents
	}
	return respond(ctx, http.StatusOK, mapping.PopulationMarkers(schools, students, filter))
}
