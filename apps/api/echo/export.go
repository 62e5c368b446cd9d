package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/demographics"
	"github.com/trezcool/edudash/core/export"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/performance"
)

type exportApi struct {
	facilities   *facility.Service
	performance  *performance.Service
	demographics *demographics.Service
}

func registerExportAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	facilities *facility.Service,
	perf *performance.Service,
	demo *demographics.Service,
) {
	api := exportApi{facilities: facilities, performance: perf, demographics: demo}

	eg := g.Group("/export", jwt)
	eg.GET("/facilities", api.facilityTable)
	eg.GET("/performance", api.performanceTable)
	eg.GET("/demographics", api.demographicsTable)
}

func (api *exportApi) facilityTable(ctx echo.Context) error {
	var filter facility.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	stats, err := api.facilities.Stats(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "computing facility stats")
	}
	rows := stats.FacilitiesLocation
	if err := core.SortSlice(rows, bindOrdering(ctx), facility.Orderings); err != nil {
		return err
	}
	return download(ctx, export.FacilityTable(rows))
}

func (api *exportApi) performanceTable(ctx echo.Context) error {
	var filter performance.ComparisonFilters
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	stats, err := api.performance.Stats(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "computing performance stats")
	}
	rows := stats.SchoolPerformance
	if err := core.SortSlice(rows, bindOrdering(ctx), performance.SchoolOrderings); err != nil {
		return err
	}
	return download(ctx, export.PerformanceTable(rows))
}

func (api *exportApi) demographicsTable(ctx echo.Context) error {
	var filter demographics.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	stats, err := api.demographics.Stats(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "computing demographics stats")
	}
	rows := stats.SchoolDemographics
	if err := core.SortSlice(rows, bindOrdering(ctx), demographics.Orderings); err != nil {
		return err
	}
	return download(ctx, export.DemographicsTable(rows))
}

// download streams t as an attachment in the ?format= format (CSV by default).
func download(ctx echo.Context, t *export.Table) error {
	format, err := core.OneOf(formatParam, ctx.QueryParam(formatParam), export.Formats)
	if err != nil {
		return err
	}
	if format == "" {
		format = export.FormatCSV
	}

	resp := ctx.Response()
	resp.Header().Set(echo.HeaderContentType, export.ContentType(format))
	resp.Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+t.Filename(format)+`"`)
	resp.WriteHeader(http.StatusOK)
	return errors.Wrap(t.Write(resp, format), "writing export")
}
