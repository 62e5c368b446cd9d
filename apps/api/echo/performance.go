package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/performance"
)

type performanceApi struct {
	svc *performance.Service
}

func registerPerformanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *performance.Service) {
	api := performanceApi{svc: svc}

	pg := g.Group("/performance", jwt)
	pg.GET("", api.query)
	pg.GET("/stats", api.stats)
}

func (api *performanceApi) query(ctx echo.Context) error {
	records, err := api.svc.List(ctx.Request().Context(), ctx.QueryParam("school_id"))
	if err != nil {
		return errors.Wrap(err, "querying performance records")
	}
	if records == nil {
		records = []performance.Record{}
	}
	return respond(ctx, http.StatusOK, records)
}

func (api *performanceApi) stats(ctx echo.Context) error {
	var filter performance.ComparisonFilters
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	stats, err := api.svc.Stats(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "computing performance stats")
	}
	if err := core.SortSlice(stats.SchoolPerformance, bindOrdering(ctx), performance.SchoolOrderings); err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, stats)
}
