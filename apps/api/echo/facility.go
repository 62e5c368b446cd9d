package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/maintenance"
)

type facilityApi struct {
	svc         *facility.Service
	maintenance *maintenance.Service
}

func registerFacilityAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *facility.Service, maint *maintenance.Service) {
	api := facilityApi{svc: svc, maintenance: maint}

	g.GET("/facilities/stats", api.stats, jwt)
	g.GET("/infrastructure", api.queryInfrastructure, jwt)
	g.GET("/maintenance", api.queryMaintenance, jwt)
}

func (api *facilityApi) stats(ctx echo.Context) error {
	var filter facility.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	stats, err := api.svc.Stats(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "computing facility stats")
	}
	if err := core.SortSlice(stats.FacilitiesLocation, bindOrdering(ctx), facility.Orderings); err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, stats)
}

func (api *facilityApi) queryInfrastructure(ctx echo.Context) error {
	rows, err := api.svc.Infrastructure(ctx.Request().Context(), ctx.QueryParam("school_id"))
	if err != nil {
		return errors.Wrap(err, "querying infrastructure")
	}
	if rows == nil {
		rows = []facility.Infrastructure{}
	}
	return respond(ctx, http.StatusOK, rows)
}

func (api *facilityApi) queryMaintenance(ctx echo.Context) error {
	reqs, err := api.maintenance.List(ctx.Request().Context(), ctx.QueryParam("school_id"))
	if err != nil {
		return errors.Wrap(err, "querying maintenance requests")
	}
	if reqs == nil {
		reqs = []maintenance.Request{}
	}
	return respond(ctx, http.StatusOK, reqs)
}
