package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/demographics"
)

type demographicsApi struct {
	svc *demographics.Service
}

func registerDemographicsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *demographics.Service) {
	api := demographicsApi{svc: svc}
	g.GET("/demographics/stats", api.stats, jwt)
}

func (api *demographicsApi) stats(ctx echo.Context) error {
	var filter demographics.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	stats, err := api.svc.Stats(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "computing demographics stats")
	}
	if err := core.SortSlice(stats.SchoolDemographics, bindOrdering(ctx), demographics.Orderings); err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, stats)
}
