package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core/dashboard"
)

type dashboardApi struct {
	svc *dashboard.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *dashboard.Service) {
	api := dashboardApi{svc: svc}
	g.GET("/dashboard/stats", api.stats, jwt)
}

func (api *dashboardApi) stats(ctx echo.Context) error {
	var filter dashboard.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	stats, err := api.svc.Stats(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "computing dashboard stats")
	}
	return respond(ctx, http.StatusOK, stats)
}
