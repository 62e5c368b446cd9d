package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/edudash/core/analytics"
)

func registerAnalyticsAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	g.GET("/predictive", predictions, jwt)

	cg := g.Group("/compare", jwt)
	cg.GET("", compareGrid)
	cg.GET("/options/:domain", compareOptions)
}

func predictions(ctx echo.Context) error {
	var q analytics.PredictionQuery
	if err := bindFilter(ctx, &q); err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, analytics.Predict(q))
}

func compareOptions(ctx echo.Context) error {
	opts, err := analytics.Options(ctx.Param("domain"))
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, opts)
}

func compareGrid(ctx echo.Context) error {
	var q analytics.CompareQuery
	if err := bindFilter(ctx, &q); err != nil {
		return err
	}
	grid, err := analytics.BuildGrid(q)
	if err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, grid)
}
