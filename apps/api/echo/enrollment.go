package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core/enrollment"
)

type enrollmentApi struct {
	svc      *enrollment.Service
	validate *validator.Validate
}

func registerEnrollmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *enrollment.Service, validate *validator.Validate) {
	api := enrollmentApi{svc: svc, validate: validate}

	eg := g.Group("/enrollments", jwt)
	eg.GET("", api.query)
	eg.GET("/stats", api.stats)
	eg.POST("", api.create, editorMiddleware())
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update, editorMiddleware())
	eg.DELETE("/:id", api.destroy, editorMiddleware())

	tg := g.Group("/trends", jwt)
	tg.GET("/enrollment", api.trends)
	tg.GET("/seasonal", api.seasonalPatterns)
	tg.GET("/forecasts", api.forecasts)
	tg.GET("/year-over-year", api.yearOverYear)
}

func (api *enrollmentApi) query(ctx echo.Context) error {
	var filter enrollment.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	records, err := api.svc.List(ctx.Request().Context(), filter, bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying term enrollments")
	}
	if records == nil {
		records = []enrollment.TermEnrollment{}
	}
	return respond(ctx, http.StatusOK, records)
}

func (api *enrollmentApi) stats(ctx echo.Context) error {
	var filter enrollment.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	stats, err := api.svc.Stats(ctx.Request().Context(), filter)
	if err != nil {
		if errors.Cause(err) == enrollment.ErrNoData {
			return echo.NewHTTPError(http.StatusNotFound, enrollment.ErrNoData.Error())
		}
		return errors.Wrap(err, "computing enrollment stats")
	}
	return respond(ctx, http.StatusOK, stats)
}

func (api *enrollmentApi) create(ctx echo.Context) error {
	var data enrollment.NewTermEnrollment
	if err := bindPayload(ctx, api.validate, &data, "NewTermEnrollment"); err != nil {
		return err
	}
	te, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating term enrollment")
	}
	return respond(ctx, http.StatusCreated, te)
}

func (api *enrollmentApi) retrieve(ctx echo.Context) error {
	te, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding term enrollment by ID")
	}
	return respond(ctx, http.StatusOK, te)
}

func (api *enrollmentApi) update(ctx echo.Context) error {
	var data enrollment.NewTermEnrollment
	if err := bindPayload(ctx, api.validate, &data, "NewTermEnrollment"); err != nil {
		return err
	}
	te, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating term enrollment")
	}
	return respond(ctx, http.StatusOK, te)
}

func (api *enrollmentApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting term enrollment")
	}
	return noContent(ctx)
}

// Trends

func (api *enrollmentApi) trends(ctx echo.Context) error {
	trends, err := api.svc.Trends(ctx.Request().Context(), ctx.QueryParam("school_id"))
	if err != nil {
		return errors.Wrap(err, "querying enrollment trends")
	}
	if trends == nil {
		trends = []enrollment.Trend{}
	}
	return respond(ctx, http.StatusOK, trends)
}

func (api *enrollmentApi) seasonalPatterns(ctx echo.Context) error {
	patterns, err := api.svc.SeasonalPatterns(ctx.Request().Context(), ctx.QueryParam("school_id"))
	if err != nil {
		return errors.Wrap(err, "querying seasonal patterns")
	}
	if patterns == nil {
		patterns = []enrollment.SeasonalPattern{}
	}
	return respond(ctx, http.StatusOK, patterns)
}

func (api *enrollmentApi) forecasts(ctx echo.Context) error {
	forecasts, err := api.svc.Forecasts(ctx.Request().Context(), ctx.QueryParam("school_id"))
	if err != nil {
		return errors.Wrap(err, "querying enrollment forecasts")
	}
	if forecasts == nil {
		forecasts = []enrollment.Forecast{}
	}
	return respond(ctx, http.StatusOK, forecasts)
}

func (api *enrollmentApi) yearOverYear(ctx echo.Context) error {
	growth, err := api.svc.YearOverYear(ctx.Request().Context(), ctx.QueryParam("school_id"))
	if err != nil {
		return errors.Wrap(err, "computing year-over-year growth")
	}
	if growth == nil {
		growth = []enrollment.YearOverYear{}
	}
	return respond(ctx, http.StatusOK, growth)
}
