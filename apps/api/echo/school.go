package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/school"
)

type schoolApi struct {
	svc      *school.Service
	validate *validator.Validate
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *school.Service, validate *validator.Validate) {
	api := schoolApi{svc: svc, validate: validate}

	sg := g.Group("/schools", jwt)
	sg.GET("", api.query)
	sg.GET("/stats", api.stats)
	sg.GET("/search", api.search)
	sg.POST("", api.create, editorMiddleware())
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update, editorMiddleware())
	sg.PUT("/:id/status", api.setStatus, adminMiddleware())
	sg.DELETE("/:id", api.destroy, editorMiddleware())
}

func (api *schoolApi) query(ctx echo.Context) error {
	var filter school.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	schools, err := api.svc.List(ctx.Request().Context(), filter, bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying schools")
	}
	if schools == nil {
		schools = []school.School{}
	}
	return respond(ctx, http.StatusOK, schools)
}

func (api *schoolApi) stats(ctx echo.Context) error {
	var filter school.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	stats, err := api.svc.Stats(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "computing school stats")
	}
	return respond(ctx, http.StatusOK, stats)
}

func (api *schoolApi) search(ctx echo.Context) error {
	var limit int
	if l := ctx.QueryParam("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil {
			return core.NewValidationError(nil, core.FieldError{Field: "limit", Error: "must be a number"})
		}
		limit = n
	}
	schools, err := api.svc.Search(ctx.Request().Context(), ctx.QueryParam("q"), limit)
	if err != nil {
		return errors.Wrap(err, "searching schools")
	}
	if schools == nil {
		schools = []school.School{}
	}
	return respond(ctx, http.StatusOK, schools)
}

func (api *schoolApi) create(ctx echo.Context) error {
	var data school.NewSchool
	if err := bindPayload(ctx, api.validate, &data, "NewSchool"); err != nil {
		return err
	}
	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating school")
	}
	return respond(ctx, http.StatusCreated, s)
}

func (api *schoolApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding school by ID")
	}
	return respond(ctx, http.StatusOK, s)
}

func (api *schoolApi) update(ctx echo.Context) error {
	var data school.UpdateSchool
	if err := bindPayload(ctx, api.validate, &data, "UpdateSchool"); err != nil {
		return err
	}
	s, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating school")
	}
	return respond(ctx, http.StatusOK, s)
}

// setStatus approves or rejects a submitted school.
func (api *schoolApi) setStatus(ctx echo.Context) error {
	var data school.StatusUpdate
	if err := bindPayload(ctx, api.validate, &data, "StatusUpdate"); err != nil {
		return err
	}
	s, err := api.svc.SetStatus(ctx.Request().Context(), ctx.Param("id"), data.Status)
	if err != nil {
		return errors.Wrap(err, "setting school status")
	}
	return respond(ctx, http.StatusOK, s)
}

func (api *schoolApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting school")
	}
	return noContent(ctx)
}
