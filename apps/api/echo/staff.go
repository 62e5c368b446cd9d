package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core/staff"
)

type staffApi struct {
	svc      *staff.Service
	validate *validator.Validate
}

func registerStaffAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *staff.Service, validate *validator.Validate) {
	api := staffApi{svc: svc, validate: validate}

	sg := g.Group("/staff", jwt)
	sg.GET("", api.query)
	sg.GET("/stats", api.stats)
	sg.POST("", api.create, editorMiddleware())
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update, editorMiddleware())
	sg.DELETE("/:id", api.destroy, editorMiddleware())
}

func (api *staffApi) query(ctx echo.Context) error {
	var filter staff.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	members, err := api.svc.List(ctx.Request().Context(), filter, bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying staff")
	}
	if members == nil {
		members = []staff.Staff{}
	}
	return respond(ctx, http.StatusOK, members)
}

func (api *staffApi) stats(ctx echo.Context) error {
	var filter staff.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	stats, err := api.svc.Stats(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "computing staff stats")
	}
	return respond(ctx, http.StatusOK, stats)
}

func (api *staffApi) create(ctx echo.Context) error {
	var data staff.NewStaff
	if err := bindPayload(ctx, api.validate, &data, "NewStaff"); err != nil {
		return err
	}
	member, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating staff")
	}
	return respond(ctx, http.StatusCreated, member)
}

func (api *staffApi) retrieve(ctx echo.Context) error {
	member, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding staff by ID")
	}
	return respond(ctx, http.StatusOK, member)
}

func (api *staffApi) update(ctx echo.Context) error {
	var data staff.UpdateStaff
	if err := bindPayload(ctx, api.validate, &data, "UpdateStaff"); err != nil {
		return err
	}
	member, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating staff")
	}
	return respond(ctx, http.StatusOK, member)
}

func (api *staffApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting staff")
	}
	return noContent(ctx)
}
