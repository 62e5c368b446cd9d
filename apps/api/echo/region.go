package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core/region"
)

type regionApi struct {
	svc      *region.Service
	validate *validator.Validate
}

func registerRegionAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *region.Service, validate *validator.Validate) {
	api := regionApi{svc: svc, validate: validate}

	sg := g.Group("/states", jwt)
	sg.GET("", api.queryStates)
	sg.POST("", api.createState, adminMiddleware())
	sg.GET("/:id", api.retrieveState)
	sg.PUT("/:id", api.updateState, adminMiddleware())
	sg.DELETE("/:id", api.destroyState, adminMiddleware())

	lg := g.Group("/lgas", jwt)
	lg.GET("", api.queryLGAs)
	lg.POST("", api.createLGA, adminMiddleware())
	lg.GET("/:id", api.retrieveLGA)
	lg.PUT("/:id", api.updateLGA, adminMiddleware())
	lg.DELETE("/:id", api.destroyLGA, adminMiddleware())

	dg := g.Group("/senatorial-districts", jwt)
	dg.GET("", api.queryDistricts)
	dg.POST("", api.createDistrict, adminMiddleware())
	dg.GET("/:id", api.retrieveDistrict)
	dg.PUT("/:id", api.updateDistrict, adminMiddleware())
	dg.DELETE("/:id", api.destroyDistrict, adminMiddleware())
}

// States

func (api *regionApi) queryStates(ctx echo.Context) error {
	states, err := api.svc.ListStates(ctx.Request().Context(), bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying states")
	}
	if states == nil {
		states = []region.State{}
	}
	return respond(ctx, http.StatusOK, states)
}

func (api *regionApi) createState(ctx echo.Context) error {
	var data region.StateInput
	if err := bindPayload(ctx, api.validate, &data, "StateInput"); err != nil {
		return err
	}
	state, err := api.svc.CreateState(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating state")
	}
	return respond(ctx, http.StatusCreated, state)
}

func (api *regionApi) retrieveState(ctx echo.Context) error {
	state, err := api.svc.GetState(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding state by ID")
	}
	return respond(ctx, http.StatusOK, state)
}

func (api *regionApi) updateState(ctx echo.Context) error {
	var data region.StateInput
	if err := bindPayload(ctx, api.validate, &data, "StateInput"); err != nil {
		return err
	}
	state, err := api.svc.UpdateState(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating state")
	}
	return respond(ctx, http.StatusOK, state)
}

func (api *regionApi) destroyState(ctx echo.Context) error {
	if err := api.svc.DeleteState(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting state")
	}
	return noContent(ctx)
}

// LGAs

func (api *regionApi) queryLGAs(ctx echo.Context) error {
	var filter region.LGAFilter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	lgas, err := api.svc.ListLGAs(ctx.Request().Context(), filter, bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying lgas")
	}
	if lgas == nil {
		lgas = []region.LGA{}
	}
	return respond(ctx, http.StatusOK, lgas)
}

func (api *regionApi) createLGA(ctx echo.Context) error {
	var data region.LGAInput
	if err := bindPayload(ctx, api.validate, &data, "LGAInput"); err != nil {
		return err
	}
	lga, err := api.svc.CreateLGA(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lga")
	}
	return respond(ctx, http.StatusCreated, lga)
}

func (api *regionApi) retrieveLGA(ctx echo.Context) error {
	lga, err := api.svc.GetLGA(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding lga by ID")
	}
	return respond(ctx, http.StatusOK, lga)
}

func (api *regionApi) updateLGA(ctx echo.Context) error {
	var data region.LGAInput
	if err := bindPayload(ctx, api.validate, &data, "LGAInput"); err != nil {
		return err
	}
	lga, err := api.svc.UpdateLGA(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating lga")
	}
	return respond(ctx, http.StatusOK, lga)
}

func (api *regionApi) destroyLGA(ctx echo.Context) error {
	if err := api.svc.DeleteLGA(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting lga")
	}
	return noContent(ctx)
}

// Senatorial districts

func (api *regionApi) queryDistricts(ctx echo.Context) error {
	districts, err := api.svc.ListDistricts(ctx.Request().Context(), bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying senatorial districts")
	}
	if districts == nil {
		districts = []region.SenatorialDistrict{}
	}
	return respond(ctx, http.StatusOK, districts)
}

func (api *regionApi) createDistrict(ctx echo.Context) error {
	var data region.DistrictInput
	if err := bindPayload(ctx, api.validate, &data, "DistrictInput"); err != nil {
		return err
	}
	district, err := api.svc.CreateDistrict(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating senatorial district")
	}
	return respond(ctx, http.StatusCreated, district)
}

func (api *regionApi) retrieveDistrict(ctx echo.Context) error {
	district, err := api.svc.GetDistrict(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding senatorial district by ID")
	}
	return respond(ctx, http.StatusOK, district)
}

func (api *regionApi) updateDistrict(ctx echo.Context) error {
	var data region.DistrictInput
	if err := bindPayload(ctx, api.validate, &data, "DistrictInput"); err != nil {
		return err
	}
	district, err := api.svc.UpdateDistrict(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating senatorial district")
	}
	return respond(ctx, http.StatusOK, district)
}

func (api *regionApi) destroyDistrict(ctx echo.Context) error {
	if err := api.svc.DeleteDistrict(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting senatorial district")
	}
	return noContent(ctx)
}
