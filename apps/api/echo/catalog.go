package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core/catalog"
)

type catalogApi struct {
	svc      *catalog.Service
	validate *validator.Validate
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *catalog.Service, validate *validator.Validate) {
	api := catalogApi{svc: svc, validate: validate}

	for path, kind := range map[string]string{
		"/school-types": catalog.KindSchoolType,
		"/status-types": catalog.KindStatusType,
	} {
		kind := kind
		eg := g.Group(path, jwt)
		eg.GET("", api.queryEntries(kind))
		eg.POST("", api.createEntry(kind), adminMiddleware())
		eg.GET("/:id", api.retrieveEntry(kind))
		eg.PUT("/:id", api.updateEntry(kind), adminMiddleware())
		eg.DELETE("/:id", api.destroyEntry(kind), adminMiddleware())
	}

	bg := g.Group("/board-exams", jwt)
	bg.GET("", api.queryBoardExams)
	bg.POST("", api.createBoardExam, adminMiddleware())
	bg.GET("/:id", api.retrieveBoardExam)
	bg.PUT("/:id", api.updateBoardExam, adminMiddleware())
	bg.DELETE("/:id", api.destroyBoardExam, adminMiddleware())
}

// School types & status types

func (api *catalogApi) queryEntries(kind string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		entries, err := api.svc.ListEntries(ctx.Request().Context(), kind, bindOrdering(ctx))
		if err != nil {
			return errors.Wrapf(err, "querying %s entries", kind)
		}
		if entries == nil {
			entries = []catalog.Entry{}
		}
		return respond(ctx, http.StatusOK, entries)
	}
}

func (api *catalogApi) createEntry(kind string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var data catalog.EntryInput
		if err := bindPayload(ctx, api.validate, &data, "EntryInput"); err != nil {
			return err
		}
		entry, err := api.svc.CreateEntry(ctx.Request().Context(), kind, data)
		if err != nil {
			return errors.Wrapf(err, "creating %s entry", kind)
		}
		return respond(ctx, http.StatusCreated, entry)
	}
}

func (api *catalogApi) retrieveEntry(kind string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		entry, err := api.svc.GetEntry(ctx.Request().Context(), kind, ctx.Param("id"))
		if err != nil {
			return errors.Wrapf(err, "finding %s entry by ID", kind)
		}
		return respond(ctx, http.StatusOK, entry)
	}
}

func (api *catalogApi) updateEntry(kind string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var data catalog.EntryInput
		if err := bindPayload(ctx, api.validate, &data, "EntryInput"); err != nil {
			return err
		}
		entry, err := api.svc.UpdateEntry(ctx.Request().Context(), kind, ctx.Param("id"), data)
		if err != nil {
			return errors.Wrapf(err, "updating %s entry", kind)
		}
		return respond(ctx, http.StatusOK, entry)
	}
}

func (api *catalogApi) destroyEntry(kind string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if err := api.svc.DeleteEntry(ctx.Request().Context(), kind, ctx.Param("id")); err != nil {
			return errors.Wrapf(err, "deleting %s entry", kind)
		}
		return noContent(ctx)
	}
}

// Board exams

func (api *catalogApi) queryBoardExams(ctx echo.Context) error {
	exams, err := api.svc.ListBoardExams(ctx.Request().Context(), bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying board exams")
	}
	if exams == nil {
		exams = []catalog.BoardExam{}
	}
	return respond(ctx, http.StatusOK, exams)
}

func (api *catalogApi) createBoardExam(ctx echo.Context) error {
	var data catalog.BoardExamInput
	if err := bindPayload(ctx, api.validate, &data, "BoardExamInput"); err != nil {
		return err
	}
	be, err := api.svc.CreateBoardExam(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating board exam")
	}
	return respond(ctx, http.StatusCreated, be)
}

func (api *catalogApi) retrieveBoardExam(ctx echo.Context) error {
	be, err := api.svc.GetBoardExam(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding board exam by ID")
	}
	return respond(ctx, http.StatusOK, be)
}

func (api *catalogApi) updateBoardExam(ctx echo.Context) error {
	var data catalog.BoardExamInput
	if err := bindPayload(ctx, api.validate, &data, "BoardExamInput"); err != nil {
		return err
	}
	be, err := api.svc.UpdateBoardExam(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating board exam")
	}
	return respond(ctx, http.StatusOK, be)
}

func (api *catalogApi) destroyBoardExam(ctx echo.Context) error {
	if err := api.svc.DeleteBoardExam(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting board exam")
	}
	return noContent(ctx)
}
