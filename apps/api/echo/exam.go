package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core/exam"
)

type examApi struct {
	svc      *exam.Service
	grading  *exam.GradingService
	validate *validator.Validate
}

func registerExamAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *exam.Service, grading *exam.GradingService, validate *validator.Validate) {
	api := examApi{svc: svc, grading: grading, validate: validate}

	rg := g.Group("/exam-results", jwt)
	rg.GET("", api.queryResults)
	rg.GET("/subjects", api.querySubjects)
	rg.POST("", api.recordResult, editorMiddleware())
	rg.GET("/:id", api.retrieveResult)
	rg.DELETE("/:id", api.destroyResult, editorMiddleware())

	sg := g.Group("/grading-schemes", jwt)
	sg.GET("", api.querySchemes)
	sg.POST("", api.createScheme, adminMiddleware())
	sg.POST("/validate", api.validateRanges)
	sg.GET("/:id", api.retrieveScheme)
	sg.PUT("/:id", api.updateScheme, adminMiddleware())
	sg.DELETE("/:id", api.destroyScheme, adminMiddleware())
}

// Exam results

func (api *examApi) queryResults(ctx echo.Context) error {
	var filter exam.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	results, err := api.svc.List(ctx.Request().Context(), filter, bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying exam results")
	}
	if results == nil {
		results = []exam.Result{}
	}
	return respond(ctx, http.StatusOK, results)
}

func (api *examApi) querySubjects(ctx echo.Context) error {
	var filter exam.Filter
	if err := bindFilter(ctx, &filter); err != nil {
		return err
	}
	subjects, err := api.svc.Subjects(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying subject results")
	}
	if subjects == nil {
		subjects = []exam.SubjectResult{}
	}
	return respond(ctx, http.StatusOK, subjects)
}

func (api *examApi) recordResult(ctx echo.Context) error {
	var data exam.NewResult
	if err := bindPayload(ctx, api.validate, &data, "NewResult"); err != nil {
		return err
	}
	detail, err := api.svc.Record(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "recording exam result")
	}
	return respond(ctx, http.StatusCreated, detail)
}

func (api *examApi) retrieveResult(ctx echo.Context) error {
	detail, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding exam result by ID")
	}
	return respond(ctx, http.StatusOK, detail)
}

func (api *examApi) destroyResult(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting exam result")
	}
	return noContent(ctx)
}

// Grading schemes

func (api *examApi) querySchemes(ctx echo.Context) error {
	schemes, err := api.grading.List(ctx.Request().Context(), bindOrdering(ctx))
	if err != nil {
		return errors.Wrap(err, "querying grading schemes")
	}
	if schemes == nil {
		schemes = []exam.GradingScheme{}
	}
	return respond(ctx, http.StatusOK, schemes)
}

func (api *examApi) createScheme(ctx echo.Context) error {
	var data exam.SchemeInput
	if err := bindPayload(ctx, api.validate, &data, "SchemeInput"); err != nil {
		return err
	}
	scheme, err := api.grading.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating grading scheme")
	}
	return respond(ctx, http.StatusCreated, scheme)
}

func (api *examApi) retrieveScheme(ctx echo.Context) error {
	scheme, err := api.grading.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding grading scheme by ID")
	}
	return respond(ctx, http.StatusOK, scheme)
}

func (api *examApi) updateScheme(ctx echo.Context) error {
	var data exam.SchemeInput
	if err := bindPayload(ctx, api.validate, &data, "SchemeInput"); err != nil {
		return err
	}
	scheme, err := api.grading.Update(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating grading scheme")
	}
	return respond(ctx, http.StatusOK, scheme)
}

func (api *examApi) destroyScheme(ctx echo.Context) error {
	if err := api.grading.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting grading scheme")
	}
	return noContent(ctx)
}

// validateRanges checks grade ranges without saving them.
func (api *examApi) validateRanges(ctx echo.Context) error {
	var data RangesRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RangesRequest")
	}
	if err := api.grading.Validate(data.GradeRanges); err != nil {
		return err
	}
	return respond(ctx, http.StatusOK, SuccessResponse{Success: "grade ranges are valid"})
}

type RangesRequest struct {
	GradeRanges []exam.GradeRange `json:"grade_ranges"`
}
