package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edudash/core"
)

const (
	orderingParam = "ordering"
	formatParam   = "format"
)

// envelope is the body of every JSON response: data on success, error otherwise.
type envelope struct {
	Data  interface{} `json:"data"`
	Error interface{} `json:"error"`
}

func respond(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, envelope{Data: data})
}

func bindOrdering(ctx echo.Context) []core.Ordering {
	return core.ParseOrderings(ctx.QueryParam(orderingParam))
}

// bindFilter sets every query param except the ordering and format ones on filter.
// An unknown key or an invalid value is a validation error.
func bindFilter(ctx echo.Context, filter core.Filter) error {
	for key, vals := range ctx.QueryParams() {
		if key == orderingParam || key == formatParam || len(vals) == 0 {
			continue
		}
		if err := filter.Set(key, vals[0]); err != nil {
			return err
		}
	}
	return nil
}

type payload interface {
	Validate(validate *validator.Validate) error
}

// bindPayload binds the request body to data then validates it.
func bindPayload(ctx echo.Context, validate *validator.Validate, data payload, name string) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to "+name)
	}
	return data.Validate(validate)
}

func noContent(ctx echo.Context) error {
	return ctx.NoContent(http.StatusNoContent)
}
