package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/edudash/core"
	"github.com/trezcool/edudash/core/dashboard"
	"github.com/trezcool/edudash/core/demographics"
	"github.com/trezcool/edudash/core/facility"
	"github.com/trezcool/edudash/core/mapping"
	"github.com/trezcool/edudash/core/performance"
	"github.com/trezcool/edudash/core/school"
	"github.com/trezcool/edudash/core/staff"
	"github.com/trezcool/edudash/core/user"
)

var (
	errUnknownPage = echo.NewHTTPError(http.StatusNotFound, "unknown filter page")

	// filter panels per page
	filterPanels = map[string]func() []core.FilterField{
		"dashboard":    dashboard.FilterPanel,
		"facilities":   facility.FilterPanel,
		"performance":  performance.FilterPanel,
		"demographics": demographics.FilterPanel,
		"maps":         mapping.FilterPanel,
		"schools":      school.FilterPanel,
		"staff":        staff.FilterPanel,
		"users":        user.FilterPanel,
	}
)

func registerFilterAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	g.GET("/filters/:page", filterPanel, jwt)
}

func filterPanel(ctx echo.Context) error {
	panel, ok := filterPanels[ctx.Param("page")]
	if !ok {
		return errUnknownPage
	}
	return respond(ctx, http.StatusOK, panel())
}
