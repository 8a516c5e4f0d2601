package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/f1globe/dashboard"
)

// Seasons returns all race years, most recent first.
func (h *Handler) Seasons(c echo.Context) error {
	return c.JSON(http.StatusOK, h.tables.Seasons())
}

// SeasonPoints returns the cumulative points line of each requested
// driver over a season. Drivers come as ?drivers=a,b and are capped at
// the configured maximum.
func (h *Handler) SeasonPoints(c echo.Context) error {
	year, err := strconv.Atoi(strings.TrimSpace(c.Param("year")))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid year")
	}

	ids := dashboard.NormalizeDriverIDs(strings.Split(c.QueryParam("drivers"), ","), h.opts.MaxDrivers)
	return c.JSON(http.StatusOK, dashboard.SeasonLines(h.tables, year, ids))
}
