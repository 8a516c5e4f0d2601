package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/padraicbc/f1globe/dataset"
	"github.com/padraicbc/f1globe/models"
	"github.com/padraicbc/f1globe/stats"
)

type driverData struct {
	DriverID    string `json:"driverId"`
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
}

// Drivers searches drivers by name or id for the season driver picker.
func (h *Handler) Drivers(c echo.Context) error {
	limit, err := intParam(c, "limit", dataset.DefaultSearchLimit)
	if err != nil {
		return err
	}

	found := h.tables.SearchDrivers(c.QueryParam("q"), limit)
	return c.JSON(http.StatusOK, lo.Map(found, func(d models.Driver, _ int) driverData {
		return driverData{
			DriverID:    d.DriverID,
			Name:        h.tables.DriverName(d.DriverID),
			Nationality: d.Nationality,
		}
	}))
}

// Colors returns the constructor id to team color map.
func (h *Handler) Colors(c echo.Context) error {
	return c.JSON(http.StatusOK, stats.ColorMap(h.tables.Colors))
}
