package handlers

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/f1globe/dashboard"
)

type circuitData struct {
	CircuitID string   `json:"circuitId"`
	Name      string   `json:"name"`
	Location  string   `json:"location"`
	Country   string   `json:"country"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`
	Races     int      `json:"races"`
}

func coord(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

// Circuits returns every circuit with its globe coordinates and how many
// races it has hosted, ordered by name.
func (h *Handler) Circuits(c echo.Context) error {
	counts := h.tables.RaceCountByCircuit()

	result := make([]circuitData, 0, len(h.tables.Circuits))
	for _, cr := range h.tables.Circuits {
		result = append(result, circuitData{
			CircuitID: cr.CircuitID,
			Name:      cr.Name,
			Location:  cr.Location,
			Country:   cr.Country,
			Lat:       coord(cr.Lat),
			Lng:       coord(cr.Lng),
			Races:     counts[cr.CircuitID],
		})
	}
	slices.SortStableFunc(result, func(a, b circuitData) int { return strings.Compare(a.Name, b.Name) })

	return c.JSON(http.StatusOK, result)
}

func (h *Handler) circuitParam(c echo.Context) string {
	return strings.TrimSpace(c.Param("id"))
}

// ConstructorPoints returns the top constructors by points at a circuit.
func (h *Handler) ConstructorPoints(c echo.Context) error {
	n, err := intParam(c, "n", h.opts.TopN)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard.ConstructorChart(h.tables, h.circuitParam(c), n))
}

// DriverPoints returns the top drivers by points at a circuit.
func (h *Handler) DriverPoints(c echo.Context) error {
	n, err := intParam(c, "n", h.opts.TopN)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboard.DriverChart(h.tables, h.circuitParam(c), n))
}

// LapTimes returns the fastest lap per year at a circuit, with year
// highlighted.
func (h *Handler) LapTimes(c echo.Context) error {
	from, err := intParam(c, "from", h.opts.LapYearFrom)
	if err != nil {
		return err
	}
	to, err := intParam(c, "to", h.opts.LapYearTo)
	if err != nil {
		return err
	}
	year, err := intParam(c, "year", 0)
	if err != nil {
		return err
	}
	if from > 0 && to > 0 && from > to {
		return echo.NewHTTPError(http.StatusBadRequest, "from must not be after to")
	}

	return c.JSON(http.StatusOK, dashboard.LapChartFor(h.tables, h.circuitParam(c), from, to, year))
}

// Circuit returns a single circuit.
func (h *Handler) Circuit(c echo.Context) error {
	cr, ok := h.tables.Circuit(h.circuitParam(c))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "circuit not found")
	}
	return c.JSON(http.StatusOK, circuitData{
		CircuitID: cr.CircuitID,
		Name:      cr.Name,
		Location:  cr.Location,
		Country:   cr.Country,
		Lat:       coord(cr.Lat),
		Lng:       coord(cr.Lng),
		Races:     h.tables.RaceCountByCircuit()[cr.CircuitID],
	})
}
