// Package dashboard derives chart-ready data from the reference tables
// for a viewer's selection, and keeps that selection as explicit state.
package dashboard

import (
	"github.com/samber/lo"

	"github.com/padraicbc/f1globe/dataset"
	"github.com/padraicbc/f1globe/models"
	"github.com/padraicbc/f1globe/stats"
)

// Chart titles.
const (
	NoCircuitData  = "No data for this circuit"
	UnknownCircuit = "Unknown Circuit"
)

// Options are the presentation limits applied when deriving views.
type Options struct {
	TopN        int
	MaxDrivers  int
	LapYearFrom int
	LapYearTo   int
}

// DefaultOptions returns the stock chart limits.
func DefaultOptions() Options {
	return Options{TopN: stats.DefaultTopN, MaxDrivers: 10, LapYearFrom: 2000, LapYearTo: 2024}
}

// Bar is one bar of a ranked chart. ColorKey is the constructor id the
// color was resolved from; Color already has the fallback applied.
type Bar struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Points   float64 `json:"points"`
	ColorKey string  `json:"colorKey"`
	Color    string  `json:"color"`
}

// BarChart is a titled, ranked list of bars.
type BarChart struct {
	Title string `json:"title"`
	Bars  []Bar  `json:"bars"`
}

// LapPoint is one year on the fastest-lap trend chart.
type LapPoint struct {
	Year       int     `json:"year"`
	LapSeconds float64 `json:"lapSeconds"`
	LapTime    string  `json:"lapTime"`
	DriverID   string  `json:"driverId"`
	DriverName string  `json:"driverName"`
}

// LapChart is the trend line plus the point for the highlighted year.
type LapChart struct {
	Points []LapPoint `json:"points"`
	Marker *LapPoint  `json:"marker"`
}

// LinePoint is one round of a season line. Points is nil for rounds the
// driver has no result in.
type LinePoint struct {
	Round  int      `json:"round"`
	Points *float64 `json:"points"`
	Color  string   `json:"color"`
}

// Line is one driver's cumulative points over a season.
type Line struct {
	DriverID    string      `json:"driverId"`
	DriverName  string      `json:"driverName"`
	LegendColor string      `json:"legendColor"`
	Points      []LinePoint `json:"points"`
}

// View is everything the dashboard draws for one selection.
type View struct {
	Selection    Selection       `json:"selection"`
	Circuit      *models.Circuit `json:"circuit"`
	Constructors BarChart        `json:"constructors"`
	Drivers      BarChart        `json:"drivers"`
	Laps         LapChart        `json:"laps"`
	Season       []Line          `json:"season"`
}

// Build derives the full view for sel. Every chart is recomputed from
// the tables.
func Build(t *dataset.Tables, sel Selection, opts Options) View {
	v := View{
		Selection:    sel,
		Constructors: ConstructorChart(t, sel.CircuitID, opts.TopN),
		Drivers:      DriverChart(t, sel.CircuitID, opts.TopN),
		Laps:         LapChartFor(t, sel.CircuitID, opts.LapYearFrom, opts.LapYearTo, sel.LapYear),
		Season:       SeasonLines(t, sel.Season, sel.DriverIDs),
	}
	if c, ok := t.Circuit(sel.CircuitID); ok {
		v.Circuit = &c
	}
	return v
}

func chartTitle(t *dataset.Tables, prefix, circuitID string) string {
	name := UnknownCircuit
	if c, ok := t.Circuit(circuitID); ok {
		name = c.Name
	}
	return prefix + name
}

func bars(standings []stats.Standing, palette stats.Palette, name func(string) string) []Bar {
	return lo.Map(standings, func(s stats.Standing, _ int) Bar {
		return Bar{
			ID:       s.ID,
			Name:     name(s.ID),
			Points:   s.Points.InexactFloat64(),
			ColorKey: s.ConstructorID,
			Color:    palette.Resolve(s.ConstructorID, stats.DefaultBarColor),
		}
	})
}

// ConstructorChart ranks the constructors with the most points at a circuit.
func ConstructorChart(t *dataset.Tables, circuitID string, n int) BarChart {
	byCircuit := stats.ConstructorPointsByCircuit(t.Results, stats.BuildRaceToCircuitIndex(t.Races))
	bucket, ok := byCircuit[circuitID]
	if !ok {
		return BarChart{Title: NoCircuitData, Bars: []Bar{}}
	}
	top := stats.TopN(stats.ConstructorStandings(bucket), n)
	return BarChart{
		Title: chartTitle(t, "Top Constructors at ", circuitID),
		Bars:  bars(top, stats.ColorMap(t.Colors), t.ConstructorName),
	}
}

// DriverChart ranks the drivers with the most points at a circuit. Bars
// are colored by the constructor of each driver's last folded row.
func DriverChart(t *dataset.Tables, circuitID string, n int) BarChart {
	byCircuit := stats.DriverPointsByCircuit(t.Results, stats.BuildRaceToCircuitIndex(t.Races))
	bucket, ok := byCircuit[circuitID]
	if !ok {
		return BarChart{Title: NoCircuitData, Bars: []Bar{}}
	}
	top := stats.TopN(stats.DriverStandings(bucket), n)
	return BarChart{
		Title: chartTitle(t, "Top Drivers at ", circuitID),
		Bars:  bars(top, stats.ColorMap(t.Colors), t.DriverName),
	}
}

// LapChartFor lists a circuit's fastest lap per year within [from, to]
// and marks markYear, or from when markYear is zero.
func LapChartFor(t *dataset.Tables, circuitID string, from, to, markYear int) LapChart {
	byCircuit := stats.FastestLapByCircuitYear(t.Results,
		stats.BuildRaceToCircuitIndex(t.Races), stats.BuildRaceToYearIndex(t.Races))
	trend := stats.LapTrend(byCircuit[circuitID], from, to)

	chart := LapChart{Points: make([]LapPoint, 0, len(trend))}
	for _, p := range trend {
		chart.Points = append(chart.Points, LapPoint{
			Year:       p.Year,
			LapSeconds: p.Seconds,
			LapTime:    stats.FormatLapTime(p.Seconds),
			DriverID:   p.DriverID,
			DriverName: t.DriverName(p.DriverID),
		})
	}
	if markYear == 0 {
		markYear = from
	}
	if m, ok := lo.Find(chart.Points, func(p LapPoint) bool { return p.Year == markYear }); ok {
		chart.Marker = &m
	}
	return chart
}

// SeasonLines builds a cumulative points line per driver, in the order
// the drivers were given. Points and legend take the team color of the
// latest constructor seen, or DefaultLineColor.
func SeasonLines(t *dataset.Tables, season int, driverIDs []string) []Line {
	byDriver := stats.SeasonCumulativePoints(t.Races, t.Results, season, driverIDs)
	palette := stats.ColorMap(t.Colors)

	lines := make([]Line, 0, len(byDriver))
	for _, id := range lo.Uniq(driverIDs) {
		series, ok := byDriver[id]
		if !ok {
			continue
		}
		line := Line{
			DriverID:    id,
			DriverName:  t.DriverName(id),
			LegendColor: stats.DefaultLineColor,
			Points:      make([]LinePoint, 0, len(series)),
		}
		for _, p := range series {
			lp := LinePoint{Round: p.Round, Color: palette.Resolve(p.ConstructorID, stats.DefaultLineColor)}
			if p.Points.Valid {
				v := p.Points.Decimal.InexactFloat64()
				lp.Points = &v
			}
			line.Points = append(line.Points, lp)
			line.LegendColor = lp.Color
		}
		lines = append(lines, line)
	}
	return lines
}
