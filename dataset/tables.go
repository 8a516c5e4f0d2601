// Package dataset holds the Formula 1 reference tables the dashboard is
// built from, and loads them from CSV files or PostgreSQL.
//
// A Tables value is read-only once loaded; share it by pointer.
package dataset

import (
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/padraicbc/f1globe/models"
	"github.com/padraicbc/f1globe/stats"
)

// DefaultSearchLimit caps driver search results.
const DefaultSearchLimit = 20

// Tables is the full set of reference data. Slices keep source order,
// which is the iteration order the aggregations fold in.
type Tables struct {
	Races        []models.Race
	Circuits     []models.Circuit
	Drivers      []models.Driver
	Constructors []models.Constructor
	Colors       []models.TeamColor
	Results      []models.Result

	once         sync.Once
	circuits     map[string]models.Circuit
	drivers      map[string]models.Driver
	constructors map[string]models.Constructor
}

func (t *Tables) buildIndex() {
	t.circuits = lo.SliceToMap(t.Circuits, func(c models.Circuit) (string, models.Circuit) {
		return c.CircuitID, c
	})
	t.drivers = lo.SliceToMap(t.Drivers, func(d models.Driver) (string, models.Driver) {
		return d.DriverID, d
	})
	t.constructors = lo.SliceToMap(t.Constructors, func(c models.Constructor) (string, models.Constructor) {
		return c.ConstructorID, c
	})
}

// Counts returns the number of rows per table, for logging.
func (t *Tables) Counts() map[string]int {
	return map[string]int{
		"races":        len(t.Races),
		"circuits":     len(t.Circuits),
		"drivers":      len(t.Drivers),
		"constructors": len(t.Constructors),
		"colors":       len(t.Colors),
		"results":      len(t.Results),
	}
}

// Circuit looks a circuit up by id.
func (t *Tables) Circuit(id string) (models.Circuit, bool) {
	t.once.Do(t.buildIndex)
	c, ok := t.circuits[id]
	return c, ok
}

// Driver looks a driver up by id.
func (t *Tables) Driver(id string) (models.Driver, bool) {
	t.once.Do(t.buildIndex)
	d, ok := t.drivers[id]
	return d, ok
}

// DriverName is "forename surname", or the id for unknown drivers.
func (t *Tables) DriverName(id string) string {
	d, ok := t.Driver(id)
	if !ok {
		return id
	}
	name := strings.TrimSpace(d.Forename + " " + d.Surname)
	if name == "" {
		return id
	}
	return name
}

// ConstructorName is the team name, or the id for unknown constructors.
func (t *Tables) ConstructorName(id string) string {
	t.once.Do(t.buildIndex)
	if c, ok := t.constructors[id]; ok && c.Name != "" {
		return c.Name
	}
	return id
}

// Seasons lists the distinct race years, most recent first.
func (t *Tables) Seasons() []int {
	years := lo.Uniq(lo.Values(stats.BuildRaceToYearIndex(t.Races)))
	slices.SortFunc(years, func(a, b int) int { return b - a })
	return years
}

// RaceCountByCircuit counts races held at each circuit.
func (t *Tables) RaceCountByCircuit() map[string]int {
	return lo.CountValues(lo.Values(stats.BuildRaceToCircuitIndex(t.Races)))
}

// SearchDrivers matches q case-insensitively against the driver's full
// name and id. An empty query matches every driver. Results keep table
// order and are capped at limit (DefaultSearchLimit when limit <= 0).
func (t *Tables) SearchDrivers(q string, limit int) []models.Driver {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q = strings.ToLower(strings.TrimSpace(q))
	out := make([]models.Driver, 0, limit)
	for _, d := range t.Drivers {
		if len(out) == limit {
			break
		}
		full := strings.ToLower(d.Forename + " " + d.Surname)
		if q == "" || strings.Contains(full, q) || strings.ToLower(d.DriverID) == q {
			out = append(out, d)
		}
	}
	return out
}
