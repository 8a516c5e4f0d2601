package dashboard

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/padraicbc/f1globe/dataset"
)

// Selection is what the viewer has picked. Zero values mean "nothing
// selected" and derive empty charts.
type Selection struct {
	CircuitID string   `json:"circuitId" validate:"max=64"`
	Season    int      `json:"season" validate:"omitempty,min=1950,max=2100"`
	DriverIDs []string `json:"driverIds" validate:"max=64,dive,max=64"`
	LapYear   int      `json:"lapYear" validate:"omitempty,min=1950,max=2100"`
}

// State is an immutable snapshot of a selection and the view derived
// from it. Transitions return a new State and leave the receiver as is.
type State struct {
	tables *dataset.Tables
	opts   Options
	sel    Selection
	view   View
}

// New returns the state with nothing selected.
func New(t *dataset.Tables, opts Options) State {
	return State{tables: t, opts: opts}.Apply(Selection{})
}

// Selection returns a copy of the current selection.
func (s State) Selection() Selection {
	sel := s.sel
	sel.DriverIDs = slices.Clone(s.sel.DriverIDs)
	return sel
}

// View returns the view derived from the current selection.
func (s State) View() View { return s.view }

// Apply replaces the whole selection.
func (s State) Apply(sel Selection) State {
	sel = s.normalize(sel)
	return State{
		tables: s.tables,
		opts:   s.opts,
		sel:    sel,
		view:   Build(s.tables, sel, s.opts),
	}
}

// WithCircuit selects a circuit.
func (s State) WithCircuit(circuitID string) State {
	sel := s.Selection()
	sel.CircuitID = circuitID
	return s.Apply(sel)
}

// WithSeason selects the season shown by the points-progression chart.
func (s State) WithSeason(season int) State {
	sel := s.Selection()
	sel.Season = season
	return s.Apply(sel)
}

// WithDrivers replaces the selected drivers.
func (s State) WithDrivers(driverIDs []string) State {
	sel := s.Selection()
	sel.DriverIDs = driverIDs
	return s.Apply(sel)
}

// WithLapYear moves the lap chart marker.
func (s State) WithLapYear(year int) State {
	sel := s.Selection()
	sel.LapYear = year
	return s.Apply(sel)
}

func (s State) normalize(sel Selection) Selection {
	sel.CircuitID = strings.TrimSpace(sel.CircuitID)
	sel.DriverIDs = NormalizeDriverIDs(sel.DriverIDs, s.opts.MaxDrivers)
	return sel
}

// NormalizeDriverIDs trims ids, drops blanks and duplicates, and keeps
// at most limit of the earliest picks (no cap when limit <= 0). An empty
// result is nil.
func NormalizeDriverIDs(driverIDs []string, limit int) []string {
	ids := lo.Uniq(lo.Compact(lo.Map(driverIDs, func(id string, _ int) string {
		return strings.TrimSpace(id)
	})))
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}
