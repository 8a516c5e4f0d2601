// Package stats turns flat race result rows into the per-circuit and
// per-season summaries the dashboard charts plot.
//
// Every function here is a pure function of its arguments: nothing is
// cached, inputs are never modified and no function returns an error.
// Rows that cannot be resolved or parsed are left out of the aggregate.
package stats

import (
	"strconv"
	"strings"

	"github.com/padraicbc/f1globe/models"
)

// BuildRaceToCircuitIndex maps every race to the circuit it was held at.
func BuildRaceToCircuitIndex(races []models.Race) map[string]string {
	idx := make(map[string]string, len(races))
	for _, r := range races {
		if r.RaceID == "" || r.CircuitID == "" {
			continue
		}
		idx[r.RaceID] = r.CircuitID
	}
	return idx
}

// BuildRaceToYearIndex maps every race to its season. Races whose year
// does not parse as a positive integer are left out.
func BuildRaceToYearIndex(races []models.Race) map[string]int {
	idx := make(map[string]int, len(races))
	for _, r := range races {
		if y, ok := parseInt(r.Year); ok && y > 0 && r.RaceID != "" {
			idx[r.RaceID] = y
		}
	}
	return idx
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// compareIDs orders identifiers numerically when both are integers
// (source ids are numeric strings) and lexically otherwise.
func compareIDs(a, b string) int {
	na, errA := strconv.ParseInt(a, 10, 64)
	nb, errB := strconv.ParseInt(b, 10, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
