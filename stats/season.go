package stats

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/padraicbc/f1globe/models"
)

// SeasonPoint is a driver's running total after one round. Points is
// invalid for rounds the driver has no result in, which plotters skip.
// ConstructorID is the last constructor the driver raced for up to and
// including this round; it is empty before the driver's first result.
type SeasonPoint struct {
	Round         int
	Points        decimal.NullDecimal
	ConstructorID string
}

type raceDriver struct {
	raceID   string
	driverID string
}

type seasonRound struct {
	round  int
	raceID string
}

// SeasonCumulativePoints builds one running-total line per selected
// driver over the rounds of season. Races whose year or round does not
// parse are ignored. When a driver has several rows for one race the
// first in results order counts.
func SeasonCumulativePoints(races []models.Race, results []models.Result, season int, driverIDs []string) map[string][]SeasonPoint {
	out := make(map[string][]SeasonPoint, len(driverIDs))
	if len(driverIDs) == 0 {
		return out
	}

	var rounds []seasonRound
	for _, r := range races {
		year, ok := parseInt(r.Year)
		if !ok || year != season {
			continue
		}
		round, ok := parseInt(r.Round)
		if !ok {
			continue
		}
		rounds = append(rounds, seasonRound{round: round, raceID: r.RaceID})
	}
	slices.SortStableFunc(rounds, func(a, b seasonRound) int { return cmp.Compare(a.round, b.round) })

	selected := make(map[string]bool, len(driverIDs))
	for _, id := range driverIDs {
		selected[id] = true
	}
	first := make(map[raceDriver]models.Result)
	for _, r := range results {
		if !selected[r.DriverID] {
			continue
		}
		k := raceDriver{raceID: r.RaceID, driverID: r.DriverID}
		if _, seen := first[k]; !seen {
			first[k] = r
		}
	}

	for _, driverID := range driverIDs {
		if _, done := out[driverID]; done || driverID == "" {
			continue
		}
		total := decimal.Zero
		constructorID := ""
		line := make([]SeasonPoint, 0, len(rounds))
		for _, sr := range rounds {
			p := SeasonPoint{Round: sr.round}
			if res, ok := first[raceDriver{raceID: sr.raceID, driverID: driverID}]; ok {
				total = total.Add(ParsePoints(res.Points))
				constructorID = res.ConstructorID
				p.Points = decimal.NewNullDecimal(total)
			}
			p.ConstructorID = constructorID
			line = append(line, p)
		}
		out[driverID] = line
	}
	return out
}
