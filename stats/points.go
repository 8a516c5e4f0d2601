package stats

import (
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/padraicbc/f1globe/models"
)

// DefaultTopN is the number of entries a ranked chart shows.
const DefaultTopN = 10

// DriverTally is a driver's points at one circuit together with the
// constructor of the last row folded in.
type DriverTally struct {
	Points        decimal.Decimal
	ConstructorID string
}

// Standing is one ranked entry, for either a constructor or a driver.
// For constructors ConstructorID equals ID.
type Standing struct {
	ID            string
	Points        decimal.Decimal
	ConstructorID string
}

// ParsePoints coerces a points cell to a number. Blank, non-numeric
// and negative values count as zero.
func ParsePoints(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// pointsByCircuit groups results by circuit and by key, folding each row
// into its bucket in input order. Rows whose race has no circuit are
// skipped; a blank key gets its own bucket so circuit totals are kept.
func pointsByCircuit[V any](
	results []models.Result,
	raceToCircuit map[string]string,
	key func(models.Result) string,
	fold func(acc V, r models.Result, pts decimal.Decimal) V,
) map[string]map[string]V {
	out := make(map[string]map[string]V)
	for _, r := range results {
		circuitID := raceToCircuit[r.RaceID]
		if circuitID == "" {
			continue
		}
		k := key(r)
		bucket, ok := out[circuitID]
		if !ok {
			bucket = make(map[string]V)
			out[circuitID] = bucket
		}
		bucket[k] = fold(bucket[k], r, ParsePoints(r.Points))
	}
	return out
}

// ConstructorPointsByCircuit sums points per circuit and constructor.
func ConstructorPointsByCircuit(results []models.Result, raceToCircuit map[string]string) map[string]map[string]decimal.Decimal {
	return pointsByCircuit(results, raceToCircuit,
		func(r models.Result) string { return r.ConstructorID },
		func(acc decimal.Decimal, _ models.Result, pts decimal.Decimal) decimal.Decimal {
			return acc.Add(pts)
		})
}

// DriverPointsByCircuit sums points per circuit and driver. The tally's
// constructor is overwritten by every contributing row, so it reflects
// the last row in results order, not the most recent race by date.
func DriverPointsByCircuit(results []models.Result, raceToCircuit map[string]string) map[string]map[string]DriverTally {
	return pointsByCircuit(results, raceToCircuit,
		func(r models.Result) string { return r.DriverID },
		func(acc DriverTally, r models.Result, pts decimal.Decimal) DriverTally {
			return DriverTally{Points: acc.Points.Add(pts), ConstructorID: r.ConstructorID}
		})
}

// ConstructorStandings flattens a constructor bucket for ranking.
func ConstructorStandings(bucket map[string]decimal.Decimal) []Standing {
	out := make([]Standing, 0, len(bucket))
	for id, pts := range bucket {
		out = append(out, Standing{ID: id, Points: pts, ConstructorID: id})
	}
	return out
}

// DriverStandings flattens a driver bucket for ranking.
func DriverStandings(bucket map[string]DriverTally) []Standing {
	out := make([]Standing, 0, len(bucket))
	for id, t := range bucket {
		out = append(out, Standing{ID: id, Points: t.Points, ConstructorID: t.ConstructorID})
	}
	return out
}

// TopN keeps the entries with positive points, sorted by points
// descending and then by id, and returns at most n of them.
// A non-positive n means DefaultTopN.
func TopN(standings []Standing, n int) []Standing {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := lo.Filter(standings, func(s Standing, _ int) bool {
		return s.Points.IsPositive()
	})
	slices.SortStableFunc(ranked, func(a, b Standing) int {
		if c := b.Points.Cmp(a.Points); c != 0 {
			return c
		}
		return compareIDs(a.ID, b.ID)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
