package stats

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/padraicbc/f1globe/models"
)

// FastestLap is the quickest lap recorded at a circuit in one season.
type FastestLap struct {
	Seconds  float64
	DriverID string
}

// LapPoint is one point of the lap-time trend line.
type LapPoint struct {
	Year     int
	Seconds  float64
	DriverID string
}

// ParseLapTime converts an "M:SS.mmm" lap time to seconds. Anything
// without a colon, with non-numeric parts or with a non-positive total
// reports false and must be treated as no lap time.
func ParseLapTime(s string) (float64, bool) {
	minPart, secPart, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, false
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(minPart))
	if err != nil || minutes < 0 {
		return 0, false
	}
	secPart = strings.TrimSpace(secPart)
	if !plainDecimal(secPart) {
		return 0, false
	}
	secs, err := decimal.NewFromString(secPart)
	if err != nil {
		return 0, false
	}
	total := decimal.NewFromInt(int64(minutes) * 60).Add(secs)
	if !total.IsPositive() {
		return 0, false
	}
	return total.InexactFloat64(), true
}

// plainDecimal reports whether s is digits with at most one dot, so
// signs and exponents are refused.
func plainDecimal(s string) bool {
	digits, dots := 0, 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// FormatLapTime renders seconds as m:ss.mmm, or "N/A" for no time.
func FormatLapTime(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "N/A"
	}
	ms := int64(math.Round(seconds * 1000))
	return fmt.Sprintf("%d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// FastestLapByCircuitYear keeps, per circuit and season, the minimum
// fastest-lap time and the driver who set it. On equal times the first
// row in results order is kept.
func FastestLapByCircuitYear(results []models.Result, raceToCircuit map[string]string, raceToYear map[string]int) map[string]map[int]FastestLap {
	out := make(map[string]map[int]FastestLap)
	for _, r := range results {
		circuitID := raceToCircuit[r.RaceID]
		year := raceToYear[r.RaceID]
		if circuitID == "" || year == 0 {
			continue
		}
		secs, ok := ParseLapTime(r.FastestLapTime)
		if !ok {
			continue
		}
		byYear, ok := out[circuitID]
		if !ok {
			byYear = make(map[int]FastestLap)
			out[circuitID] = byYear
		}
		if cur, seen := byYear[year]; !seen || secs < cur.Seconds {
			byYear[year] = FastestLap{Seconds: secs, DriverID: r.DriverID}
		}
	}
	return out
}

// LapTrend orders a circuit's fastest laps by year. from and to bound
// the years inclusively; zero leaves that side open.
func LapTrend(byYear map[int]FastestLap, from, to int) []LapPoint {
	out := make([]LapPoint, 0, len(byYear))
	for year, lap := range byYear {
		if (from != 0 && year < from) || (to != 0 && year > to) {
			continue
		}
		out = append(out, LapPoint{Year: year, Seconds: lap.Seconds, DriverID: lap.DriverID})
	}
	slices.SortFunc(out, func(a, b LapPoint) int { return a.Year - b.Year })
	return out
}
