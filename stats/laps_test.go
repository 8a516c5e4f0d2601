package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/f1globe/models"
)

func TestParseLapTime(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1:23.456", 83.456, true},
		{"0:59.999", 59.999, true},
		{"2:00.000", 120, true},
		{"83.456", 0, false},
		{"", 0, false},
		{`\N`, 0, false},
		{"x:23.4", 0, false},
		{"1:2:3", 0, false},
		{"0:00.000", 0, false},
		{"1:-3", 0, false},
		{"1:1e2", 0, false},
		{"1:2E1", 0, false},
		{"1:+23.4", 0, false},
		{"1:23.4.5", 0, false},
		{"1:.", 0, false},
		{"1: 23.456", 83.456, true},
		{" 1 :23.456", 83.456, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLapTime(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatLapTime(t *testing.T) {
	assert.Equal(t, "1:23.456", FormatLapTime(83.456))
	assert.Equal(t, "1:00.000", FormatLapTime(59.9996))
	assert.Equal(t, "0:07.100", FormatLapTime(7.1))
	assert.Equal(t, "N/A", FormatLapTime(0))
}

func TestFastestLapByCircuitYear(t *testing.T) {
	races := []models.Race{
		{RaceID: "1", Year: "2021", Round: "1", CircuitID: "C"},
		{RaceID: "2", Year: "2021", Round: "9", CircuitID: "C"},
		{RaceID: "3", Year: "2022", Round: "1", CircuitID: "C"},
		{RaceID: "4", Year: "", Round: "1", CircuitID: "C"},
	}
	results := []models.Result{
		{RaceID: "1", DriverID: "slow", FastestLapTime: "1:23.456"},
		{RaceID: "2", DriverID: "quick", FastestLapTime: "1:21.200"},
		{RaceID: "2", DriverID: "tied", FastestLapTime: "1:21.200"},
		{RaceID: "3", DriverID: "bad", FastestLapTime: "81.0"},
		{RaceID: "3", DriverID: "only", FastestLapTime: "1:30.000"},
		{RaceID: "4", DriverID: "noyear", FastestLapTime: "1:00.000"},
		{RaceID: "5", DriverID: "norace", FastestLapTime: "1:00.000"},
	}

	got := FastestLapByCircuitYear(results, BuildRaceToCircuitIndex(races), BuildRaceToYearIndex(races))

	require.Len(t, got, 1)
	require.Len(t, got["C"], 2)
	assert.Equal(t, FastestLap{Seconds: 81.2, DriverID: "quick"}, got["C"][2021])
	assert.Equal(t, FastestLap{Seconds: 90, DriverID: "only"}, got["C"][2022])
}

func TestLapTrend(t *testing.T) {
	byYear := map[int]FastestLap{
		2023: {Seconds: 80, DriverID: "c"},
		1999: {Seconds: 90, DriverID: "a"},
		2005: {Seconds: 85, DriverID: "b"},
	}

	all := LapTrend(byYear, 0, 0)
	require.Len(t, all, 3)
	assert.Equal(t, []int{1999, 2005, 2023}, []int{all[0].Year, all[1].Year, all[2].Year})

	windowed := LapTrend(byYear, 2000, 2010)
	require.Len(t, windowed, 1)
	assert.Equal(t, LapPoint{Year: 2005, Seconds: 85, DriverID: "b"}, windowed[0])

	assert.Empty(t, LapTrend(nil, 2000, 2024))
}
