package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/f1globe/models"
)

var fixture = map[string]string{
	CircuitsFile: "\ufeffcircuitId,circuitRef,name,location,country,lat,lng,alt,url\n" +
		"1,albert_park,Albert Park Grand Prix Circuit,Melbourne,Australia,-37.8497,144.968,10,http://x\n" +
		"14,monza,Autodromo Nazionale di Monza,Monza,Italy,45.6156,9.28111,162,http://y\n",
	ConstructorsFile: "constructorId,constructorRef,name,nationality,url\n" +
		"1,mclaren,McLaren,British,http://a\n" +
		"6,ferrari,Ferrari,Italian,http://b\n",
	RacesFile: "raceId,year,round,circuitId,name,date\n" +
		"1,2009,1,1,Australian Grand Prix,2009-03-29\n" +
		"13,2009,13,14,Italian Grand Prix,2009-09-13\n",
	ResultsFile: "resultId,raceId,driverId,constructorId,number,points,fastestLapTime\n" +
		"1,1,18,23,22,10,1:27.706\n" +
		"2,1,22,23,23,8,\\N\n" +
		"3,13,8,6,4,\"6\",1:24.739\n",
	ColorsFile: "constructorId,color\n" +
		"6,#DC0000\n",
	DriversFile: "driverId,driverRef,number,code,forename,surname,dob,nationality,url\n" +
		"8,raikkonen,7,RAI,Kimi,Räikkönen,1979-10-17,Finnish,http://k\n" +
		"18,button,22,BUT,Jenson,Button,1980-01-19,British,http://j\n",
}

func writeFixture(t *testing.T, skip string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range fixture {
		if name == skip {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadCSVDir(t *testing.T) {
	tables, err := LoadCSVDir(writeFixture(t, ""))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"races": 2, "circuits": 2, "drivers": 2, "constructors": 2, "colors": 1, "results": 3,
	}, tables.Counts())

	assert.Equal(t, models.Circuit{
		CircuitID:  "1",
		CircuitRef: "albert_park",
		Name:       "Albert Park Grand Prix Circuit",
		Location:   "Melbourne",
		Country:    "Australia",
		Lat:        "-37.8497",
		Lng:        "144.968",
	}, tables.Circuits[0])
	assert.Equal(t, models.Result{
		ResultID: "2", RaceID: "1", DriverID: "22", ConstructorID: "23", Points: "8", FastestLapTime: `\N`,
	}, tables.Results[1])
	assert.Equal(t, "6", tables.Results[2].Points)
	assert.Equal(t, "Räikkönen", tables.Drivers[0].Surname)
}

func TestLoadCSVDirMissingFile(t *testing.T) {
	_, err := LoadCSVDir(writeFixture(t, ResultsFile))

	require.Error(t, err)
	assert.Contains(t, err.Error(), ResultsFile)
}

func TestDecodeCSVMissingColumns(t *testing.T) {
	in := "raceId,driverId\n7,3\n"

	got, err := decodeCSV(strings.NewReader(in), resultFromRow)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "line-2", got[0].ResultID)
	assert.Equal(t, "7", got[0].RaceID)
	assert.Empty(t, got[0].Points)
}

func TestDecodeCSVEmpty(t *testing.T) {
	got, err := decodeCSV(strings.NewReader(""), raceFromRow)

	require.NoError(t, err)
	assert.Empty(t, got)
}
