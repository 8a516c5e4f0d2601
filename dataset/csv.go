package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/padraicbc/f1globe/models"
)

// File names of the dataset inside a CSV directory.
const (
	CircuitsFile     = "circuits.csv"
	ConstructorsFile = "constructors.csv"
	RacesFile        = "races.csv"
	ResultsFile      = "results.csv"
	ColorsFile       = "constructor_colors.csv"
	DriversFile      = "drivers.csv"
)

// row gives access to a CSV record by header name. Unknown columns read
// as "".
type row struct {
	header map[string]int
	rec    []string
	line   int
}

func (r row) get(col string) string {
	i, ok := r.header[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

// LoadCSVDir reads every table from dir. Values are kept as strings;
// only I/O and CSV syntax problems are reported as errors.
func LoadCSVDir(dir string) (*Tables, error) {
	var (
		t   Tables
		err error
	)
	if t.Circuits, err = readTable(dir, CircuitsFile, circuitFromRow); err != nil {
		return nil, err
	}
	if t.Constructors, err = readTable(dir, ConstructorsFile, constructorFromRow); err != nil {
		return nil, err
	}
	if t.Races, err = readTable(dir, RacesFile, raceFromRow); err != nil {
		return nil, err
	}
	if t.Results, err = readTable(dir, ResultsFile, resultFromRow); err != nil {
		return nil, err
	}
	if t.Colors, err = readTable(dir, ColorsFile, colorFromRow); err != nil {
		return nil, err
	}
	if t.Drivers, err = readTable(dir, DriversFile, driverFromRow); err != nil {
		return nil, err
	}
	return &t, nil
}

func readTable[T any](dir, name string, build func(row) T) ([]T, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	out, err := decodeCSV(f, build)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return out, nil
}

func decodeCSV[T any](in io.Reader, build func(row) T) ([]T, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	header := make(map[string]int, len(head))
	for i, h := range head {
		header[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	var out []T
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, build(row{header: header, rec: rec, line: line}))
	}
	return out, nil
}

func circuitFromRow(r row) models.Circuit {
	return models.Circuit{
		CircuitID:  r.get("circuitId"),
		CircuitRef: r.get("circuitRef"),
		Name:       r.get("name"),
		Location:   r.get("location"),
		Country:    r.get("country"),
		Lat:        r.get("lat"),
		Lng:        r.get("lng"),
	}
}

func constructorFromRow(r row) models.Constructor {
	return models.Constructor{
		ConstructorID: r.get("constructorId"),
		Name:          r.get("name"),
		Nationality:   r.get("nationality"),
	}
}

func raceFromRow(r row) models.Race {
	return models.Race{
		RaceID:    r.get("raceId"),
		Year:      r.get("year"),
		Round:     r.get("round"),
		CircuitID: r.get("circuitId"),
		Name:      r.get("name"),
		Date:      r.get("date"),
	}
}

func resultFromRow(r row) models.Result {
	id := r.get("resultId")
	if id == "" {
		id = "line-" + strconv.Itoa(r.line)
	}
	return models.Result{
		ResultID:       id,
		RaceID:         r.get("raceId"),
		DriverID:       r.get("driverId"),
		ConstructorID:  r.get("constructorId"),
		Points:         r.get("points"),
		FastestLapTime: r.get("fastestLapTime"),
	}
}

func colorFromRow(r row) models.TeamColor {
	return models.TeamColor{
		ConstructorID: r.get("constructorId"),
		Color:         r.get("color"),
	}
}

func driverFromRow(r row) models.Driver {
	return models.Driver{
		DriverID:    r.get("driverId"),
		Forename:    r.get("forename"),
		Surname:     r.get("surname"),
		Nationality: r.get("nationality"),
	}
}
