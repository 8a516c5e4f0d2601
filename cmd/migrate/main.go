// cmd/migrate/main.go
// Copies the Ergast f1db MySQL database into the local PostgreSQL database.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/f1db" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
//
// Team colors are not part of f1db; load them with cmd/import.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/f1globe/config"
	bundb "github.com/padraicbc/f1globe/db"
	"github.com/padraicbc/f1globe/dataset"
	applog "github.com/padraicbc/f1globe/logger"
	"github.com/padraicbc/f1globe/models"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadTool()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.MySQLDSN == "" {
		logger.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/f1db")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("open mysql", zap.Error(err))
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	myDB.SetConnMaxLifetime(5 * time.Minute)
	if err := myDB.PingContext(ctx); err != nil {
		logger.Fatal("ping mysql", zap.Error(err))
	}
	logger.Info("connected to MySQL")

	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	logger.Info("connected to PostgreSQL")

	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		logger.Fatal("create tables", zap.Error(err))
	}

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"circuits", func() (int, error) { return migrateCircuits(ctx, myDB, pgDB) }},
		{"constructors", func() (int, error) { return migrateConstructors(ctx, myDB, pgDB) }},
		{"drivers", func() (int, error) { return migrateDrivers(ctx, myDB, pgDB) }},
		{"races", func() (int, error) { return migrateRaces(ctx, myDB, pgDB) }},
		{"results", func() (int, error) { return migrateResults(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		start := time.Now()
		n, err := s.fn()
		if err != nil {
			logger.Fatal("migrate failed", zap.String("table", s.name), zap.Error(err))
		}
		logger.Info("table migrated",
			zap.String("table", s.name),
			zap.Int("rows", n),
			zap.Duration("took", time.Since(start)),
		)
	}

	logger.Info("migration complete")
}

// copyRows streams query results into PostgreSQL in batches of
// dataset.BatchSize. scan converts the current row.
func copyRows[T any](ctx context.Context, myDB *sql.DB, pgDB bun.IDB, query string, scan func(*sql.Rows) (T, error)) (int, error) {
	rows, err := myDB.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	batch := make([]T, 0, dataset.BatchSize)
	total := 0
	flush := func() error {
		n, err := dataset.BulkInsert(ctx, pgDB, batch)
		total += n
		batch = batch[:0]
		return err
	}

	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= dataset.BatchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

// text maps SQL NULL to "", the same as an absent CSV value.
func text(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

func migrateCircuits(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		`SELECT circuitId, circuitRef, name, location, country, lat, lng
		 FROM circuits ORDER BY circuitId`,
		func(rows *sql.Rows) (models.Circuit, error) {
			var (
				r                 models.Circuit
				location, country sql.NullString
				lat, lng          sql.NullString
			)
			err := rows.Scan(&r.CircuitID, &r.CircuitRef, &r.Name, &location, &country, &lat, &lng)
			r.Location, r.Country, r.Lat, r.Lng = text(location), text(country), text(lat), text(lng)
			return r, err
		})
}

func migrateConstructors(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		`SELECT constructorId, name, nationality FROM constructors ORDER BY constructorId`,
		func(rows *sql.Rows) (models.Constructor, error) {
			var (
				r           models.Constructor
				nationality sql.NullString
			)
			err := rows.Scan(&r.ConstructorID, &r.Name, &nationality)
			r.Nationality = text(nationality)
			return r, err
		})
}

func migrateDrivers(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		`SELECT driverId, forename, surname, nationality FROM drivers ORDER BY driverId`,
		func(rows *sql.Rows) (models.Driver, error) {
			var (
				r           models.Driver
				nationality sql.NullString
			)
			err := rows.Scan(&r.DriverID, &r.Forename, &r.Surname, &nationality)
			r.Nationality = text(nationality)
			return r, err
		})
}

func migrateRaces(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		`SELECT raceId, year, round, circuitId, name, CAST(date AS CHAR)
		 FROM races ORDER BY raceId`,
		func(rows *sql.Rows) (models.Race, error) {
			var (
				r    models.Race
				date sql.NullString
			)
			err := rows.Scan(&r.RaceID, &r.Year, &r.Round, &r.CircuitID, &r.Name, &date)
			r.Date = text(date)
			return r, err
		})
}

func migrateResults(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		`SELECT resultId, raceId, driverId, constructorId, points, fastestLapTime
		 FROM results ORDER BY resultId`,
		func(rows *sql.Rows) (models.Result, error) {
			var (
				r       models.Result
				points  sql.NullString
				fastest sql.NullString
			)
			err := rows.Scan(&r.ResultID, &r.RaceID, &r.DriverID, &r.ConstructorID, &points, &fastest)
			if err != nil {
				return r, fmt.Errorf("scan result: %w", err)
			}
			r.Points, r.FastestLapTime = text(points), text(fastest)
			return r, nil
		})
}
