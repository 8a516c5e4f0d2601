// cmd/import/main.go
// Loads the F1 CSV dataset into PostgreSQL.
//
// Usage:
//
//	go run ./cmd/import -dir ./data
//
// The directory must hold circuits.csv, constructors.csv, drivers.csv,
// races.csv, results.csv and constructor_colors.csv. Re-running skips rows
// that are already stored.
package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"github.com/padraicbc/f1globe/config"
	bundb "github.com/padraicbc/f1globe/db"
	"github.com/padraicbc/f1globe/dataset"
	applog "github.com/padraicbc/f1globe/logger"
)

func main() {
	cfg := config.LoadTool()
	dir := flag.String("dir", cfg.DataDir, "directory holding the CSV files (defaults to DATA_DIR)")
	flag.Parse()

	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if *dir == "" {
		logger.Fatal("-dir or DATA_DIR is required")
	}

	tables, err := dataset.LoadCSVDir(*dir)
	if err != nil {
		logger.Fatal("read csv", zap.String("dir", *dir), zap.Error(err))
	}
	logger.Info("csv loaded", applog.TableCounts(tables.Counts())...)

	ctx := context.Background()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		logger.Fatal("create tables", zap.Error(err))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		logger.Fatal("begin", zap.Error(err))
	}
	counts, err := dataset.Save(ctx, tx, tables)
	if err != nil {
		_ = tx.Rollback()
		logger.Fatal("save", zap.Error(err))
	}
	if err := tx.Commit(); err != nil {
		logger.Fatal("commit", zap.Error(err))
	}

	logger.Info("import complete", applog.TableCounts(counts)...)
}
