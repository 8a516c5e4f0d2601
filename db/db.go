package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/f1globe/config"
	"github.com/padraicbc/f1globe/models"
)

// Setup opens a PostgreSQL connection using the provided config.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(context.Background()); err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	return db
}

// Models lists every table model in dependency order.
func Models() []interface{} {
	return []interface{}{
		(*models.User)(nil),
		(*models.Circuit)(nil),
		(*models.Constructor)(nil),
		(*models.Driver)(nil),
		(*models.Race)(nil),
		(*models.Result)(nil),
		(*models.TeamColor)(nil),
	}
}

// CreateTables creates all tables and indexes if they do not exist yet.
func CreateTables(ctx context.Context, db bun.IDB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}

	indexes := []struct {
		model   interface{}
		name    string
		columns []string
	}{
		{(*models.Race)(nil), "races_circuit_idx", []string{"circuit_id"}},
		{(*models.Race)(nil), "races_year_round_idx", []string{"year", "round"}},
		{(*models.Result)(nil), "results_race_driver_idx", []string{"race_id", "driver_id"}},
	}
	for _, ix := range indexes {
		_, err := db.NewCreateIndex().Model(ix.model).Index(ix.name).Column(ix.columns...).IfNotExists().Exec(ctx)
		if err != nil {
			return fmt.Errorf("creating index %s: %w", ix.name, err)
		}
	}

	return nil
}
