package dataset

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// BatchSize is the number of rows per multi-row INSERT.
const BatchSize = 500

// Load reads every table in insertion order.
func Load(ctx context.Context, db bun.IDB) (*Tables, error) {
	var t Tables
	steps := []struct {
		name  string
		model any
	}{
		{"circuits", &t.Circuits},
		{"constructors", &t.Constructors},
		{"races", &t.Races},
		{"results", &t.Results},
		{"constructor_colors", &t.Colors},
		{"drivers", &t.Drivers},
	}
	for _, s := range steps {
		if err := db.NewSelect().Model(s.model).OrderExpr("seq ASC").Scan(ctx); err != nil {
			return nil, fmt.Errorf("load %s: %w", s.name, err)
		}
	}
	return &t, nil
}

// Save writes every table, skipping rows that already exist so re-runs
// are idempotent. It returns the number of rows offered per table.
func Save(ctx context.Context, db bun.IDB, t *Tables) (map[string]int, error) {
	counts := make(map[string]int)
	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"circuits", func() (int, error) { return BulkInsert(ctx, db, t.Circuits) }},
		{"constructors", func() (int, error) { return BulkInsert(ctx, db, t.Constructors) }},
		{"drivers", func() (int, error) { return BulkInsert(ctx, db, t.Drivers) }},
		{"races", func() (int, error) { return BulkInsert(ctx, db, t.Races) }},
		{"results", func() (int, error) { return BulkInsert(ctx, db, t.Results) }},
		{"constructor_colors", func() (int, error) { return BulkInsert(ctx, db, t.Colors) }},
	}
	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			return counts, fmt.Errorf("save %s: %w", s.name, err)
		}
		counts[s.name] = n
	}
	return counts, nil
}

// BulkInsert inserts rows in batches of BatchSize with ON CONFLICT DO NOTHING.
func BulkInsert[T any](ctx context.Context, db bun.IDB, rows []T) (int, error) {
	total := 0
	for start := 0; start < len(rows); start += BatchSize {
		end := min(start+BatchSize, len(rows))
		batch := rows[start:end]
		if _, err := db.NewInsert().Model(&batch).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
			return total, err
		}
		total += len(batch)
	}
	return total, nil
}
