package models

import "github.com/uptrace/bun"

// Race is a single Grand Prix, held at one circuit in one season.
// Year and Round are kept as the raw strings read from the source tables.
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	Seq       int64  `bun:"seq,pk,autoincrement" json:"-"`
	RaceID    string `bun:"race_id,notnull,unique" json:"raceId"`
	Year      string `bun:"year,notnull" json:"year"`
	Round     string `bun:"round,notnull" json:"round"`
	CircuitID string `bun:"circuit_id,notnull" json:"circuitId"`
	Name      string `bun:"name" json:"name,omitempty"`
	Date      string `bun:"date" json:"date,omitempty"`
}
