package models

import "github.com/uptrace/bun"

// Result is one driver's classification in one race.
// Points and FastestLapTime are stored verbatim; the engine coerces them.
type Result struct {
	bun.BaseModel `bun:"table:results,alias:r"`

	Seq            int64  `bun:"seq,pk,autoincrement" json:"-"`
	ResultID       string `bun:"result_id,notnull,unique" json:"resultId"`
	RaceID         string `bun:"race_id,notnull" json:"raceId"`
	DriverID       string `bun:"driver_id,notnull" json:"driverId"`
	ConstructorID  string `bun:"constructor_id,notnull" json:"constructorId"`
	Points         string `bun:"points" json:"points"`
	FastestLapTime string `bun:"fastest_lap_time" json:"fastestLapTime,omitempty"`
}
