package models

import "github.com/uptrace/bun"

// Driver represents a Formula 1 driver.
type Driver struct {
	bun.BaseModel `bun:"table:drivers,alias:d"`

	Seq         int64  `bun:"seq,pk,autoincrement" json:"-"`
	DriverID    string `bun:"driver_id,notnull,unique" json:"driverId"`
	Forename    string `bun:"forename" json:"forename"`
	Surname     string `bun:"surname" json:"surname"`
	Nationality string `bun:"nationality" json:"nationality"`
}
