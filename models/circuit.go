package models

import "github.com/uptrace/bun"

// Circuit is a race venue. Lat/Lng are decimal degrees as text.
type Circuit struct {
	bun.BaseModel `bun:"table:circuits,alias:c"`

	Seq        int64  `bun:"seq,pk,autoincrement" json:"-"`
	CircuitID  string `bun:"circuit_id,notnull,unique" json:"circuitId"`
	CircuitRef string `bun:"circuit_ref" json:"circuitRef,omitempty"`
	Name       string `bun:"name,notnull" json:"name"`
	Location   string `bun:"location" json:"location"`
	Country    string `bun:"country" json:"country"`
	Lat        string `bun:"lat" json:"lat"`
	Lng        string `bun:"lng" json:"lng"`
}
