package models

import "github.com/uptrace/bun"

// Constructor is a team entity.
type Constructor struct {
	bun.BaseModel `bun:"table:constructors,alias:k"`

	Seq           int64  `bun:"seq,pk,autoincrement" json:"-"`
	ConstructorID string `bun:"constructor_id,notnull,unique" json:"constructorId"`
	Name          string `bun:"name,notnull" json:"name"`
	Nationality   string `bun:"nationality" json:"nationality,omitempty"`
}

// TeamColor is the display color for a constructor. It is a rendering hint
// only and says nothing about team membership.
type TeamColor struct {
	bun.BaseModel `bun:"table:constructor_colors,alias:tc"`

	Seq           int64  `bun:"seq,pk,autoincrement" json:"-"`
	ConstructorID string `bun:"constructor_id,notnull,unique" json:"constructorId"`
	Color         string `bun:"color,notnull" json:"color"`
}
