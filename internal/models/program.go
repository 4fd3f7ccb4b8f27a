package models

import "github.com/uptrace/bun"

// ProgramItem is one row of the event's run-of-show. Time is a display label
// ("11:00 PG"), not a structured timestamp.
type ProgramItem struct {
	bun.BaseModel `bun:"table:program_items"`

	ID        int64  `bun:"id,pk,autoincrement" json:"id"`
	Time      string `bun:"time,notnull" json:"time"`
	Activity  string `bun:"activity,notnull" json:"activity"`
	SortOrder int    `bun:"sort_order,notnull" json:"order"`
}

// ProgramItemInput is one submitted row; Order defaults to the array index
// when omitted.
type ProgramItemInput struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
	Order    *int   `json:"order"`
}
