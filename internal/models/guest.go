package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance values accepted on an RSVP submission.
const (
	AttendanceAttending    = "attending"
	AttendanceMaybe        = "maybe"
	AttendanceNotAttending = "not_attending"
)

type Guest struct {
	bun.BaseModel `bun:"table:guests"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	PhoneNumber   string    `bun:"phone_number,notnull" json:"phoneNumber"`
	Attendance    string    `bun:"attendance,notnull" json:"attendance"`
	TotalPax      int       `bun:"total_pax" json:"totalPax"`
	Wishes        string    `bun:"wishes,nullzero" json:"wishes"`
	LuckyDrawCode string    `bun:"lucky_draw_code,notnull,unique" json:"luckyDrawCode"`
	IsWinner      bool      `bun:"is_winner,notnull,default:false" json:"isWinner"`
	WinRank       *int      `bun:"win_rank,nullzero" json:"winRank"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// GuestInput is the public RSVP submission payload. The draw code and winner
// state are never client-supplied.
type GuestInput struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Attendance  string `json:"attendance"`
	TotalPax    int    `json:"totalPax"`
	Wishes      string `json:"wishes"`
}

func ValidAttendance(s string) bool {
	switch s {
	case AttendanceAttending, AttendanceMaybe, AttendanceNotAttending:
		return true
	}
	return false
}
