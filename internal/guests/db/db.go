package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"majlis-rsvp/internal/models"
)

// ErrGuestNotFound is returned by lookups when no guest matches.
var ErrGuestNotFound = errors.New("guest not found")

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateGuest(guest *models.Guest) error {
	_, err := d.Bun.NewInsert().Model(guest).Exec(context.Background())
	return err
}

func (d *DB) GetGuestByID(id int64) (*models.Guest, error) {
	var guest models.Guest
	err := d.Bun.NewSelect().
		Model(&guest).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGuestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// ListGuests returns every guest in creation order.
func (d *DB) ListGuests() ([]models.Guest, error) {
	var guests []models.Guest
	err := d.Bun.NewSelect().
		Model(&guests).
		Order("created_at ASC", "id ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return guests, nil
}

func (d *DB) DeleteGuest(id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Guest)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}

func (d *DB) DeleteGuests(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := d.Bun.NewDelete().
		Model((*models.Guest)(nil)).
		Where("id IN (?)", bun.In(ids)).
		Exec(context.Background())
	return err
}

// ListEligible returns guests that can still win: attending and not yet drawn.
func (d *DB) ListEligible() ([]models.Guest, error) {
	var guests []models.Guest
	err := d.Bun.NewSelect().
		Model(&guests).
		Where("attendance = ?", models.AttendanceAttending).
		Where("is_winner = ?", false).
		Order("id ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return guests, nil
}

func (d *DB) CountWinners() (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Guest)(nil)).
		Where("is_winner = ?", true).
		Count(context.Background())
}

// MarkWinner flags a guest as drawn and records the draw rank.
func (d *DB) MarkWinner(id int64, rank int) (*models.Guest, error) {
	_, err := d.Bun.NewUpdate().
		Model((*models.Guest)(nil)).
		Set("is_winner = ?", true).
		Set("win_rank = ?", rank).
		Where("id = ?", id).
		Exec(context.Background())
	if err != nil {
		return nil, err
	}
	return d.GetGuestByID(id)
}

// ClearWinners resets the draw state for every guest. Other fields are left
// untouched.
func (d *DB) ClearWinners() error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Guest)(nil)).
		Set("is_winner = ?", false).
		Set("win_rank = NULL").
		Where("1 = 1").
		Exec(context.Background())
	return err
}
