package db

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/uptrace/bun"

	"majlis-rsvp/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// GetSettings returns the authoritative settings row, creating it with
// defaults when none exists yet.
func (d *DB) GetSettings() (*models.Settings, error) {
	var settings models.Settings
	err := d.Bun.NewSelect().
		Model(&settings).
		Order("id ASC").
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		created := models.DefaultSettings()
		if _, err := d.Bun.NewInsert().Model(&created).Exec(context.Background()); err != nil {
			return nil, err
		}
		return &created, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings merges the provided fields onto the current row and persists
// it. Last write wins; there is no concurrency token.
func (d *DB) UpdateSettings(update models.SettingsUpdate) (*models.Settings, error) {
	current, err := d.GetSettings()
	if err != nil {
		return nil, err
	}

	update.Apply(current)
	_, err = d.Bun.NewUpdate().
		Model(current).
		WherePK().
		Exec(context.Background())
	if err != nil {
		return nil, err
	}
	return current, nil
}

// Memory is the map-backed settings store.
type Memory struct {
	mu       sync.Mutex
	settings *models.Settings
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) GetSettings() (*models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *m.getLocked()
	return &copied, nil
}

func (m *Memory) UpdateSettings(update models.SettingsUpdate) (*models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current := m.getLocked()
	update.Apply(current)
	copied := *current
	return &copied, nil
}

func (m *Memory) getLocked() *models.Settings {
	if m.settings == nil {
		created := models.DefaultSettings()
		created.ID = 1
		m.settings = &created
	}
	return m.settings
}
