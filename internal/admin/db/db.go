package db

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/uptrace/bun"

	"majlis-rsvp/internal/models"
)

// ErrAdminNotFound is returned by lookups when no account matches. Absence is
// an expected outcome, not a fault.
var ErrAdminNotFound = errors.New("admin not found")

type DB struct {
	Bun *bun.DB
}

func (d *DB) GetAdminByUsername(username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := d.Bun.NewSelect().
		Model(&admin).
		Where("username = ?", username).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (d *DB) GetAdminByID(id int64) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := d.Bun.NewSelect().
		Model(&admin).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (d *DB) ListAdmins() ([]models.AdminUser, error) {
	var admins []models.AdminUser
	err := d.Bun.NewSelect().
		Model(&admins).
		Order("id ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (d *DB) CreateAdmin(admin *models.AdminUser) error {
	_, err := d.Bun.NewInsert().Model(admin).Exec(context.Background())
	return err
}

func (d *DB) DeleteAdmin(id int64) error {
	_, err := d.Bun.NewDelete().
		Model((*models.AdminUser)(nil)).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}

func (d *DB) UpdateAdminPassword(id int64, hashed string) error {
	res, err := d.Bun.NewUpdate().
		Model((*models.AdminUser)(nil)).
		Set("password = ?", hashed).
		Where("id = ?", id).
		Exec(context.Background())
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrAdminNotFound
	}
	return nil
}

// Memory is the map-backed admin store.
type Memory struct {
	mu     sync.Mutex
	admins map[int64]models.AdminUser
	nextID int64
}

func NewMemory() *Memory {
	return &Memory{
		admins: make(map[int64]models.AdminUser),
		nextID: 1,
	}
}

func (m *Memory) GetAdminByUsername(username string) (*models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, admin := range m.admins {
		if admin.Username == username {
			copied := admin
			return &copied, nil
		}
	}
	return nil, ErrAdminNotFound
}

func (m *Memory) GetAdminByID(id int64) (*models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	admin, ok := m.admins[id]
	if !ok {
		return nil, ErrAdminNotFound
	}
	copied := admin
	return &copied, nil
}

func (m *Memory) ListAdmins() ([]models.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	admins := make([]models.AdminUser, 0, len(m.admins))
	for _, admin := range m.admins {
		admins = append(admins, admin)
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].ID < admins[j].ID })
	return admins, nil
}

func (m *Memory) CreateAdmin(admin *models.AdminUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	admin.ID = m.nextID
	m.nextID++
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now()
	}
	m.admins[admin.ID] = *admin
	return nil
}

func (m *Memory) DeleteAdmin(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.admins, id)
	return nil
}

func (m *Memory) UpdateAdminPassword(id int64, hashed string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	admin, ok := m.admins[id]
	if !ok {
		return ErrAdminNotFound
	}
	admin.Password = hashed
	m.admins[id] = admin
	return nil
}
