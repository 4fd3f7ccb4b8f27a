package db

import (
	"sort"
	"sync"
	"time"

	"majlis-rsvp/internal/models"
)

// Memory is a map-backed guest store for single-instance deployments and
// tests. It satisfies the same contract as DB and is selected at startup via
// STORAGE_DRIVER=memory.
type Memory struct {
	mu     sync.Mutex
	guests map[int64]models.Guest
	nextID int64
}

func NewMemory() *Memory {
	return &Memory{
		guests: make(map[int64]models.Guest),
		nextID: 1,
	}
}

func (m *Memory) CreateGuest(guest *models.Guest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	guest.ID = m.nextID
	m.nextID++
	if guest.CreatedAt.IsZero() {
		guest.CreatedAt = time.Now()
	}
	m.guests[guest.ID] = *guest
	return nil
}

func (m *Memory) GetGuestByID(id int64) (*models.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	guest, ok := m.guests[id]
	if !ok {
		return nil, ErrGuestNotFound
	}
	return &guest, nil
}

func (m *Memory) ListGuests() ([]models.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedLocked(func(models.Guest) bool { return true }), nil
}

func (m *Memory) DeleteGuest(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.guests, id)
	return nil
}

func (m *Memory) DeleteGuests(ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.guests, id)
	}
	return nil
}

func (m *Memory) ListEligible() ([]models.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedLocked(func(g models.Guest) bool {
		return g.Attendance == models.AttendanceAttending && !g.IsWinner
	}), nil
}

func (m *Memory) CountWinners() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, g := range m.guests {
		if g.IsWinner {
			count++
		}
	}
	return count, nil
}

func (m *Memory) MarkWinner(id int64, rank int) (*models.Guest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	guest, ok := m.guests[id]
	if !ok {
		return nil, ErrGuestNotFound
	}
	guest.IsWinner = true
	guest.WinRank = &rank
	m.guests[id] = guest
	return &guest, nil
}

func (m *Memory) ClearWinners() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, g := range m.guests {
		g.IsWinner = false
		g.WinRank = nil
		m.guests[id] = g
	}
	return nil
}

func (m *Memory) sortedLocked(keep func(models.Guest) bool) []models.Guest {
	guests := make([]models.Guest, 0, len(m.guests))
	for _, g := range m.guests {
		if keep(g) {
			guests = append(guests, g)
		}
	}
	sort.Slice(guests, func(i, j int) bool { return guests[i].ID < guests[j].ID })
	return guests
}
