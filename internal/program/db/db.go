package db

import (
	"context"
	"sort"
	"sync"

	"github.com/uptrace/bun"

	"majlis-rsvp/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ListProgramItems returns the run-of-show sorted by its explicit order key,
// ties broken by insertion order.
func (d *DB) ListProgramItems() ([]models.ProgramItem, error) {
	var items []models.ProgramItem
	err := d.Bun.NewSelect().
		Model(&items).
		Order("sort_order ASC", "id ASC").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ReplaceProgramItems swaps the entire schedule in one transaction: existing
// rows are removed and the submitted list reinserted with fresh identities.
// Order defaults to the array index when not provided.
func (d *DB) ReplaceProgramItems(inputs []models.ProgramItemInput) ([]models.ProgramItem, error) {
	items := buildItems(inputs)

	err := d.Bun.RunInTx(context.Background(), nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*models.ProgramItem)(nil)).
			Where("1 = 1").
			Exec(ctx); err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&items).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Memory is the map-backed program store.
type Memory struct {
	mu     sync.Mutex
	items  map[int64]models.ProgramItem
	nextID int64
}

func NewMemory() *Memory {
	return &Memory{
		items:  make(map[int64]models.ProgramItem),
		nextID: 1,
	}
}

func (m *Memory) ListProgramItems() ([]models.ProgramItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]models.ProgramItem, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (m *Memory) ReplaceProgramItems(inputs []models.ProgramItemInput) ([]models.ProgramItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[int64]models.ProgramItem)
	items := buildItems(inputs)
	for i := range items {
		items[i].ID = m.nextID
		m.nextID++
		m.items[items[i].ID] = items[i]
	}
	return items, nil
}

func buildItems(inputs []models.ProgramItemInput) []models.ProgramItem {
	items := make([]models.ProgramItem, 0, len(inputs))
	for i, input := range inputs {
		order := i
		if input.Order != nil {
			order = *input.Order
		}
		items = append(items, models.ProgramItem{
			Time:      input.Time,
			Activity:  input.Activity,
			SortOrder: order,
		})
	}
	return items
}
