package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"majlis-rsvp/internal/guests/db"
	"majlis-rsvp/internal/models"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	if err := bunDB.ResetModel(context.Background(), (*models.Guest)(nil)); err != nil {
		t.Fatalf("Failed to create guests table: %v", err)
	}

	t.Cleanup(func() { bunDB.Close() })
	return &db.DB{Bun: bunDB}
}

func sampleGuest(name, code string, attendance string) *models.Guest {
	return &models.Guest{
		Name:          name,
		PhoneNumber:   "0123456789",
		Attendance:    attendance,
		TotalPax:      2,
		LuckyDrawCode: code,
		CreatedAt:     time.Now(),
	}
}

func TestCreateAndGetGuest(t *testing.T) {
	store := setupTestDB(t)

	guest := sampleGuest("Ali", "ABC123", models.AttendanceAttending)
	if err := store.CreateGuest(guest); err != nil {
		t.Fatalf("Failed to create guest: %v", err)
	}
	if guest.ID == 0 {
		t.Fatal("Expected autoincremented id, got 0")
	}

	got, err := store.GetGuestByID(guest.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve guest: %v", err)
	}
	if got.Name != "Ali" {
		t.Errorf("Expected name Ali, got %s", got.Name)
	}
	if got.LuckyDrawCode != "ABC123" {
		t.Errorf("Expected code ABC123, got %s", got.LuckyDrawCode)
	}
	if got.IsWinner {
		t.Error("New guest should not be a winner")
	}
	if got.WinRank != nil {
		t.Errorf("New guest should have no win rank, got %d", *got.WinRank)
	}
}

func TestGetGuestNotFound(t *testing.T) {
	store := setupTestDB(t)

	_, err := store.GetGuestByID(999)
	if err != db.ErrGuestNotFound {
		t.Errorf("Expected ErrGuestNotFound, got %v", err)
	}
}

func TestListGuestsOrder(t *testing.T) {
	store := setupTestDB(t)

	for i, name := range []string{"Ali", "Siti", "Farid"} {
		g := sampleGuest(name, "CODE0"+string(rune('A'+i)), models.AttendanceAttending)
		if err := store.CreateGuest(g); err != nil {
			t.Fatalf("Failed to create guest %s: %v", name, err)
		}
	}

	guests, err := store.ListGuests()
	if err != nil {
		t.Fatalf("Failed to list guests: %v", err)
	}
	if len(guests) != 3 {
		t.Fatalf("Expected 3 guests, got %d", len(guests))
	}
	if guests[0].Name != "Ali" || guests[1].Name != "Siti" || guests[2].Name != "Farid" {
		t.Errorf("Guests out of creation order: %s, %s, %s", guests[0].Name, guests[1].Name, guests[2].Name)
	}
}

func TestDeleteGuests(t *testing.T) {
	store := setupTestDB(t)

	var ids []int64
	for i, name := range []string{"Ali", "Siti", "Farid"} {
		g := sampleGuest(name, "DEL00"+string(rune('A'+i)), models.AttendanceAttending)
		if err := store.CreateGuest(g); err != nil {
			t.Fatalf("Failed to create guest: %v", err)
		}
		ids = append(ids, g.ID)
	}

	if err := store.DeleteGuests(ids[:2]); err != nil {
		t.Fatalf("Failed to bulk delete: %v", err)
	}

	guests, err := store.ListGuests()
	if err != nil {
		t.Fatalf("Failed to list guests: %v", err)
	}
	if len(guests) != 1 {
		t.Fatalf("Expected 1 remaining guest, got %d", len(guests))
	}
	if guests[0].Name != "Farid" {
		t.Errorf("Expected Farid to remain, got %s", guests[0].Name)
	}

	// Deleting an unknown id is a no-op.
	if err := store.DeleteGuest(999); err != nil {
		t.Errorf("Delete of unknown id should not fail: %v", err)
	}
}

func TestEligibilityAndWinners(t *testing.T) {
	store := setupTestDB(t)

	attending := sampleGuest("Ali", "WIN001", models.AttendanceAttending)
	maybe := sampleGuest("Siti", "WIN002", models.AttendanceMaybe)
	declined := sampleGuest("Farid", "WIN003", models.AttendanceNotAttending)
	for _, g := range []*models.Guest{attending, maybe, declined} {
		if err := store.CreateGuest(g); err != nil {
			t.Fatalf("Failed to create guest: %v", err)
		}
	}

	eligible, err := store.ListEligible()
	if err != nil {
		t.Fatalf("Failed to list eligible guests: %v", err)
	}
	if len(eligible) != 1 || eligible[0].ID != attending.ID {
		t.Fatalf("Expected only the attending guest to be eligible, got %d entries", len(eligible))
	}

	winner, err := store.MarkWinner(attending.ID, 1)
	if err != nil {
		t.Fatalf("Failed to mark winner: %v", err)
	}
	if !winner.IsWinner {
		t.Error("Marked guest should be a winner")
	}
	if winner.WinRank == nil || *winner.WinRank != 1 {
		t.Error("Expected win rank 1")
	}

	count, err := store.CountWinners()
	if err != nil {
		t.Fatalf("Failed to count winners: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 winner, got %d", count)
	}

	// A drawn guest drops out of the eligible set.
	eligible, err = store.ListEligible()
	if err != nil {
		t.Fatalf("Failed to list eligible guests: %v", err)
	}
	if len(eligible) != 0 {
		t.Errorf("Expected no eligible guests after the draw, got %d", len(eligible))
	}
}

func TestClearWinners(t *testing.T) {
	store := setupTestDB(t)

	first := sampleGuest("Ali", "RST001", models.AttendanceAttending)
	second := sampleGuest("Siti", "RST002", models.AttendanceAttending)
	for _, g := range []*models.Guest{first, second} {
		if err := store.CreateGuest(g); err != nil {
			t.Fatalf("Failed to create guest: %v", err)
		}
	}
	if _, err := store.MarkWinner(first.ID, 1); err != nil {
		t.Fatalf("Failed to mark winner: %v", err)
	}
	if _, err := store.MarkWinner(second.ID, 2); err != nil {
		t.Fatalf("Failed to mark winner: %v", err)
	}

	if err := store.ClearWinners(); err != nil {
		t.Fatalf("Failed to clear winners: %v", err)
	}

	guests, err := store.ListGuests()
	if err != nil {
		t.Fatalf("Failed to list guests: %v", err)
	}
	for _, g := range guests {
		if g.IsWinner || g.WinRank != nil {
			t.Errorf("Guest %s still carries winner state after reset", g.Name)
		}
		if g.Name == "" || g.LuckyDrawCode == "" {
			t.Errorf("Reset must not touch guest fields other than winner state")
		}
	}
}
