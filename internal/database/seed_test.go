package database_test

import (
	"os"
	"testing"

	"majlis-rsvp/internal/database"
	"majlis-rsvp/internal/guests/db"
	guests "majlis-rsvp/internal/guests/service"
	"majlis-rsvp/internal/logger"
	"majlis-rsvp/internal/models"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log := logger.NewLogger()
	t.Cleanup(func() {
		log.Close()
		os.RemoveAll("logs")
	})
	return log
}

func TestSeedGuestsPopulatesEmptyStore(t *testing.T) {
	service := guests.NewGuestService(db.NewMemory())

	if err := database.SeedGuests(service, testLogger(t)); err != nil {
		t.Fatalf("Failed to seed guests: %v", err)
	}

	seeded, err := service.ListGuests()
	if err != nil {
		t.Fatalf("Failed to list guests: %v", err)
	}
	if len(seeded) == 0 {
		t.Fatal("Expected the demo guest list to be inserted")
	}
	for _, g := range seeded {
		if g.LuckyDrawCode == "" {
			t.Errorf("Seeded guest %q has no draw code", g.Name)
		}
		if g.IsWinner {
			t.Errorf("Seeded guest %q should not start as a winner", g.Name)
		}
	}
}

func TestSeedGuestsSkipsNonEmptyStore(t *testing.T) {
	service := guests.NewGuestService(db.NewMemory())

	if _, err := service.CreateGuest(models.GuestInput{
		Name:        "Existing Guest",
		PhoneNumber: "0123456789",
		Attendance:  models.AttendanceAttending,
		TotalPax:    1,
	}); err != nil {
		t.Fatalf("Failed to create guest: %v", err)
	}

	if err := database.SeedGuests(service, testLogger(t)); err != nil {
		t.Fatalf("Seed should be a no-op: %v", err)
	}

	all, err := service.ListGuests()
	if err != nil {
		t.Fatalf("Failed to list guests: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected seeding to skip a populated store, got %d guests", len(all))
	}
}
