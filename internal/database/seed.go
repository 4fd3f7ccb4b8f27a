package database

import (
	"fmt"

	guests "majlis-rsvp/internal/guests/service"
	"majlis-rsvp/internal/logger"
	"majlis-rsvp/internal/models"
)

// demo guest list inserted on first run when seeding is enabled
var mockGuests = []models.GuestInput{
	{Name: "Ahmad Albab", PhoneNumber: "012-3456789", Attendance: models.AttendanceAttending, TotalPax: 2, Wishes: "Selamat Pengantin Baru! Eh silap, selamat akikah!"},
	{Name: "Siti Nurhaliza", PhoneNumber: "013-4567890", Attendance: models.AttendanceAttending, TotalPax: 4, Wishes: "Semoga membesar dengan sihat."},
	{Name: "Upin & Ipin", PhoneNumber: "014-5678901", Attendance: models.AttendanceAttending, TotalPax: 2, Wishes: "Betul betul betul!"},
	{Name: "Mat Kilau", PhoneNumber: "019-8765432", Attendance: models.AttendanceMaybe, TotalPax: 1, Wishes: "Pahlawan datang bertandang."},
	{Name: "Pak Pandir", PhoneNumber: "011-12341234", Attendance: models.AttendanceAttending, TotalPax: 1, Wishes: "Makan makan!"},
	{Name: "Makcik Kiah", PhoneNumber: "017-3334444", Attendance: models.AttendanceAttending, TotalPax: 5, Wishes: "Ada rendang tak?"},
	{Name: "Hantu Kak Limah", PhoneNumber: "018-9998888", Attendance: models.AttendanceNotAttending, TotalPax: 0, Wishes: "Maaf tak dapat datang."},
	{Name: "BoBoiBoy", PhoneNumber: "010-5556666", Attendance: models.AttendanceAttending, TotalPax: 3, Wishes: "Terbaik!"},
	{Name: "Puteri Gunung Ledang", PhoneNumber: "012-1112222", Attendance: models.AttendanceAttending, TotalPax: 1, Wishes: "Hantaran 7 dulang nyamuk."},
	{Name: "Hang Tuah", PhoneNumber: "013-7778888", Attendance: models.AttendanceAttending, TotalPax: 1, Wishes: "Takkan Melayu Hilang Di Dunia."},
}

// SeedGuests inserts the demo guest list when the guest table is empty.
// Codes are issued through the normal RSVP path so seeded guests join the
// draw like real ones.
func SeedGuests(service *guests.GuestService, log *logger.Logger) error {
	existing, err := service.ListGuests()
	if err != nil {
		return fmt.Errorf("failed to check existing guests: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	log.Info("SEED", "Seeding database with mock guests")
	for _, input := range mockGuests {
		if _, err := service.CreateGuest(input); err != nil {
			return fmt.Errorf("failed to seed guest %q: %w", input.Name, err)
		}
	}
	log.Info("SEED", fmt.Sprintf("Seeded %d guests", len(mockGuests)))
	return nil
}
