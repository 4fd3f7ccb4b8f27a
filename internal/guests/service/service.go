package guests

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"majlis-rsvp/internal/models"
	"majlis-rsvp/internal/utils"
)

// ErrNoEligibleGuests is the expected outcome of a draw when every attending
// guest has already won (or nobody is attending). Callers must branch on it
// distinctly from store faults.
var ErrNoEligibleGuests = errors.New("no eligible guests for draw")

const (
	minPhoneDigits = 7
	maxTotalPax    = 10
)

type GuestDBLayer interface {
	CreateGuest(guest *models.Guest) error
	GetGuestByID(id int64) (*models.Guest, error)
	ListGuests() ([]models.Guest, error)
	DeleteGuest(id int64) error
	DeleteGuests(ids []int64) error
	ListEligible() ([]models.Guest, error)
	CountWinners() (int, error)
	MarkWinner(id int64, rank int) (*models.Guest, error)
	ClearWinners() error
}

// EventPublisher streams RSVP lifecycle events to downstream consumers.
type EventPublisher interface {
	PublishGuestCreated(guest models.Guest) error
	PublishWinnerDrawn(guest models.Guest) error
	PublishDrawReset() error
}

type GuestService struct {
	DB     GuestDBLayer
	Events EventPublisher

	// PickIndex selects the winner among n eligible guests. It defaults to a
	// uniform math/rand pick and is replaced with a deterministic source in
	// tests.
	PickIndex func(n int) int
}

func NewGuestService(db GuestDBLayer) *GuestService {
	return &GuestService{
		DB:        db,
		PickIndex: rand.Intn,
	}
}

// CreateGuest validates an RSVP submission, issues the draw code and persists
// the guest. Nothing is written when validation fails.
func (s *GuestService) CreateGuest(input models.GuestInput) (*models.Guest, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	guest := &models.Guest{
		Name:          strings.TrimSpace(input.Name),
		PhoneNumber:   strings.TrimSpace(input.PhoneNumber),
		Attendance:    input.Attendance,
		TotalPax:      input.TotalPax,
		Wishes:        strings.TrimSpace(input.Wishes),
		LuckyDrawCode: utils.GenerateDrawCode(),
	}

	if err := s.DB.CreateGuest(guest); err != nil {
		return nil, fmt.Errorf("failed to create guest: %w", err)
	}

	if s.Events != nil {
		_ = s.Events.PublishGuestCreated(*guest)
	}
	return guest, nil
}

func (s *GuestService) ListGuests() ([]models.Guest, error) {
	guests, err := s.DB.ListGuests()
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

func (s *GuestService) GetGuest(id int64) (*models.Guest, error) {
	return s.DB.GetGuestByID(id)
}

// DeleteGuest removes a guest. Deleting an unknown id is a no-op.
func (s *GuestService) DeleteGuest(id int64) error {
	return s.DB.DeleteGuest(id)
}

func (s *GuestService) DeleteGuests(ids []int64) error {
	return s.DB.DeleteGuests(ids)
}

// DrawWinner picks one guest uniformly at random from the eligible set
// (attending, not yet a winner) and marks them drawn. Repeated draws sample
// without replacement across calls. Two concurrent draws race benignly: both
// read the eligible set before either writes, which is accepted for a
// human-paced live event.
func (s *GuestService) DrawWinner() (*models.Guest, error) {
	eligible, err := s.DB.ListEligible()
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible guests: %w", err)
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleGuests
	}

	chosen := eligible[s.PickIndex(len(eligible))]

	winners, err := s.DB.CountWinners()
	if err != nil {
		return nil, fmt.Errorf("failed to count winners: %w", err)
	}

	winner, err := s.DB.MarkWinner(chosen.ID, winners+1)
	if err != nil {
		return nil, fmt.Errorf("failed to mark winner: %w", err)
	}

	if s.Events != nil {
		_ = s.Events.PublishWinnerDrawn(*winner)
	}
	return winner, nil
}

// ResetDraw clears winner state for every guest. Idempotent.
func (s *GuestService) ResetDraw() error {
	if err := s.DB.ClearWinners(); err != nil {
		return fmt.Errorf("failed to reset draw: %w", err)
	}
	if s.Events != nil {
		_ = s.Events.PublishDrawReset()
	}
	return nil
}

func validateInput(input models.GuestInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return models.Invalid("name", "Name is required")
	}
	if len(strings.TrimSpace(input.PhoneNumber)) < minPhoneDigits {
		return models.Invalid("phoneNumber", "Phone number is too short")
	}
	if !models.ValidAttendance(input.Attendance) {
		return models.Invalid("attendance", "Attendance must be attending, maybe or not_attending")
	}
	if input.Attendance == models.AttendanceAttending {
		if input.TotalPax < 1 || input.TotalPax > maxTotalPax {
			return models.Invalid("totalPax", fmt.Sprintf("Total pax must be between 1 and %d", maxTotalPax))
		}
	}
	return nil
}
