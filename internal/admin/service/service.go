package admin

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"majlis-rsvp/internal/admin/db"
	"majlis-rsvp/internal/logger"
	"majlis-rsvp/internal/models"
)

var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password so
	// the two are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
)

const (
	bcryptCost        = 10
	minPasswordLength = 6

	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

type AdminDBLayer interface {
	GetAdminByUsername(username string) (*models.AdminUser, error)
	GetAdminByID(id int64) (*models.AdminUser, error)
	ListAdmins() ([]models.AdminUser, error)
	CreateAdmin(admin *models.AdminUser) error
	DeleteAdmin(id int64) error
	UpdateAdminPassword(id int64, hashed string) error
}

type AdminService struct {
	DB     AdminDBLayer
	Logger *logger.Logger
}

func NewAdminService(db AdminDBLayer, log *logger.Logger) *AdminService {
	return &AdminService{DB: db, Logger: log}
}

func (s *AdminService) GetAdminByID(id int64) (*models.AdminUser, error) {
	return s.DB.GetAdminByID(id)
}

func (s *AdminService) ListAdmins() ([]models.AdminUser, error) {
	return s.DB.ListAdmins()
}

// CreateAdmin hashes the plaintext password and stores the account. The
// plaintext never reaches the store.
func (s *AdminService) CreateAdmin(input models.AdminInput) (*models.AdminUser, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, models.Invalid("username", "Username is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, models.Invalid("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	if _, err := s.DB.GetAdminByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, db.ErrAdminNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.AdminUser{
		Username:    username,
		Password:    string(hashed),
		DisplayName: strings.TrimSpace(input.DisplayName),
	}
	if err := s.DB.CreateAdmin(admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

func (s *AdminService) DeleteAdmin(id int64) error {
	return s.DB.DeleteAdmin(id)
}

func (s *AdminService) UpdateAdminPassword(id int64, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return models.Invalid("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.DB.UpdateAdminPassword(id, string(hashed))
}

// Authenticate verifies a username/password pair. bcrypt's comparison is
// constant-time over the hash, and a dummy comparison runs for unknown
// usernames so both failure modes cost the same.
func (s *AdminService) Authenticate(username, password string) (*models.AdminUser, error) {
	account, err := s.DB.GetAdminByUsername(username)
	if err != nil {
		if errors.Is(err, db.ErrAdminNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// EnsureDefaultAdmin creates the bootstrap account when no "admin" user
// exists. Idempotent; runs once at startup. The fixed default password is a
// first-run convenience and should be rotated immediately.
func (s *AdminService) EnsureDefaultAdmin() error {
	_, err := s.DB.GetAdminByUsername(defaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, db.ErrAdminNotFound) {
		return fmt.Errorf("failed to check default admin: %w", err)
	}

	if _, err := s.CreateAdmin(models.AdminInput{
		Username:    defaultAdminUsername,
		Password:    defaultAdminPassword,
		DisplayName: "Administrator",
	}); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}
	if s.Logger != nil {
		s.Logger.Warn("AUTH", "Default admin user created (username: admin) - change the password")
	}
	return nil
}

// dummyHash keeps Authenticate's unknown-user path doing real bcrypt work.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("majlis-rsvp-dummy"), bcryptCost)
	return h
}()
