package admin_test

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"majlis-rsvp/internal/admin/db"
	admin "majlis-rsvp/internal/admin/service"
	"majlis-rsvp/internal/models"
)

func newService() *admin.AdminService {
	return admin.NewAdminService(db.NewMemory(), nil)
}

func TestCreateAdminHashesPassword(t *testing.T) {
	service := newService()

	account, err := service.CreateAdmin(models.AdminInput{
		Username:    "siti",
		Password:    "rahsia-besar",
		DisplayName: "Siti",
	})
	if err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}

	if account.Password == "rahsia-besar" {
		t.Fatal("Password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("rahsia-besar")); err != nil {
		t.Errorf("Stored hash does not verify against the original password: %v", err)
	}
}

func TestCreateAdminValidation(t *testing.T) {
	service := newService()

	if _, err := service.CreateAdmin(models.AdminInput{Username: "  ", Password: "rahsia-besar"}); err == nil {
		t.Error("Expected empty username to be rejected")
	}
	if _, err := service.CreateAdmin(models.AdminInput{Username: "siti", Password: "abc"}); err == nil {
		t.Error("Expected short password to be rejected")
	}
}

func TestCreateAdminDuplicateUsername(t *testing.T) {
	service := newService()

	if _, err := service.CreateAdmin(models.AdminInput{Username: "siti", Password: "rahsia-besar"}); err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}
	if _, err := service.CreateAdmin(models.AdminInput{Username: "siti", Password: "lain-lain"}); !errors.Is(err, admin.ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	service := newService()

	if _, err := service.CreateAdmin(models.AdminInput{Username: "siti", Password: "rahsia-besar"}); err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}

	account, err := service.Authenticate("siti", "rahsia-besar")
	if err != nil {
		t.Fatalf("Expected successful login: %v", err)
	}
	if account.Username != "siti" {
		t.Errorf("Expected account siti, got %s", account.Username)
	}

	// Unknown usernames and wrong passwords fail identically.
	_, wrongPassword := service.Authenticate("siti", "salah")
	_, unknownUser := service.Authenticate("nobody", "rahsia-besar")
	if !errors.Is(wrongPassword, admin.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, admin.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Error("Login failure modes must be indistinguishable")
	}
}

func TestUpdateAdminPassword(t *testing.T) {
	service := newService()

	account, err := service.CreateAdmin(models.AdminInput{Username: "siti", Password: "rahsia-besar"})
	if err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}

	if err := service.UpdateAdminPassword(account.ID, "kata-laluan-baru"); err != nil {
		t.Fatalf("Failed to update password: %v", err)
	}

	if _, err := service.Authenticate("siti", "rahsia-besar"); !errors.Is(err, admin.ErrInvalidCredentials) {
		t.Error("Old password should no longer work")
	}
	if _, err := service.Authenticate("siti", "kata-laluan-baru"); err != nil {
		t.Errorf("New password should work: %v", err)
	}

	if err := service.UpdateAdminPassword(account.ID, "abc"); err == nil {
		t.Error("Expected short replacement password to be rejected")
	}
	if err := service.UpdateAdminPassword(999, "kata-laluan-baru"); !errors.Is(err, db.ErrAdminNotFound) {
		t.Errorf("Expected ErrAdminNotFound for unknown id, got %v", err)
	}
}

func TestEnsureDefaultAdminIdempotent(t *testing.T) {
	service := newService()

	if err := service.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("Failed to bootstrap default admin: %v", err)
	}
	if err := service.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("Second bootstrap should be a no-op: %v", err)
	}

	admins, err := service.ListAdmins()
	if err != nil {
		t.Fatalf("Failed to list admins: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("Expected exactly one bootstrap account, got %d", len(admins))
	}
	if admins[0].Username != "admin" || admins[0].DisplayName != "Administrator" {
		t.Errorf("Unexpected bootstrap account: %s (%s)", admins[0].Username, admins[0].DisplayName)
	}

	if _, err := service.Authenticate("admin", "admin123"); err != nil {
		t.Errorf("Bootstrap credentials should authenticate: %v", err)
	}
}
