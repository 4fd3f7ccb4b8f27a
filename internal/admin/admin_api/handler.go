package admin_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"majlis-rsvp/internal/admin/db"
	admin "majlis-rsvp/internal/admin/service"
	"majlis-rsvp/internal/auth"
	"majlis-rsvp/internal/logger"
	"majlis-rsvp/internal/models"
	"majlis-rsvp/internal/utils"
)

type Handler struct {
	AdminService  *admin.AdminService
	Sessions      auth.SessionCache
	SessionSecret string
	TokenTTL      time.Duration
	Logger        *logger.Logger
}

type loginResponse struct {
	Token string            `json:"token"`
	User  *models.AdminUser `json:"user"`
}

// Login verifies credentials, issues a session token and registers it in the
// session cache. Unknown user and wrong password produce the same response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Username == "" {
		utils.ValidationFailed(w, "Username is required", "username")
		return
	}
	if input.Password == "" {
		utils.ValidationFailed(w, "Password is required", "password")
		return
	}

	account, err := h.AdminService.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, admin.ErrInvalidCredentials) {
			h.Logger.LogSecurity("LOGIN_FAILED", fmt.Sprintf("username %q", input.Username))
			utils.Error(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("Login: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, expiresAt, err := auth.IssueToken(h.SessionSecret, account.ID, account.Username, h.TokenTTL)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Login: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if err := h.Sessions.Register(r.Context(), token, expiresAt); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Login: failed to register session: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	h.Logger.Info("AUTH", fmt.Sprintf("admin %q logged in", account.Username))
	utils.JSON(w, http.StatusOK, loginResponse{Token: token, User: account})
}

// Logout revokes the current session token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := auth.SessionToken(r.Context())
	if token != "" {
		if err := h.Sessions.Revoke(r.Context(), token); err != nil {
			h.Logger.Error("API", fmt.Sprintf("Logout: %v", err))
			utils.Error(w, http.StatusInternalServerError, "Logout failed")
			return
		}
	}
	h.Logger.Info("AUTH", fmt.Sprintf("admin %q logged out", auth.Username(r.Context())))
	utils.Message(w, "Logged out.")
}

// Me returns the authenticated admin account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	account, err := h.AdminService.GetAdminByID(auth.AdminID(r.Context()))
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.JSON(w, http.StatusOK, account)
}

func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.AdminService.ListAdmins()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListAdmins: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to list admins")
		return
	}
	if admins == nil {
		admins = []models.AdminUser{}
	}
	utils.JSON(w, http.StatusOK, admins)
}

func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var input models.AdminInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.AdminService.CreateAdmin(input)
	if err != nil {
		var verr *models.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.ValidationFailed(w, verr.Message, verr.Field)
		case errors.Is(err, admin.ErrUsernameTaken):
			utils.ValidationFailed(w, "Username already exists", "username")
		default:
			h.Logger.Error("API", fmt.Sprintf("CreateAdmin: %v", err))
			utils.Error(w, http.StatusInternalServerError, "Failed to create admin")
		}
		return
	}

	h.Logger.Info("AUTH", fmt.Sprintf("admin account %q created", account.Username))
	utils.JSON(w, http.StatusCreated, account)
}

func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ValidationFailed(w, "Invalid admin id", "id")
		return
	}

	if err := h.AdminService.DeleteAdmin(id); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteAdmin: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to delete admin")
		return
	}
	h.Logger.Info("AUTH", fmt.Sprintf("admin account #%d deleted", id))
	utils.Message(w, "Admin deleted successfully.")
}

func (h *Handler) UpdateAdminPassword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ValidationFailed(w, "Invalid admin id", "id")
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.AdminService.UpdateAdminPassword(id, body.Password); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			utils.ValidationFailed(w, verr.Message, verr.Field)
			return
		}
		if errors.Is(err, db.ErrAdminNotFound) {
			utils.Error(w, http.StatusNotFound, "Admin not found")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("UpdateAdminPassword: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to update password")
		return
	}
	h.Logger.Info("AUTH", fmt.Sprintf("password rotated for admin #%d", id))
	utils.Message(w, "Password updated successfully.")
}
