package guest_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"majlis-rsvp/internal/guests/db"
	"majlis-rsvp/internal/guests/qr"
	guests "majlis-rsvp/internal/guests/service"
	"majlis-rsvp/internal/logger"
	"majlis-rsvp/internal/models"
	"majlis-rsvp/internal/utils"
)

type Handler struct {
	GuestService *guests.GuestService
	Logger       *logger.Logger
}

// CreateGuest handles the public RSVP submission.
func (h *Handler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var input models.GuestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	guest, err := h.GuestService.CreateGuest(input)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			h.Logger.Warn("API", fmt.Sprintf("CreateGuest: rejected submission: %s (%s)", verr.Message, verr.Field))
			utils.ValidationFailed(w, verr.Message, verr.Field)
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateGuest: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to create guest")
		return
	}

	h.Logger.LogGuest("CREATE", guest.ID, fmt.Sprintf("%s (%s), code %s", guest.Name, guest.Attendance, guest.LuckyDrawCode))
	utils.JSON(w, http.StatusCreated, guest)
}

func (h *Handler) ListGuests(w http.ResponseWriter, r *http.Request) {
	guestList, err := h.GuestService.ListGuests()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListGuests: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to list guests")
		return
	}
	if guestList == nil {
		guestList = []models.Guest{}
	}
	utils.JSON(w, http.StatusOK, guestList)
}

func (h *Handler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ValidationFailed(w, "Invalid guest id", "id")
		return
	}

	if err := h.GuestService.DeleteGuest(id); err != nil {
		h.Logger.Error("API", fmt.Sprintf("DeleteGuest: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to delete guest")
		return
	}
	h.Logger.LogGuest("DELETE", id, "guest removed")
	utils.Message(w, "Guest deleted successfully.")
}

// BulkDeleteGuests removes every guest named in the ids list; unknown ids are
// skipped silently.
func (h *Handler) BulkDeleteGuests(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(body.IDs) == 0 {
		utils.ValidationFailed(w, "At least one guest id is required", "ids")
		return
	}

	if err := h.GuestService.DeleteGuests(body.IDs); err != nil {
		h.Logger.Error("API", fmt.Sprintf("BulkDeleteGuests: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to delete guests")
		return
	}
	h.Logger.Info("GUEST", fmt.Sprintf("[BULK_DELETE] removed %d guests", len(body.IDs)))
	utils.JSON(w, http.StatusOK, utils.MessageBody{Message: "Guests deleted successfully.", Count: len(body.IDs)})
}

func (h *Handler) DrawWinner(w http.ResponseWriter, r *http.Request) {
	winner, err := h.GuestService.DrawWinner()
	if err != nil {
		if errors.Is(err, guests.ErrNoEligibleGuests) {
			h.Logger.LogDraw("DRAW", "no eligible participants")
			utils.Error(w, http.StatusNotFound, "No eligible participants found for the draw.")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("DrawWinner: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to draw winner")
		return
	}

	h.Logger.LogDraw("DRAW", fmt.Sprintf("winner #%d %s (code %s)", winner.ID, winner.Name, winner.LuckyDrawCode))
	utils.JSON(w, http.StatusOK, winner)
}

func (h *Handler) ResetDraw(w http.ResponseWriter, r *http.Request) {
	if err := h.GuestService.ResetDraw(); err != nil {
		h.Logger.Error("API", fmt.Sprintf("ResetDraw: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to reset draw")
		return
	}
	h.Logger.LogDraw("RESET", "winner state cleared for all guests")
	utils.Message(w, "Draw has been reset.")
}

// GuestQR serves the guest's draw code as a PNG QR card.
func (h *Handler) GuestQR(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ValidationFailed(w, "Invalid guest id", "id")
		return
	}

	guest, err := h.GuestService.GetGuest(id)
	if err != nil {
		if errors.Is(err, db.ErrGuestNotFound) {
			utils.Error(w, http.StatusNotFound, "Guest not found")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("GuestQR: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to load guest")
		return
	}

	png, err := qr.GenerateCard(*guest)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GuestQR: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
