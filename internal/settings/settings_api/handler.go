package settings_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"majlis-rsvp/internal/logger"
	"majlis-rsvp/internal/models"
	"majlis-rsvp/internal/utils"
)

type SettingsStore interface {
	GetSettings() (*models.Settings, error)
	UpdateSettings(update models.SettingsUpdate) (*models.Settings, error)
}

type Handler struct {
	Store  SettingsStore
	Logger *logger.Logger
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Store.GetSettings()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("GetSettings: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	utils.JSON(w, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var update models.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := h.Store.UpdateSettings(update)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("UpdateSettings: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	h.Logger.Info("SETTINGS", "event settings updated")
	utils.JSON(w, http.StatusOK, settings)
}
