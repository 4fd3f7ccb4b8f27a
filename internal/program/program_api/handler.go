package program_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"majlis-rsvp/internal/logger"
	"majlis-rsvp/internal/models"
	"majlis-rsvp/internal/utils"
)

type ProgramStore interface {
	ListProgramItems() ([]models.ProgramItem, error)
	ReplaceProgramItems(inputs []models.ProgramItemInput) ([]models.ProgramItem, error)
}

type Handler struct {
	Store  ProgramStore
	Logger *logger.Logger
}

func (h *Handler) ListProgramItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListProgramItems()
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListProgramItems: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to load program")
		return
	}
	if items == nil {
		items = []models.ProgramItem{}
	}
	utils.JSON(w, http.StatusOK, items)
}

// ReplaceProgramItems is a full replace, not a diff: the caller resends the
// complete desired schedule each time.
func (h *Handler) ReplaceProgramItems(w http.ResponseWriter, r *http.Request) {
	var inputs []models.ProgramItemInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	for i, input := range inputs {
		if input.Time == "" {
			utils.ValidationFailed(w, "Time label is required", fmt.Sprintf("%d.time", i))
			return
		}
		if input.Activity == "" {
			utils.ValidationFailed(w, "Activity is required", fmt.Sprintf("%d.activity", i))
			return
		}
	}

	items, err := h.Store.ReplaceProgramItems(inputs)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ReplaceProgramItems: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to update program")
		return
	}
	h.Logger.Info("PROGRAM", fmt.Sprintf("program replaced with %d items", len(items)))
	utils.JSON(w, http.StatusOK, items)
}
