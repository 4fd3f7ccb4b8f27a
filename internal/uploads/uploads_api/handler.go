package uploads_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"majlis-rsvp/internal/logger"
	"majlis-rsvp/internal/uploads"
	"majlis-rsvp/internal/utils"
)

type Handler struct {
	Uploads *uploads.Service
	Logger  *logger.Logger
}

type requestURLBody struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

type requestURLResponse struct {
	UploadURL  string         `json:"uploadURL"`
	ObjectPath string         `json:"objectPath"`
	Metadata   requestURLBody `json:"metadata"`
}

// RequestUploadURL hands the client a signed PUT URL plus the stable object
// path to store in settings afterwards.
func (h *Handler) RequestUploadURL(w http.ResponseWriter, r *http.Request) {
	if !h.Uploads.Enabled() {
		utils.Error(w, http.StatusInternalServerError, "Object storage is not configured")
		return
	}

	var body requestURLBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.Name == "" {
		utils.ValidationFailed(w, "Missing required field: name", "name")
		return
	}

	uploadURL, objectPath, err := h.Uploads.RequestUploadURL()
	if err != nil {
		h.Logger.Error("UPLOADS", fmt.Sprintf("RequestUploadURL: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}

	utils.JSON(w, http.StatusOK, requestURLResponse{
		UploadURL:  uploadURL,
		ObjectPath: objectPath,
		Metadata:   body,
	})
}

// ServeObject streams a stored object (hero image, background music) back to
// the client.
func (h *Handler) ServeObject(w http.ResponseWriter, r *http.Request) {
	if !h.Uploads.Enabled() {
		utils.Error(w, http.StatusNotFound, "Object not found")
		return
	}

	if err := h.Uploads.ServeObject(w, r.URL.Path); err != nil {
		if errors.Is(err, uploads.ErrObjectNotFound) {
			utils.Error(w, http.StatusNotFound, "Object not found")
			return
		}
		h.Logger.Error("UPLOADS", fmt.Sprintf("ServeObject: %v", err))
		utils.Error(w, http.StatusInternalServerError, "Failed to serve object")
	}
}
