package settings_api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"majlis-rsvp/internal/logger"
	"majlis-rsvp/internal/models"
	"majlis-rsvp/internal/settings/db"
	"majlis-rsvp/internal/settings/settings_api"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()

	log := logger.NewLogger()
	t.Cleanup(func() {
		log.Close()
		os.RemoveAll("logs")
	})

	handler := &settings_api.Handler{Store: db.NewMemory(), Logger: log}
	r := chi.NewRouter()
	r.Get("/api/settings", handler.GetSettings)
	r.Post("/api/settings", handler.UpdateSettings)
	return r
}

func TestGetSettingsEndpoint(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var settings models.Settings
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, models.DefaultSettings().EventName, settings.EventName)
	assert.True(t, settings.LuckyDrawEnabled)
}

func TestUpdateSettingsEndpointPartial(t *testing.T) {
	r := setupRouter(t)

	payload := []byte(`{"eventName":"Majlis Perkahwinan","luckyDrawEnabled":false}`)
	req := httptest.NewRequest(http.MethodPost, "/api/settings", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var settings models.Settings
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, "Majlis Perkahwinan", settings.EventName)
	assert.False(t, settings.LuckyDrawEnabled)
	// Fields absent from the payload keep their values.
	assert.Equal(t, models.DefaultSettings().FamilyName, settings.FamilyName)
}

func TestUpdateSettingsEndpointBadJSON(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/settings", bytes.NewReader([]byte("{oops")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
