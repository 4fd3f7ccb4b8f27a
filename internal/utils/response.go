package utils

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the wire shape for every non-2xx response. Field is set only
// for validation failures.
type ErrorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// MessageBody is the wire shape for operations that acknowledge rather than
// return an entity (deletes, draw reset).
type MessageBody struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Message: message})
}

func ValidationFailed(w http.ResponseWriter, message, field string) {
	JSON(w, http.StatusBadRequest, ErrorBody{Message: message, Field: field})
}

func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, MessageBody{Message: message})
}
