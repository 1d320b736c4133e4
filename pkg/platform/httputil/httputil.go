package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"logsviewer/pkg/platform/sentinel"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON body with the given status. A nil v writes
// headers only.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteErrorCode writes an error body with an explicit status and code.
func WriteErrorCode(w http.ResponseWriter, status int, code, description string) {
	WriteJSON(w, status, ErrorResponse{Error: code, ErrorDescription: description})
}

// WriteError maps err onto a status using the platform sentinels. Internal
// errors never expose their message.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sentinel.ErrInvalidInput):
		WriteErrorCode(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, sentinel.ErrUnavailable):
		WriteErrorCode(w, http.StatusServiceUnavailable, "unavailable", "")
	default:
		WriteErrorCode(w, http.StatusInternalServerError, "internal_error", "")
	}
}
