package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/lafayette53/apiserver/internal/services"
	"github.com/lafayette53/apiserver/internal/store"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// writeOK adds the success flag to body and writes it with status 200.
func writeOK(w http.ResponseWriter, body map[string]any) {
	if body == nil {
		body = map[string]any{}
	}
	body["success"] = true
	writeJSON(w, http.StatusOK, body)
}

// writeBadRequest reports a malformed request. Malformed requests are a
// caller bug and use status 500.
func writeBadRequest(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, err.Error())
}

// statusFor maps a service error to a status code and message. The second
// result is false for errors that are not part of the domain vocabulary.
func statusFor(err error) (int, string, bool) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error(), true
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrConflict),
		errors.Is(err, store.ErrUnsupported),
		errors.Is(err, services.ErrEditResolved),
		errors.Is(err, services.ErrNoCollections),
		errors.Is(err, services.ErrMuseumMismatch):
		return http.StatusConflict, err.Error(), true
	default:
		return http.StatusConflict, "request could not be completed", false
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	status, message, known := statusFor(err)
	if !known && logger != nil {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeError(w, status, message)
}

// parseID parses a path id. Ids must fit in a signed 32-bit integer.
func parseID(raw string) (int, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return int(id), nil
}

func pathID(r *http.Request) (int, error) {
	return parseID(chi.URLParam(r, "id"))
}
