package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Login verifies credentials and returns the user summary.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeRequest(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	user, ok := a.login(w, r, &req)
	if !ok {
		return
	}
	writeOK(w, map[string]any{"user": project(user, userKeys...)})
}

// Register creates a curator account.
func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeRequest(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	user, err := a.users.Register(r.Context(), *req.Username, *req.Email, *req.Password)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, map[string]any{"user": project(user, userKeys...)})
}

// ResetPassword issues a new password. The username comes from the path, or
// from the body when the path has none.
func (a *API) ResetPassword(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		var req ResetPasswordRequest
		if err := decodeRequest(r, &req); err != nil {
			writeBadRequest(w, err)
			return
		}
		username = *req.Username
	}
	if username == "" {
		writeBadRequest(w, errors.New("missing required fields: username"))
		return
	}

	if _, err := a.users.ResetPassword(r.Context(), username); err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, nil)
}

// UserProfile returns the caller's dashboard.
func (a *API) UserProfile(w http.ResponseWriter, r *http.Request) {
	var req Credentials
	if err := decodeRequest(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	user, ok := a.login(w, r, &req)
	if !ok {
		return
	}

	profile, err := a.catalog.Profile(r.Context(), user)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, renderProfile(profile))
}
