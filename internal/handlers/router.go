package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestRouter registers the catalogue API on the given router.
func RequestRouter(r chi.Router, api *API) {
	r.Get("/museum-list", api.ListMuseums)
	r.Get("/museum/{id}", api.GetMuseum)
	r.Get("/collection/{id}", api.GetCollection)
	r.Get("/artifact/{id}", api.GetArtifact)
	r.Get("/edit/{id}", api.GetEdit)

	r.Post("/login", api.Login)
	r.Post("/register", api.Register)
	r.Post("/reset-password", api.ResetPassword)
	r.Post("/reset-password/{username}", api.ResetPassword)
	r.Post("/user-profile", api.UserProfile)

	r.Post("/add-museum", api.AddMuseum)
	r.Post("/delete-museum/{id}", api.DeleteMuseum)
	r.Post("/add-collection", api.AddCollection)
	r.Post("/edit-collection", api.EditCollection)
	r.Post("/add-artifact", api.AddArtifact)
	r.Post("/edit-artifact", api.EditArtifact)
	r.Post("/delete-artifact/{id}", api.DeleteArtifact)
	r.Post("/review-edit", api.ReviewEdit)
}

// Routes mounts the API, the health check, and the frontend on router.
// HEAD requests to the API are served by its GET routes. Requests that match
// no route are handled by Unmatched.
func Routes(router chi.Router, api *API, static http.Handler, db Pinger) {
	unmatched := Unmatched(static)
	router.NotFound(unmatched)
	router.MethodNotAllowed(unmatched)

	router.Get("/healthz", Healthz(db))
	router.Route("/request", func(r chi.Router) {
		r.Use(middleware.GetHead)
		r.NotFound(unmatched)
		r.MethodNotAllowed(unmatched)
		RequestRouter(r, api)
	})
}

// Unmatched serves the frontend for GET and HEAD and answers 404 for every
// other method. A POST to /request/<action>/<id> whose id is not a 32-bit
// integer is a malformed request instead.
func Unmatched(static http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			static.ServeHTTP(w, r)
		case http.MethodPost:
			if raw, ok := requestIDSegment(r.URL.Path); ok {
				if _, err := parseID(raw); err != nil {
					writeBadRequest(w, err)
					return
				}
			}
			writeError(w, http.StatusNotFound, "not found")
		default:
			writeError(w, http.StatusNotFound, "not found")
		}
	}
}

func requestIDSegment(p string) (string, bool) {
	rest, ok := strings.CutPrefix(p, "/request/")
	if !ok {
		return "", false
	}
	action, id, ok := strings.Cut(rest, "/")
	if !ok || action == "" || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}
