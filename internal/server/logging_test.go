package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestRequestLoggerRecordsRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	var pattern string
	router := chi.NewRouter()
	router.Use(requestLogger(logger))
	router.Route("/request", func(r chi.Router) {
		r.Get("/museum/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte("conflict"))
			pattern = routePattern(r)
		})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/request/museum/3", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", rec.Body.String())
	assert.Equal(t, "/request/museum/{id}", pattern)
	assert.Contains(t, buf.String(), "409 Conflict")
	assert.Contains(t, buf.String(), "8 B")
}

func TestRoutePatternUnmatched(t *testing.T) {
	assert.Equal(t, "unmatched", routePattern(httptest.NewRequest(http.MethodGet, "/nowhere", nil)))
}
