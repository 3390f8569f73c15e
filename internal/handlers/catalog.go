package handlers

import (
	"net/http"
)

// ListMuseums returns every museum.
func (a *API) ListMuseums(w http.ResponseWriter, r *http.Request) {
	museums, err := a.catalog.ListMuseums(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, map[string]any{
		"museumList": projectAll(museums, museumKeys...),
	})
}

// GetMuseum returns a museum and its collections.
func (a *API) GetMuseum(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	detail, err := a.catalog.Museum(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, map[string]any{
		"museum":         project(detail.Museum, museumKeys...),
		"collectionList": projectAll(detail.Collections, entityKeys...),
	})
}

// GetCollection returns a collection, its artifacts, and a reference to its museum.
func (a *API) GetCollection(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	detail, err := a.catalog.Collection(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, map[string]any{
		"collection":   project(detail.Collection, entityKeys...),
		"artifactList": projectAll(detail.Artifacts, entityKeys...),
		"museum":       project(detail.Collection.Museum, summaryKeys...),
	})
}

// GetArtifact returns an artifact, its collections, and its museum id.
func (a *API) GetArtifact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	detail, err := a.catalog.Artifact(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, map[string]any{
		"artifact":       project(detail.Artifact, entityKeys...),
		"collectionList": projectAll(detail.Collections, summaryKeys...),
		"museum":         project(detail.Artifact.Museum, idKeys...),
	})
}

// GetEdit returns an artifact or collection edit.
func (a *API) GetEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	view, err := a.catalog.Edit(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var edit map[string]any
	if view.Artifact != nil {
		edit = renderArtifactEdit(*view.Artifact)
	} else {
		edit = renderCollectionEdit(*view.Collection)
	}
	writeOK(w, map[string]any{"edit": edit})
}
