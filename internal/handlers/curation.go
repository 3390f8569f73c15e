package handlers

import (
	"fmt"
	"net/http"

	"github.com/lafayette53/apiserver/types"
)

// AddMuseum creates a museum curated by the caller.
func (a *API) AddMuseum(w http.ResponseWriter, r *http.Request) {
	var req AddMuseumRequest
	if err := decodeRequest(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	user, ok := a.login(w, r, req.User)
	if !ok {
		return
	}

	museum, err := a.curation.AddMuseum(r.Context(), user, req.Museum.museum())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, map[string]any{"museum": project(museum, museumKeys...)})
}

// DeleteMuseum removes a museum. Only its curator or a head curator may.
func (a *API) DeleteMuseum(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	var req Credentials
	if err := decodeRequest(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	user, ok := a.login(w, r, &req)
	if !ok {
		return
	}

	if err := a.curation.DeleteMuseum(r.Context(), user, id); err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, nil)
}

// AddCollection creates a collection, or proposes it when the caller does not
// curate the museum.
func (a *API) AddCollection(w http.ResponseWriter, r *http.Request) {
	var req AddCollectionRequest
	if err := decodeRequest(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	user, ok := a.login(w, r, req.User)
	if !ok {
		return
	}

	change, err := a.curation.AddCollection(r.Context(), user, int(*req.Museum.ID), req.Collection.collection())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, renderChange(types.CategoryCollection, change))
}

// EditCollection updates a collection, or proposes the update.
func (a *API) EditCollection(w http.ResponseWriter, r *http.Request) {
	var req EditCollectionRequest
	if err := decodeRequest(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	user, ok := a.login(w, r, req.User)
	if !ok {
		return
	}

	change, err := a.curation.EditCollection(r.Context(), user, int(*req.Museum.ID), req.Collection.collection())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, renderChange(types.CategoryCollection, change))
}

// AddArtifact creates an artifact in the listed collections, or proposes it.
func (a *API) AddArtifact(w http.ResponseWriter, r *http.Request) {
	var req AddArtifactRequest
	if err := decodeRequest(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	user, ok := a.login(w, r, req.User)
	if !ok {
		return
	}

	change, err := a.curation.AddArtifact(r.Context(), user, int(*req.Museum.ID), req.Artifact.artifact(), ids(req.Collection))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, renderChange(types.CategoryArtifact, change))
}

// EditArtifact updates an artifact and its collections, or proposes the update.
func (a *API) EditArtifact(w http.ResponseWriter, r *http.Request) {
	var req EditArtifactRequest
	if err := decodeRequest(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	user, ok := a.login(w, r, req.User)
	if !ok {
		return
	}

	change, err := a.curation.EditArtifact(r.Context(), user, int(*req.Museum.ID), req.Artifact.artifact(), ids(req.Collection))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, renderChange(types.CategoryArtifact, change))
}

// DeleteArtifact removes an artifact, or proposes its deletion.
func (a *API) DeleteArtifact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, err)
		return
	}
	var req Credentials
	if err := decodeRequest(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	user, ok := a.login(w, r, &req)
	if !ok {
		return
	}

	change, err := a.curation.DeleteArtifact(r.Context(), user, id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeOK(w, renderChange(types.CategoryArtifact, change))
}

// ReviewEdit approves or rejects a pending edit.
func (a *API) ReviewEdit(w http.ResponseWriter, r *http.Request) {
	var req ReviewEditRequest
	if err := decodeRequest(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}
	user, ok := a.login(w, r, req.User)
	if !ok {
		return
	}

	id, approve := int(*req.EditID), *req.Action
	switch category := *req.Category; category {
	case types.CategoryArtifact:
		edit, err := a.curation.ReviewArtifactEdit(r.Context(), user, id, approve)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		writeOK(w, map[string]any{"edit": renderArtifactEdit(edit)})
	case types.CategoryCollection:
		edit, err := a.curation.ReviewCollectionEdit(r.Context(), user, id, approve)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		writeOK(w, map[string]any{"edit": renderCollectionEdit(edit)})
	case types.CategoryMuseum:
		writeError(w, http.StatusNotImplemented, "museum edits are not supported")
	default:
		writeBadRequest(w, fmt.Errorf("unknown edit category %q", category))
	}
}
