package handlers

import (
	"time"

	"github.com/lafayette53/apiserver/internal/services"
	"github.com/lafayette53/apiserver/types"
)

// Field whitelists for projected entities.
var (
	userKeys    = []string{"email", "id", "username"}
	museumKeys  = []string{"id", "name", "description", "introduction", "userID", "image"}
	entityKeys  = []string{"id", "name", "description", "introduction", "image"}
	summaryKeys = []string{"id", "name"}
	idKeys      = []string{"id"}
)

type fielder interface {
	Fields() map[string]any
}

// project returns only the listed fields of f.
func project(f fielder, keys ...string) map[string]any {
	fields := f.Fields()
	out := make(map[string]any, len(keys))
	for _, key := range keys {
		if value, ok := fields[key]; ok {
			out[key] = value
		}
	}
	return out
}

func projectAll[T fielder](items []T, keys ...string) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, project(item, keys...))
	}
	return out
}

func reviewTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func renderEditHeader[T types.Editable](edit types.Edit[T]) map[string]any {
	museum := edit.Museum()
	return map[string]any{
		"id":             edit.ID,
		"category":       edit.Category(),
		"type":           edit.Action.Label(),
		"approvalStatus": edit.Status.Label(),
		"time":           reviewTime(edit.ReviewedAt),
		"reviewer":       map[string]any{"username": museum.Curator.Username},
		"proposer":       map[string]any{"username": edit.Proposer.Username},
	}
}

func renderArtifactEdit(edit types.ArtifactEdit) map[string]any {
	out := renderEditHeader(edit)
	out["artifact"] = map[string]any{
		"artifact":       project(edit.Payload, entityKeys...),
		"collectionList": projectAll(edit.Collections, summaryKeys...),
		"museum":         project(edit.Museum(), summaryKeys...),
	}
	return out
}

func renderCollectionEdit(edit types.CollectionEdit) map[string]any {
	out := renderEditHeader(edit)
	out["collection"] = map[string]any{
		"collection": project(edit.Payload, entityKeys...),
		"museum":     project(edit.Museum(), summaryKeys...),
	}
	return out
}

func renderEdits(artifactEdits []types.ArtifactEdit, collectionEdits []types.CollectionEdit) []map[string]any {
	out := make([]map[string]any, 0, len(artifactEdits)+len(collectionEdits))
	for _, edit := range artifactEdits {
		out = append(out, renderArtifactEdit(edit))
	}
	for _, edit := range collectionEdits {
		out = append(out, renderCollectionEdit(edit))
	}
	return out
}

// renderChange describes a curation result. Proposed changes only expose the
// edit id; applied changes expose the entity under key.
func renderChange[T interface {
	types.Editable
	fielder
}](key string, change services.Change[T]) map[string]any {
	if change.Pending() {
		return map[string]any{
			"pending": true,
			"edit":    map[string]any{"id": change.Edit.ID},
		}
	}
	return map[string]any{
		"pending": false,
		key:       project(change.Entity, entityKeys...),
	}
}

func renderProfile(profile services.Profile) map[string]any {
	out := map[string]any{
		"user":        project(profile.User, userKeys...),
		"museumList":  projectAll(profile.Museums, summaryKeys...),
		"editsList":   renderEdits(profile.ArtifactEdits, profile.CollectionEdits),
		"actionsList": renderEdits(profile.ArtifactActions, profile.CollectionActions),
	}
	if profile.HeadCurator {
		out["headCuratorList"] = projectAll(profile.AllMuseums, summaryKeys...)
	}
	return out
}
