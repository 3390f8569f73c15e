package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lafayette53/apiserver/internal/services"
	"github.com/lafayette53/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChange(t *testing.T) {
	applied := renderChange(types.CategoryCollection, services.Change[types.Collection]{
		Entity: types.Collection{ID: 3, Name: "Sketches", Museum: orangery},
	})
	assert.Equal(t, false, applied["pending"])
	assert.Equal(t, map[string]any{
		"id": 3, "name": "Sketches", "description": "", "introduction": "", "image": "",
	}, applied["collection"])

	edit := types.CollectionEdit{ID: 9}
	pending := renderChange(types.CategoryCollection, services.Change[types.Collection]{Edit: &edit})
	assert.Equal(t, true, pending["pending"])
	assert.Equal(t, map[string]any{"id": 9}, pending["edit"])
	assert.NotContains(t, pending, "collection")
}

func TestRenderArtifactEdit(t *testing.T) {
	edit := types.ArtifactEdit{
		ID:          5,
		Payload:     types.Artifact{ID: 40, Name: "Bridge", Museum: orangery},
		Action:      types.ActionDelete,
		Proposer:    visitor,
		Collections: []types.Collection{lilies},
		Status:      types.StatusPending,
	}

	out := renderArtifactEdit(edit)
	assert.Equal(t, "artifact", out["category"])
	assert.Equal(t, "Deletion", out["type"])
	assert.Equal(t, "Under review", out["approvalStatus"])
	assert.Equal(t, "", out["time"])
	assert.Equal(t, map[string]any{"username": curator.Username}, out["reviewer"])
	assert.Equal(t, map[string]any{"username": visitor.Username}, out["proposer"])

	body := out["artifact"].(map[string]any)
	assert.Equal(t, []map[string]any{{"id": lilies.ID, "name": lilies.Name}}, body["collectionList"])
	assert.Equal(t, map[string]any{"id": orangery.ID, "name": orangery.Name}, body["museum"])

	edit.Status = types.StatusApproved
	edit.ReviewedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	assert.Equal(t, "2024-05-01T10:00:00Z", renderArtifactEdit(edit)["time"])
}

func TestRenderProfile(t *testing.T) {
	profile := services.Profile{User: curator, Museums: []types.Museum{orangery}}
	out := renderProfile(profile)
	assert.NotContains(t, out, "headCuratorList")
	assert.Equal(t, []map[string]any{}, out["editsList"])

	profile.HeadCurator = true
	profile.AllMuseums = []types.Museum{orangery}
	out = renderProfile(profile)
	assert.Equal(t, []map[string]any{{"id": orangery.ID, "name": orangery.Name}}, out["headCuratorList"])
}

func TestDecodeRequestAcceptsEmptyValues(t *testing.T) {
	body := `{"editId": 0, "category": "", "action": false, "user": {"username": "", "password": ""}}`
	var req ReviewEditRequest
	require.NoError(t, decodeRequest(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), &req))
	assert.False(t, *req.Action)
	assert.Equal(t, int32(0), *req.EditID)
}

func TestDecodeRequestListsMissingFields(t *testing.T) {
	var req RegisterRequest
	err := decodeRequest(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username": "monet"}`)), &req)
	require.Error(t, err)
	assert.Equal(t, "missing required fields: password, email", err.Error())
}

func TestParseID(t *testing.T) {
	id, err := parseID("2147483647")
	require.NoError(t, err)
	assert.Equal(t, 2147483647, id)

	for _, raw := range []string{"2147483648", "-2147483649", "1.5", "abc", ""} {
		_, err := parseID(raw)
		assert.Error(t, err, raw)
	}
}
