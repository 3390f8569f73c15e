package services

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lafayette53/apiserver/internal/mocks"
	"github.com/lafayette53/apiserver/internal/notify"
	"github.com/lafayette53/apiserver/internal/store"
	"github.com/lafayette53/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	curator  = types.User{ID: 1, Username: "monet"}
	visitor  = types.User{ID: 2, Username: "renoir"}
	orangery = types.Museum{ID: 10, Name: "Orangerie", Curator: curator}
	lilies   = types.Collection{ID: 20, Name: "Water Lilies", Museum: orangery}
	fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func newCuration(t *testing.T) (*CurationService, *mocks.Model, *mocks.Notifier) {
	t.Helper()
	model := &mocks.Model{}
	notifier := &mocks.Notifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Return(nil).Maybe()

	svc := NewCurationService(model, notifier, log.New(io.Discard))
	svc.now = func() time.Time { return fixedNow }
	t.Cleanup(func() {
		model.AssertExpectations(t)
	})
	return svc, model, notifier
}

func TestAddCollectionByCuratorAppliesDirectly(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
	model.On("CreateCollection", mock.Anything, mock.MatchedBy(func(c types.Collection) bool {
		return c.Name == "Nymphéas" && c.Museum.ID == orangery.ID
	})).Return(types.Collection{ID: 21, Name: "Nymphéas", Museum: orangery}, nil)

	change, err := svc.AddCollection(context.Background(), curator, orangery.ID, types.Collection{Name: "Nymphéas"})
	require.NoError(t, err)
	assert.False(t, change.Pending())
	assert.Equal(t, 21, change.Entity.ID)
}

func TestAddCollectionByVisitorProposesEdit(t *testing.T) {
	svc, model, notifier := newCuration(t)
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
	model.On("CreateCollectionEdit", mock.Anything, mock.MatchedBy(func(e types.CollectionEdit) bool {
		return e.Action == types.ActionAdd &&
			e.Status == types.StatusPending &&
			e.Proposer.ID == visitor.ID &&
			len(e.Collections) == 0
	})).Return(types.CollectionEdit{
		ID:       7,
		Payload:  types.Collection{Name: "Sketches", Museum: orangery},
		Action:   types.ActionAdd,
		Proposer: visitor,
		Status:   types.StatusPending,
	}, nil)

	change, err := svc.AddCollection(context.Background(), visitor, orangery.ID, types.Collection{Name: "Sketches"})
	require.NoError(t, err)
	require.True(t, change.Pending())
	assert.Equal(t, 7, change.Edit.ID)
	model.AssertNotCalled(t, "CreateCollection", mock.Anything, mock.Anything)

	notifier.AssertCalled(t, "Notify", mock.Anything, mock.MatchedBy(func(e notify.Event) bool {
		return e.Type == notify.EventEditProposed && e.Recipient == curator.Username
	}))
}

func TestAddArtifactRequiresCollections(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)

	_, err := svc.AddArtifact(context.Background(), curator, orangery.ID, types.Artifact{Name: "Bridge"}, nil)
	assert.ErrorIs(t, err, ErrNoCollections)
	model.AssertNotCalled(t, "CreateArtifact", mock.Anything, mock.Anything)
}

func TestAddArtifactUnknownCollectionWritesNothing(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
	model.On("GetCollection", mock.Anything, 99).Return(nil, store.ErrNotFound)

	_, err := svc.AddArtifact(context.Background(), curator, orangery.ID, types.Artifact{Name: "Bridge"}, []int{99})
	assert.ErrorIs(t, err, store.ErrNotFound)
	model.AssertNotCalled(t, "CreateArtifact", mock.Anything, mock.Anything)
	model.AssertNotCalled(t, "CreateArtifactEdit", mock.Anything, mock.Anything)
}

func TestAddArtifactRejectsForeignCollection(t *testing.T) {
	svc, model, _ := newCuration(t)
	other := types.Collection{ID: 30, Museum: types.Museum{ID: 11}}
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
	model.On("GetCollection", mock.Anything, other.ID).Return(other, nil)

	_, err := svc.AddArtifact(context.Background(), curator, orangery.ID, types.Artifact{Name: "Bridge"}, []int{other.ID})
	assert.ErrorIs(t, err, ErrMuseumMismatch)
}

func TestAddArtifactByCuratorLinksCollections(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
	model.On("GetCollection", mock.Anything, lilies.ID).Return(lilies, nil)
	model.On("CreateArtifact", mock.Anything, mock.Anything).
		Return(types.Artifact{ID: 40, Name: "Bridge", Museum: orangery}, nil)
	model.On("AddArtifactCollection", mock.Anything, 40, lilies.ID).Return(nil)

	change, err := svc.AddArtifact(context.Background(), curator, orangery.ID, types.Artifact{Name: "Bridge"}, []int{lilies.ID})
	require.NoError(t, err)
	assert.False(t, change.Pending())
	assert.Equal(t, 40, change.Entity.ID)
}

func TestEditArtifactRejectsArtifactOfAnotherMuseum(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
	model.On("GetCollection", mock.Anything, lilies.ID).Return(lilies, nil)
	model.On("GetArtifact", mock.Anything, 40).Return(types.Artifact{ID: 40, Museum: types.Museum{ID: 11}}, nil)

	_, err := svc.EditArtifact(context.Background(), curator, orangery.ID, types.Artifact{ID: 40}, []int{lilies.ID})
	assert.ErrorIs(t, err, ErrMuseumMismatch)
}

func TestDeleteArtifactByVisitorProposesDeletion(t *testing.T) {
	svc, model, _ := newCuration(t)
	artifact := types.Artifact{ID: 40, Name: "Bridge", Museum: orangery}
	model.On("GetArtifact", mock.Anything, 40).Return(artifact, nil)
	model.On("ListCollectionsByArtifact", mock.Anything, 40).Return([]types.Collection{lilies}, nil)
	model.On("CreateArtifactEdit", mock.Anything, mock.MatchedBy(func(e types.ArtifactEdit) bool {
		return e.Action == types.ActionDelete && e.Payload.ID == 40 && len(e.Collections) == 1
	})).Return(types.ArtifactEdit{ID: 3, Payload: artifact, Action: types.ActionDelete, Status: types.StatusPending}, nil)

	change, err := svc.DeleteArtifact(context.Background(), visitor, 40)
	require.NoError(t, err)
	assert.True(t, change.Pending())
	model.AssertNotCalled(t, "DeleteArtifact", mock.Anything, mock.Anything)
}

func TestDeleteMuseum(t *testing.T) {
	tests := []struct {
		name    string
		user    types.User
		head    bool
		wantErr error
	}{
		{name: "curator", user: curator},
		{name: "head curator", user: visitor, head: true},
		{name: "other user", user: visitor, wantErr: ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, model, _ := newCuration(t)
			model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
			if !orangery.CuratedBy(tt.user) {
				model.On("IsHeadCurator", mock.Anything, tt.user).Return(tt.head, nil)
			}
			if tt.wantErr == nil {
				model.On("DeleteMuseum", mock.Anything, orangery.ID).Return(nil)
			}

			err := svc.DeleteMuseum(context.Background(), tt.user, orangery.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				model.AssertNotCalled(t, "DeleteMuseum", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func pendingArtifactEdit(action types.EditAction) types.ArtifactEdit {
	return types.ArtifactEdit{
		ID:          5,
		Payload:     types.Artifact{Name: "Haystacks", Museum: orangery},
		Action:      action,
		Proposer:    visitor,
		Collections: []types.Collection{lilies},
		Status:      types.StatusPending,
	}
}

func TestReviewApproveAddsArtifact(t *testing.T) {
	svc, model, notifier := newCuration(t)
	model.On("GetArtifactEdit", mock.Anything, 5).Return(pendingArtifactEdit(types.ActionAdd), nil)
	model.On("CreateArtifact", mock.Anything, mock.Anything).
		Return(types.Artifact{ID: 41, Name: "Haystacks", Museum: orangery}, nil)
	model.On("AddArtifactCollection", mock.Anything, 41, lilies.ID).Return(nil)
	model.On("UpdateArtifactEdit", mock.Anything, mock.MatchedBy(func(e types.ArtifactEdit) bool {
		return e.Status == types.StatusApproved && e.ReviewedAt.Equal(fixedNow) && e.Payload.ID == 41
	})).Return(nil)

	edit, err := svc.ReviewArtifactEdit(context.Background(), curator, 5, true)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, edit.Status)

	notifier.AssertCalled(t, "Notify", mock.Anything, mock.MatchedBy(func(e notify.Event) bool {
		return e.Type == notify.EventEditReviewed && e.Recipient == visitor.Username && e.Data["status"] == "approved"
	}))
}

func TestReviewRejectLeavesCatalogueUntouched(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetArtifactEdit", mock.Anything, 5).Return(pendingArtifactEdit(types.ActionDelete), nil)
	model.On("UpdateArtifactEdit", mock.Anything, mock.MatchedBy(func(e types.ArtifactEdit) bool {
		return e.Status == types.StatusRejected && !e.ReviewedAt.IsZero()
	})).Return(nil)

	edit, err := svc.ReviewArtifactEdit(context.Background(), curator, 5, false)
	require.NoError(t, err)
	assert.Equal(t, types.StatusRejected, edit.Status)
	model.AssertNotCalled(t, "DeleteArtifact", mock.Anything, mock.Anything)
}

func TestReviewResolvedEditFails(t *testing.T) {
	svc, model, _ := newCuration(t)
	resolved := pendingArtifactEdit(types.ActionAdd)
	resolved.Status = types.StatusRejected
	model.On("GetArtifactEdit", mock.Anything, 5).Return(resolved, nil)

	_, err := svc.ReviewArtifactEdit(context.Background(), curator, 5, true)
	assert.ErrorIs(t, err, ErrEditResolved)
	model.AssertNotCalled(t, "UpdateArtifactEdit", mock.Anything, mock.Anything)
}

func TestReviewByNonCuratorFails(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetArtifactEdit", mock.Anything, 5).Return(pendingArtifactEdit(types.ActionAdd), nil)

	_, err := svc.ReviewArtifactEdit(context.Background(), visitor, 5, true)
	assert.ErrorIs(t, err, ErrUnauthorized)
	model.AssertNotCalled(t, "CreateArtifact", mock.Anything, mock.Anything)
}

func TestReviewApproveCollectionDeletionStaysPending(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetCollectionEdit", mock.Anything, 8).Return(types.CollectionEdit{
		ID:      8,
		Payload: lilies,
		Action:  types.ActionDelete,
		Status:  types.StatusPending,
	}, nil)
	model.On("DeleteCollection", mock.Anything, lilies.ID).Return(store.ErrUnsupported)

	_, err := svc.ReviewCollectionEdit(context.Background(), curator, 8, true)
	assert.ErrorIs(t, err, store.ErrUnsupported)
	model.AssertNotCalled(t, "UpdateCollectionEdit", mock.Anything, mock.Anything)
}

func TestNotifyFailureDoesNotFailRequest(t *testing.T) {
	model := &mocks.Model{}
	notifier := &mocks.Notifier{}
	notifier.On("Notify", mock.Anything, mock.Anything).Return(assert.AnError)
	svc := NewCurationService(model, notifier, log.New(io.Discard))

	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
	model.On("CreateCollectionEdit", mock.Anything, mock.Anything).
		Return(types.CollectionEdit{ID: 9, Payload: lilies, Status: types.StatusPending}, nil)

	change, err := svc.AddCollection(context.Background(), visitor, orangery.ID, types.Collection{Name: "x"})
	require.NoError(t, err)
	assert.True(t, change.Pending())
	notifier.AssertExpectations(t)
}

// record returns a Run hook that appends name to calls.
func record(calls *[]string, name string) func(mock.Arguments) {
	return func(mock.Arguments) {
		*calls = append(*calls, name)
	}
}

func TestEditCollection(t *testing.T) {
	renamed := types.Collection{ID: lilies.ID, Name: "Nymphéas"}

	t.Run("curator updates directly", func(t *testing.T) {
		svc, model, _ := newCuration(t)
		model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
		model.On("GetCollection", mock.Anything, lilies.ID).Return(lilies, nil)
		model.On("UpdateCollection", mock.Anything, mock.MatchedBy(func(c types.Collection) bool {
			return c.ID == lilies.ID && c.Name == "Nymphéas" && c.Museum.ID == orangery.ID
		})).Return(types.Collection{ID: lilies.ID, Name: "Nymphéas", Museum: orangery}, nil)

		change, err := svc.EditCollection(context.Background(), curator, orangery.ID, renamed)
		require.NoError(t, err)
		assert.False(t, change.Pending())
		assert.Equal(t, "Nymphéas", change.Entity.Name)
		model.AssertNotCalled(t, "CreateCollectionEdit", mock.Anything, mock.Anything)
	})

	t.Run("visitor proposes an edit", func(t *testing.T) {
		svc, model, _ := newCuration(t)
		model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
		model.On("GetCollection", mock.Anything, lilies.ID).Return(lilies, nil)
		model.On("CreateCollectionEdit", mock.Anything, mock.MatchedBy(func(e types.CollectionEdit) bool {
			return e.Action == types.ActionEdit && e.Payload.ID == lilies.ID && e.Proposer.ID == visitor.ID
		})).Return(types.CollectionEdit{
			ID:       12,
			Payload:  types.Collection{ID: lilies.ID, Name: "Nymphéas", Museum: orangery},
			Action:   types.ActionEdit,
			Proposer: visitor,
			Status:   types.StatusPending,
		}, nil)

		change, err := svc.EditCollection(context.Background(), visitor, orangery.ID, renamed)
		require.NoError(t, err)
		require.True(t, change.Pending())
		assert.Equal(t, 12, change.Edit.ID)
		model.AssertNotCalled(t, "UpdateCollection", mock.Anything, mock.Anything)
	})

	t.Run("collection of another museum", func(t *testing.T) {
		svc, model, _ := newCuration(t)
		model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
		model.On("GetCollection", mock.Anything, 30).
			Return(types.Collection{ID: 30, Museum: types.Museum{ID: 11}}, nil)

		_, err := svc.EditCollection(context.Background(), curator, orangery.ID, types.Collection{ID: 30, Name: "x"})
		assert.ErrorIs(t, err, ErrMuseumMismatch)
		model.AssertNotCalled(t, "UpdateCollection", mock.Anything, mock.Anything)
		model.AssertNotCalled(t, "CreateCollectionEdit", mock.Anything, mock.Anything)
	})
}

func TestAddArtifactStopsAtFirstMissingCollection(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
	model.On("GetCollection", mock.Anything, lilies.ID).Return(lilies, nil)
	model.On("GetCollection", mock.Anything, 99).Return(nil, store.ErrNotFound)

	_, err := svc.AddArtifact(context.Background(), curator, orangery.ID, types.Artifact{Name: "Bridge"}, []int{lilies.ID, 99, 22})
	assert.ErrorIs(t, err, store.ErrNotFound)
	model.AssertNotCalled(t, "GetCollection", mock.Anything, 22)
	model.AssertNotCalled(t, "CreateArtifact", mock.Anything, mock.Anything)
	assert.Zero(t, model.Commits+model.Rollbacks)
}

func TestAddArtifactByCuratorRollsBackWhenLinkFails(t *testing.T) {
	svc, model, _ := newCuration(t)
	sketches := types.Collection{ID: 22, Name: "Sketches", Museum: orangery}
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
	model.On("GetCollection", mock.Anything, lilies.ID).Return(lilies, nil)
	model.On("GetCollection", mock.Anything, sketches.ID).Return(sketches, nil)
	model.On("CreateArtifact", mock.Anything, mock.Anything).
		Return(types.Artifact{ID: 40, Name: "Bridge", Museum: orangery}, nil)
	model.On("AddArtifactCollection", mock.Anything, 40, lilies.ID).Return(nil)
	model.On("AddArtifactCollection", mock.Anything, 40, sketches.ID).Return(errors.New("connection reset"))

	_, err := svc.AddArtifact(context.Background(), curator, orangery.ID, types.Artifact{Name: "Bridge"}, []int{lilies.ID, sketches.ID})
	require.Error(t, err)
	assert.Equal(t, 1, model.Rollbacks)
	assert.Zero(t, model.Commits)
}

func TestEditArtifactChecksCollectionsBeforeArtifact(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
	model.On("GetCollection", mock.Anything, 99).Return(nil, store.ErrNotFound)

	_, err := svc.EditArtifact(context.Background(), curator, orangery.ID, types.Artifact{ID: 40}, []int{99})
	assert.ErrorIs(t, err, store.ErrNotFound)
	model.AssertNotCalled(t, "GetArtifact", mock.Anything, mock.Anything)
}

func TestEditArtifactByCuratorRelinksCollections(t *testing.T) {
	svc, model, _ := newCuration(t)
	var calls []string
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil).Run(record(&calls, "museum"))
	model.On("GetCollection", mock.Anything, lilies.ID).Return(lilies, nil).Run(record(&calls, "collection"))
	model.On("GetArtifact", mock.Anything, 40).
		Return(types.Artifact{ID: 40, Name: "Bridge", Museum: orangery}, nil).Run(record(&calls, "artifact"))
	model.On("UpdateArtifact", mock.Anything, mock.MatchedBy(func(a types.Artifact) bool {
		return a.ID == 40 && a.Name == "Japanese Bridge"
	})).Return(types.Artifact{ID: 40, Name: "Japanese Bridge", Museum: orangery}, nil).Run(record(&calls, "update"))
	model.On("RemoveArtifactCollections", mock.Anything, 40).Return(nil).Run(record(&calls, "unlink"))
	model.On("AddArtifactCollection", mock.Anything, 40, lilies.ID).Return(nil).Run(record(&calls, "link"))

	change, err := svc.EditArtifact(context.Background(), curator, orangery.ID, types.Artifact{ID: 40, Name: "Japanese Bridge"}, []int{lilies.ID})
	require.NoError(t, err)
	assert.False(t, change.Pending())
	assert.Equal(t, "Japanese Bridge", change.Entity.Name)
	assert.Equal(t, []string{"museum", "collection", "artifact", "update", "unlink", "link"}, calls)
	assert.Equal(t, 1, model.Commits)
}

func TestEditArtifactByVisitorProposesEdit(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetMuseum", mock.Anything, orangery.ID).Return(orangery, nil)
	model.On("GetCollection", mock.Anything, lilies.ID).Return(lilies, nil)
	model.On("GetArtifact", mock.Anything, 40).Return(types.Artifact{ID: 40, Museum: orangery}, nil)
	model.On("CreateArtifactEdit", mock.Anything, mock.MatchedBy(func(e types.ArtifactEdit) bool {
		return e.Action == types.ActionEdit && e.Payload.ID == 40 && len(e.Collections) == 1
	})).Return(types.ArtifactEdit{ID: 6, Action: types.ActionEdit, Status: types.StatusPending}, nil)

	change, err := svc.EditArtifact(context.Background(), visitor, orangery.ID, types.Artifact{ID: 40, Name: "x"}, []int{lilies.ID})
	require.NoError(t, err)
	assert.True(t, change.Pending())
	model.AssertNotCalled(t, "UpdateArtifact", mock.Anything, mock.Anything)
}

func TestReviewApproveRollsBackWhenLinkFails(t *testing.T) {
	svc, model, _ := newCuration(t)
	model.On("GetArtifactEdit", mock.Anything, 5).Return(pendingArtifactEdit(types.ActionAdd), nil)
	model.On("CreateArtifact", mock.Anything, mock.Anything).
		Return(types.Artifact{ID: 41, Name: "Haystacks", Museum: orangery}, nil)
	model.On("AddArtifactCollection", mock.Anything, 41, lilies.ID).Return(errors.New("connection reset")).Once()

	_, err := svc.ReviewArtifactEdit(context.Background(), curator, 5, true)
	require.ErrorContains(t, err, "connection reset")
	model.AssertNotCalled(t, "UpdateArtifactEdit", mock.Anything, mock.Anything)
	assert.Equal(t, 1, model.Rollbacks)

	// The failed attempt left nothing committed, so approving again succeeds.
	model.On("AddArtifactCollection", mock.Anything, 41, lilies.ID).Return(nil).Once()
	model.On("UpdateArtifactEdit", mock.Anything, mock.MatchedBy(func(e types.ArtifactEdit) bool {
		return e.Status == types.StatusApproved
	})).Return(nil).Once()

	edit, err := svc.ReviewArtifactEdit(context.Background(), curator, 5, true)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, edit.Status)
	assert.Equal(t, 1, model.Commits)
	model.AssertNumberOfCalls(t, "CreateArtifact", 2)
}

func TestReviewApproveEditRelinksArtifact(t *testing.T) {
	svc, model, _ := newCuration(t)
	pending := pendingArtifactEdit(types.ActionEdit)
	pending.Payload.ID = 40
	var calls []string
	model.On("GetArtifactEdit", mock.Anything, 5).Return(pending, nil)
	model.On("UpdateArtifact", mock.Anything, mock.MatchedBy(func(a types.Artifact) bool { return a.ID == 40 })).
		Return(types.Artifact{ID: 40, Name: "Haystacks", Museum: orangery}, nil).Run(record(&calls, "update"))
	model.On("RemoveArtifactCollections", mock.Anything, 40).Return(nil).Run(record(&calls, "unlink"))
	model.On("AddArtifactCollection", mock.Anything, 40, lilies.ID).Return(nil).Run(record(&calls, "link"))
	model.On("UpdateArtifactEdit", mock.Anything, mock.MatchedBy(func(e types.ArtifactEdit) bool {
		return e.Status == types.StatusApproved && e.ReviewedAt.Equal(fixedNow)
	})).Return(nil).Run(record(&calls, "resolve"))

	edit, err := svc.ReviewArtifactEdit(context.Background(), curator, 5, true)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, edit.Status)
	assert.Equal(t, []string{"update", "unlink", "link", "resolve"}, calls)
}

func TestReviewApproveCollectionEdit(t *testing.T) {
	renamed := types.Collection{ID: lilies.ID, Name: "Nymphéas", Museum: orangery}

	tests := []struct {
		name    string
		action  types.EditAction
		payload types.Collection
		setup   func(*mocks.Model)
		wantID  int
	}{
		{
			name:    "add",
			action:  types.ActionAdd,
			payload: types.Collection{Name: "Sketches", Museum: orangery},
			setup: func(m *mocks.Model) {
				m.On("CreateCollection", mock.Anything, mock.Anything).
					Return(types.Collection{ID: 22, Name: "Sketches", Museum: orangery}, nil)
			},
			wantID: 22,
		},
		{
			name:    "edit",
			action:  types.ActionEdit,
			payload: renamed,
			setup: func(m *mocks.Model) {
				m.On("UpdateCollection", mock.Anything, renamed).Return(renamed, nil)
			},
			wantID: lilies.ID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, model, _ := newCuration(t)
			model.On("GetCollectionEdit", mock.Anything, 8).Return(types.CollectionEdit{
				ID:       8,
				Payload:  tt.payload,
				Action:   tt.action,
				Proposer: visitor,
				Status:   types.StatusPending,
			}, nil)
			tt.setup(model)
			model.On("UpdateCollectionEdit", mock.Anything, mock.MatchedBy(func(e types.CollectionEdit) bool {
				return e.Status == types.StatusApproved && e.Payload.ID == tt.wantID
			})).Return(nil)

			edit, err := svc.ReviewCollectionEdit(context.Background(), curator, 8, true)
			require.NoError(t, err)
			assert.Equal(t, types.StatusApproved, edit.Status)
			assert.Equal(t, tt.wantID, edit.Payload.ID)
			assert.Equal(t, 1, model.Commits)
		})
	}
}
