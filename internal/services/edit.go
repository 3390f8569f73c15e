package services

import (
	"context"
	"fmt"

	"github.com/lafayette53/apiserver/internal/notify"
	"github.com/lafayette53/apiserver/types"
)

// editStore binds the generic review workflow to one edit category.
type editStore[T types.Editable] interface {
	get(ctx context.Context, id int) (types.Edit[T], error)
	create(ctx context.Context, edit types.Edit[T]) (types.Edit[T], error)
	update(ctx context.Context, edit types.Edit[T]) error
	// apply performs the edit's action and returns the edit with its payload
	// id filled in.
	apply(ctx context.Context, edit types.Edit[T]) (types.Edit[T], error)
}

// propose persists a pending edit and notifies the museum curator.
func propose[T types.Editable](
	ctx context.Context,
	s *CurationService,
	store editStore[T],
	action types.EditAction,
	payload T,
	proposer types.User,
	collections []types.Collection,
) (types.Edit[T], error) {
	if collections == nil {
		collections = []types.Collection{}
	}
	edit, err := store.create(ctx, types.Edit[T]{
		Payload:     payload,
		Action:      action,
		Proposer:    proposer,
		Collections: collections,
		Status:      types.StatusPending,
	})
	if err != nil {
		return types.Edit[T]{}, err
	}

	editProposalCounter.WithLabelValues(edit.Category(), string(action)).Inc()
	notifyQuietly(ctx, s.notifier, s.logger, editEvent(notify.EventEditProposed, edit.Museum().Curator.Username, edit))
	return edit, nil
}

// review resolves a pending edit. Only the curator of the edit's museum may
// review it, and an edit is resolved exactly once. The action and the new
// status are written in one transaction, so an edit whose action fails stays
// pending and leaves nothing behind.
func review[T types.Editable](
	ctx context.Context,
	s *CurationService,
	bind func(Model) editStore[T],
	reviewer types.User,
	id int,
	approve bool,
) (types.Edit[T], error) {
	var edit types.Edit[T]
	err := s.model.InTx(ctx, func(tx Model) error {
		store := bind(tx)

		var err error
		edit, err = store.get(ctx, id)
		if err != nil {
			return err
		}
		if edit.Status.Resolved() {
			return ErrEditResolved
		}
		if !edit.Museum().CuratedBy(reviewer) {
			return ErrUnauthorized
		}

		if approve {
			applied, err := store.apply(ctx, edit)
			if err != nil {
				return fmt.Errorf("apply %s %s edit %d: %w", edit.Category(), edit.Action, edit.ID, err)
			}
			edit = applied
			edit.Status = types.StatusApproved
		} else {
			edit.Status = types.StatusRejected
		}
		edit.ReviewedAt = s.now()
		return store.update(ctx, edit)
	})
	if err != nil {
		return types.Edit[T]{}, err
	}

	editReviewCounter.WithLabelValues(edit.Category(), string(edit.Status)).Inc()
	notifyQuietly(ctx, s.notifier, s.logger, editEvent(notify.EventEditReviewed, edit.Proposer.Username, edit))
	return edit, nil
}

func artifactEditsOf(model Model) editStore[types.Artifact] {
	return artifactEdits{model: model}
}

func collectionEditsOf(model Model) editStore[types.Collection] {
	return collectionEdits{model: model}
}

type artifactEdits struct {
	model Model
}

func (e artifactEdits) get(ctx context.Context, id int) (types.ArtifactEdit, error) {
	return e.model.GetArtifactEdit(ctx, id)
}

func (e artifactEdits) create(ctx context.Context, edit types.ArtifactEdit) (types.ArtifactEdit, error) {
	return e.model.CreateArtifactEdit(ctx, edit)
}

func (e artifactEdits) update(ctx context.Context, edit types.ArtifactEdit) error {
	return e.model.UpdateArtifactEdit(ctx, edit)
}

func (e artifactEdits) apply(ctx context.Context, edit types.ArtifactEdit) (types.ArtifactEdit, error) {
	switch edit.Action {
	case types.ActionAdd:
		created, err := createArtifact(ctx, e.model, edit.Payload, edit.Collections)
		if err != nil {
			return edit, err
		}
		edit.Payload = created
		return edit, nil
	case types.ActionEdit:
		updated, err := replaceArtifact(ctx, e.model, edit.Payload, edit.Collections)
		if err != nil {
			return edit, err
		}
		edit.Payload = updated
		return edit, nil
	case types.ActionDelete:
		return edit, e.model.DeleteArtifact(ctx, edit.Payload.ID)
	default:
		return edit, fmt.Errorf("unknown edit action %q", edit.Action)
	}
}

type collectionEdits struct {
	model Model
}

func (e collectionEdits) get(ctx context.Context, id int) (types.CollectionEdit, error) {
	return e.model.GetCollectionEdit(ctx, id)
}

func (e collectionEdits) create(ctx context.Context, edit types.CollectionEdit) (types.CollectionEdit, error) {
	return e.model.CreateCollectionEdit(ctx, edit)
}

func (e collectionEdits) update(ctx context.Context, edit types.CollectionEdit) error {
	return e.model.UpdateCollectionEdit(ctx, edit)
}

func (e collectionEdits) apply(ctx context.Context, edit types.CollectionEdit) (types.CollectionEdit, error) {
	switch edit.Action {
	case types.ActionAdd:
		created, err := e.model.CreateCollection(ctx, edit.Payload)
		if err != nil {
			return edit, err
		}
		edit.Payload = created
		return edit, nil
	case types.ActionEdit:
		updated, err := e.model.UpdateCollection(ctx, edit.Payload)
		if err != nil {
			return edit, err
		}
		edit.Payload = updated
		return edit, nil
	case types.ActionDelete:
		return edit, e.model.DeleteCollection(ctx, edit.Payload.ID)
	default:
		return edit, fmt.Errorf("unknown edit action %q", edit.Action)
	}
}

// createArtifact inserts the artifact and links it to its collections. Callers
// run it inside a transaction.
func createArtifact(ctx context.Context, model Model, artifact types.Artifact, collections []types.Collection) (types.Artifact, error) {
	created, err := model.CreateArtifact(ctx, artifact)
	if err != nil {
		return types.Artifact{}, err
	}
	return created, linkCollections(ctx, model, created.ID, collections)
}

// replaceArtifact updates the artifact and swaps its collection links for the
// given ones. Callers run it inside a transaction.
func replaceArtifact(ctx context.Context, model Model, artifact types.Artifact, collections []types.Collection) (types.Artifact, error) {
	updated, err := model.UpdateArtifact(ctx, artifact)
	if err != nil {
		return types.Artifact{}, err
	}
	if err := model.RemoveArtifactCollections(ctx, updated.ID); err != nil {
		return types.Artifact{}, err
	}
	return updated, linkCollections(ctx, model, updated.ID, collections)
}

func linkCollections(ctx context.Context, model Model, artifactID int, collections []types.Collection) error {
	for _, c := range collections {
		if err := model.AddArtifactCollection(ctx, artifactID, c.ID); err != nil {
			return err
		}
	}
	return nil
}
