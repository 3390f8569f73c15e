package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lafayette53/apiserver/types"
)

// Change reports how a curation request was carried out: either the entity
// was changed directly, or an edit was proposed for the curator to review.
type Change[T types.Editable] struct {
	Entity T
	Edit   *types.Edit[T]
}

// Pending reports whether the change is waiting for review.
func (c Change[T]) Pending() bool {
	return c.Edit != nil
}

// CurationService decides whether a change applies directly or is queued as
// an edit, and runs the review workflow.
type CurationService struct {
	model    Model
	notifier Notifier
	logger   *log.Logger
	now      func() time.Time
}

func NewCurationService(model Model, notifier Notifier, logger *log.Logger) *CurationService {
	return &CurationService{
		model:    model,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// CanMutateDirectly reports whether the user may change the museum's
// collections and artifacts without review.
func CanMutateDirectly(user types.User, museum types.Museum) bool {
	return museum.CuratedBy(user)
}

// AddMuseum creates a museum curated by the user.
func (s *CurationService) AddMuseum(ctx context.Context, user types.User, museum types.Museum) (types.Museum, error) {
	museum.ID = 0
	museum.Curator = user
	return s.model.CreateMuseum(ctx, museum)
}

// DeleteMuseum removes a museum. The curator and any head curator may do so.
func (s *CurationService) DeleteMuseum(ctx context.Context, user types.User, id int) error {
	museum, err := s.model.GetMuseum(ctx, id)
	if err != nil {
		return err
	}
	if !museum.CuratedBy(user) {
		head, err := s.model.IsHeadCurator(ctx, user)
		if err != nil {
			return err
		}
		if !head {
			return ErrUnauthorized
		}
	}
	return s.model.DeleteMuseum(ctx, museum.ID)
}

func (s *CurationService) AddCollection(ctx context.Context, user types.User, museumID int, collection types.Collection) (Change[types.Collection], error) {
	museum, err := s.model.GetMuseum(ctx, museumID)
	if err != nil {
		return Change[types.Collection]{}, err
	}
	collection.ID = 0
	collection.Museum = museum

	if CanMutateDirectly(user, museum) {
		created, err := s.model.CreateCollection(ctx, collection)
		if err != nil {
			return Change[types.Collection]{}, err
		}
		directChangeCounter.WithLabelValues(types.CategoryCollection, string(types.ActionAdd)).Inc()
		return Change[types.Collection]{Entity: created}, nil
	}
	return s.proposeCollection(ctx, types.ActionAdd, collection, user)
}

func (s *CurationService) EditCollection(ctx context.Context, user types.User, museumID int, collection types.Collection) (Change[types.Collection], error) {
	museum, err := s.model.GetMuseum(ctx, museumID)
	if err != nil {
		return Change[types.Collection]{}, err
	}
	current, err := s.model.GetCollection(ctx, collection.ID)
	if err != nil {
		return Change[types.Collection]{}, err
	}
	if current.Museum.ID != museum.ID {
		return Change[types.Collection]{}, ErrMuseumMismatch
	}
	collection.Museum = museum

	if CanMutateDirectly(user, museum) {
		updated, err := s.model.UpdateCollection(ctx, collection)
		if err != nil {
			return Change[types.Collection]{}, err
		}
		directChangeCounter.WithLabelValues(types.CategoryCollection, string(types.ActionEdit)).Inc()
		return Change[types.Collection]{Entity: updated}, nil
	}
	return s.proposeCollection(ctx, types.ActionEdit, collection, user)
}

func (s *CurationService) AddArtifact(ctx context.Context, user types.User, museumID int, artifact types.Artifact, collectionIDs []int) (Change[types.Artifact], error) {
	museum, err := s.model.GetMuseum(ctx, museumID)
	if err != nil {
		return Change[types.Artifact]{}, err
	}
	collections, err := s.resolveCollections(ctx, museum, collectionIDs)
	if err != nil {
		return Change[types.Artifact]{}, err
	}
	artifact.ID = 0
	artifact.Museum = museum

	if CanMutateDirectly(user, museum) {
		var created types.Artifact
		err := s.model.InTx(ctx, func(tx Model) error {
			var err error
			created, err = createArtifact(ctx, tx, artifact, collections)
			return err
		})
		if err != nil {
			return Change[types.Artifact]{}, err
		}
		directChangeCounter.WithLabelValues(types.CategoryArtifact, string(types.ActionAdd)).Inc()
		return Change[types.Artifact]{Entity: created}, nil
	}
	return s.proposeArtifact(ctx, types.ActionAdd, artifact, user, collections)
}

func (s *CurationService) EditArtifact(ctx context.Context, user types.User, museumID int, artifact types.Artifact, collectionIDs []int) (Change[types.Artifact], error) {
	museum, err := s.model.GetMuseum(ctx, museumID)
	if err != nil {
		return Change[types.Artifact]{}, err
	}
	collections, err := s.resolveCollections(ctx, museum, collectionIDs)
	if err != nil {
		return Change[types.Artifact]{}, err
	}
	current, err := s.model.GetArtifact(ctx, artifact.ID)
	if err != nil {
		return Change[types.Artifact]{}, err
	}
	if current.Museum.ID != museum.ID {
		return Change[types.Artifact]{}, ErrMuseumMismatch
	}
	artifact.Museum = museum

	if CanMutateDirectly(user, museum) {
		var updated types.Artifact
		err := s.model.InTx(ctx, func(tx Model) error {
			var err error
			updated, err = replaceArtifact(ctx, tx, artifact, collections)
			return err
		})
		if err != nil {
			return Change[types.Artifact]{}, err
		}
		directChangeCounter.WithLabelValues(types.CategoryArtifact, string(types.ActionEdit)).Inc()
		return Change[types.Artifact]{Entity: updated}, nil
	}
	return s.proposeArtifact(ctx, types.ActionEdit, artifact, user, collections)
}

// DeleteArtifact removes the artifact when the user curates its museum, and
// otherwise proposes the deletion together with the artifact's current
// collections.
func (s *CurationService) DeleteArtifact(ctx context.Context, user types.User, id int) (Change[types.Artifact], error) {
	artifact, err := s.model.GetArtifact(ctx, id)
	if err != nil {
		return Change[types.Artifact]{}, err
	}

	if CanMutateDirectly(user, artifact.Museum) {
		if err := s.model.DeleteArtifact(ctx, artifact.ID); err != nil {
			return Change[types.Artifact]{}, err
		}
		directChangeCounter.WithLabelValues(types.CategoryArtifact, string(types.ActionDelete)).Inc()
		return Change[types.Artifact]{Entity: artifact}, nil
	}

	collections, err := s.model.ListCollectionsByArtifact(ctx, artifact.ID)
	if err != nil {
		return Change[types.Artifact]{}, err
	}
	return s.proposeArtifact(ctx, types.ActionDelete, artifact, user, collections)
}

// ReviewArtifactEdit approves or rejects an artifact edit.
func (s *CurationService) ReviewArtifactEdit(ctx context.Context, reviewer types.User, id int, approve bool) (types.ArtifactEdit, error) {
	return review[types.Artifact](ctx, s, artifactEditsOf, reviewer, id, approve)
}

// ReviewCollectionEdit approves or rejects a collection edit. Approving a
// deletion fails because collections cannot be deleted.
func (s *CurationService) ReviewCollectionEdit(ctx context.Context, reviewer types.User, id int, approve bool) (types.CollectionEdit, error) {
	return review[types.Collection](ctx, s, collectionEditsOf, reviewer, id, approve)
}

func (s *CurationService) proposeArtifact(ctx context.Context, action types.EditAction, artifact types.Artifact, user types.User, collections []types.Collection) (Change[types.Artifact], error) {
	edit, err := propose[types.Artifact](ctx, s, artifactEditsOf(s.model), action, artifact, user, collections)
	if err != nil {
		return Change[types.Artifact]{}, err
	}
	return Change[types.Artifact]{Entity: edit.Payload, Edit: &edit}, nil
}

func (s *CurationService) proposeCollection(ctx context.Context, action types.EditAction, collection types.Collection, user types.User) (Change[types.Collection], error) {
	edit, err := propose[types.Collection](ctx, s, collectionEditsOf(s.model), action, collection, user, nil)
	if err != nil {
		return Change[types.Collection]{}, err
	}
	return Change[types.Collection]{Entity: edit.Payload, Edit: &edit}, nil
}

// resolveCollections loads every listed collection and checks that it belongs
// to the museum. It runs before anything is written.
func (s *CurationService) resolveCollections(ctx context.Context, museum types.Museum, ids []int) ([]types.Collection, error) {
	if len(ids) == 0 {
		return nil, ErrNoCollections
	}
	collections := make([]types.Collection, 0, len(ids))
	for _, id := range ids {
		c, err := s.model.GetCollection(ctx, id)
		if err != nil {
			return nil, err
		}
		if c.Museum.ID != museum.ID {
			return nil, fmt.Errorf("collection %d: %w", id, ErrMuseumMismatch)
		}
		collections = append(collections, c)
	}
	return collections, nil
}
