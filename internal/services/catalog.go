package services

import (
	"context"
	"errors"

	"github.com/lafayette53/apiserver/internal/store"
	"github.com/lafayette53/apiserver/types"
)

// MuseumDetail is a museum with its collections.
type MuseumDetail struct {
	Museum      types.Museum
	Collections []types.Collection
}

// CollectionDetail is a collection with its artifacts.
type CollectionDetail struct {
	Collection types.Collection
	Artifacts  []types.Artifact
}

// ArtifactDetail is an artifact with the collections it belongs to.
type ArtifactDetail struct {
	Artifact    types.Artifact
	Collections []types.Collection
}

// EditView holds exactly one edit of either category.
type EditView struct {
	Artifact   *types.ArtifactEdit
	Collection *types.CollectionEdit
}

// Profile is a user's dashboard.
type Profile struct {
	User types.User

	// Museums are the museums the user curates.
	Museums []types.Museum

	// ArtifactEdits and CollectionEdits were proposed by the user.
	ArtifactEdits   []types.ArtifactEdit
	CollectionEdits []types.CollectionEdit

	// ArtifactActions and CollectionActions are pending edits to the user's
	// museums.
	ArtifactActions   []types.ArtifactEdit
	CollectionActions []types.CollectionEdit

	// HeadCurator is set for head curators, in which case AllMuseums lists
	// every museum.
	HeadCurator bool
	AllMuseums  []types.Museum
}

// CatalogService serves read-only catalogue views.
type CatalogService struct {
	model Model
}

func NewCatalogService(model Model) *CatalogService {
	return &CatalogService{model: model}
}

func (s *CatalogService) ListMuseums(ctx context.Context) ([]types.Museum, error) {
	return s.model.ListMuseums(ctx)
}

func (s *CatalogService) Museum(ctx context.Context, id int) (MuseumDetail, error) {
	museum, err := s.model.GetMuseum(ctx, id)
	if err != nil {
		return MuseumDetail{}, err
	}
	collections, err := s.model.ListCollectionsByMuseum(ctx, museum.ID)
	if err != nil {
		return MuseumDetail{}, err
	}
	return MuseumDetail{Museum: museum, Collections: collections}, nil
}

func (s *CatalogService) Collection(ctx context.Context, id int) (CollectionDetail, error) {
	collection, err := s.model.GetCollection(ctx, id)
	if err != nil {
		return CollectionDetail{}, err
	}
	artifacts, err := s.model.ListArtifactsByCollection(ctx, collection.ID)
	if err != nil {
		return CollectionDetail{}, err
	}
	return CollectionDetail{Collection: collection, Artifacts: artifacts}, nil
}

func (s *CatalogService) Artifact(ctx context.Context, id int) (ArtifactDetail, error) {
	artifact, err := s.model.GetArtifact(ctx, id)
	if err != nil {
		return ArtifactDetail{}, err
	}
	collections, err := s.model.ListCollectionsByArtifact(ctx, artifact.ID)
	if err != nil {
		return ArtifactDetail{}, err
	}
	return ArtifactDetail{Artifact: artifact, Collections: collections}, nil
}

// Edit looks the id up among artifact edits first, then collection edits.
func (s *CatalogService) Edit(ctx context.Context, id int) (EditView, error) {
	artifactEdit, err := s.model.GetArtifactEdit(ctx, id)
	if err == nil {
		return EditView{Artifact: &artifactEdit}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return EditView{}, err
	}

	collectionEdit, err := s.model.GetCollectionEdit(ctx, id)
	if err != nil {
		return EditView{}, err
	}
	return EditView{Collection: &collectionEdit}, nil
}

// Profile assembles the dashboard of an authenticated user.
func (s *CatalogService) Profile(ctx context.Context, user types.User) (Profile, error) {
	profile := Profile{User: user}

	var err error
	if profile.Museums, err = s.model.ListMuseumsByCurator(ctx, user.ID); err != nil {
		return Profile{}, err
	}
	if profile.ArtifactEdits, err = s.model.ListArtifactEditsByProposer(ctx, user.ID); err != nil {
		return Profile{}, err
	}
	if profile.CollectionEdits, err = s.model.ListCollectionEditsByProposer(ctx, user.ID); err != nil {
		return Profile{}, err
	}

	for _, museum := range profile.Museums {
		artifactActions, err := s.model.ListArtifactEditsByMuseum(ctx, museum.ID)
		if err != nil {
			return Profile{}, err
		}
		collectionActions, err := s.model.ListCollectionEditsByMuseum(ctx, museum.ID)
		if err != nil {
			return Profile{}, err
		}
		profile.ArtifactActions = append(profile.ArtifactActions, artifactActions...)
		profile.CollectionActions = append(profile.CollectionActions, collectionActions...)
	}

	if profile.HeadCurator, err = s.model.IsHeadCurator(ctx, user); err != nil {
		return Profile{}, err
	}
	if profile.HeadCurator {
		if profile.AllMuseums, err = s.model.ListMuseums(ctx); err != nil {
			return Profile{}, err
		}
	}
	return profile, nil
}
