// Package gateway declares the persistence surface the services depend on.
// The postgres store implements it, and so do the test mocks.
package gateway

import (
	"context"

	"github.com/lafayette53/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (types.User, error)
	CreateUser(ctx context.Context, user types.User) (types.User, error)
	UpdateUser(ctx context.Context, user types.User) (types.User, error)
	IsHeadCurator(ctx context.Context, user types.User) (bool, error)
}

// MuseumRepository defines persistence operations for museums.
type MuseumRepository interface {
	ListMuseums(ctx context.Context) ([]types.Museum, error)
	ListMuseumsByCurator(ctx context.Context, userID int) ([]types.Museum, error)
	GetMuseum(ctx context.Context, id int) (types.Museum, error)
	CreateMuseum(ctx context.Context, museum types.Museum) (types.Museum, error)
	DeleteMuseum(ctx context.Context, id int) error
}

// CollectionRepository defines persistence operations for collections.
type CollectionRepository interface {
	ListCollectionsByMuseum(ctx context.Context, museumID int) ([]types.Collection, error)
	ListCollectionsByArtifact(ctx context.Context, artifactID int) ([]types.Collection, error)
	GetCollection(ctx context.Context, id int) (types.Collection, error)
	CreateCollection(ctx context.Context, collection types.Collection) (types.Collection, error)
	UpdateCollection(ctx context.Context, collection types.Collection) (types.Collection, error)
	DeleteCollection(ctx context.Context, id int) error
}

// ArtifactRepository defines persistence operations for artifacts and their
// collection associations.
type ArtifactRepository interface {
	ListArtifactsByCollection(ctx context.Context, collectionID int) ([]types.Artifact, error)
	GetArtifact(ctx context.Context, id int) (types.Artifact, error)
	CreateArtifact(ctx context.Context, artifact types.Artifact) (types.Artifact, error)
	UpdateArtifact(ctx context.Context, artifact types.Artifact) (types.Artifact, error)
	DeleteArtifact(ctx context.Context, id int) error
	AddArtifactCollection(ctx context.Context, artifactID, collectionID int) error
	RemoveArtifactCollections(ctx context.Context, artifactID int) error
}

// EditRepository defines persistence operations for proposed edits.
type EditRepository interface {
	GetArtifactEdit(ctx context.Context, id int) (types.ArtifactEdit, error)
	ListArtifactEditsByProposer(ctx context.Context, userID int) ([]types.ArtifactEdit, error)
	ListArtifactEditsByMuseum(ctx context.Context, museumID int) ([]types.ArtifactEdit, error)
	CreateArtifactEdit(ctx context.Context, edit types.ArtifactEdit) (types.ArtifactEdit, error)
	UpdateArtifactEdit(ctx context.Context, edit types.ArtifactEdit) error

	GetCollectionEdit(ctx context.Context, id int) (types.CollectionEdit, error)
	ListCollectionEditsByProposer(ctx context.Context, userID int) ([]types.CollectionEdit, error)
	ListCollectionEditsByMuseum(ctx context.Context, museumID int) ([]types.CollectionEdit, error)
	CreateCollectionEdit(ctx context.Context, edit types.CollectionEdit) (types.CollectionEdit, error)
	UpdateCollectionEdit(ctx context.Context, edit types.CollectionEdit) error
}

// Model is the catalogue gateway every service depends on.
type Model interface {
	UserRepository
	MuseumRepository
	CollectionRepository
	ArtifactRepository
	EditRepository

	// InTx runs fn against a Model bound to one transaction. The writes fn
	// makes are committed when it returns nil and rolled back otherwise.
	InTx(ctx context.Context, fn func(tx Model) error) error
}
