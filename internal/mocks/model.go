// Package mocks provides testify mocks of the service dependencies.
package mocks

import (
	"context"

	"github.com/lafayette53/apiserver/internal/gateway"
	"github.com/lafayette53/apiserver/internal/notify"
	"github.com/lafayette53/apiserver/types"
	"github.com/stretchr/testify/mock"
)

// Model is a mock of gateway.Model. Transactions run fn against the mock
// itself; Commits and Rollbacks count how each one ended.
type Model struct {
	mock.Mock

	Commits   int
	Rollbacks int
}

var _ gateway.Model = (*Model)(nil)

func (m *Model) InTx(_ context.Context, fn func(tx gateway.Model) error) error {
	if err := fn(m); err != nil {
		m.Rollbacks++
		return err
	}
	m.Commits++
	return nil
}

func (m *Model) GetUserByUsername(ctx context.Context, username string) (types.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(types.User)
	return user, args.Error(1)
}

func (m *Model) CreateUser(ctx context.Context, user types.User) (types.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(types.User)
	return created, args.Error(1)
}

func (m *Model) UpdateUser(ctx context.Context, user types.User) (types.User, error) {
	args := m.Called(ctx, user)
	updated, _ := args.Get(0).(types.User)
	return updated, args.Error(1)
}

func (m *Model) IsHeadCurator(ctx context.Context, user types.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *Model) ListMuseums(ctx context.Context) ([]types.Museum, error) {
	args := m.Called(ctx)
	museums, _ := args.Get(0).([]types.Museum)
	return museums, args.Error(1)
}

func (m *Model) ListMuseumsByCurator(ctx context.Context, userID int) ([]types.Museum, error) {
	args := m.Called(ctx, userID)
	museums, _ := args.Get(0).([]types.Museum)
	return museums, args.Error(1)
}

func (m *Model) GetMuseum(ctx context.Context, id int) (types.Museum, error) {
	args := m.Called(ctx, id)
	museum, _ := args.Get(0).(types.Museum)
	return museum, args.Error(1)
}

func (m *Model) CreateMuseum(ctx context.Context, museum types.Museum) (types.Museum, error) {
	args := m.Called(ctx, museum)
	created, _ := args.Get(0).(types.Museum)
	return created, args.Error(1)
}

func (m *Model) DeleteMuseum(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Model) ListCollectionsByMuseum(ctx context.Context, museumID int) ([]types.Collection, error) {
	args := m.Called(ctx, museumID)
	collections, _ := args.Get(0).([]types.Collection)
	return collections, args.Error(1)
}

func (m *Model) ListCollectionsByArtifact(ctx context.Context, artifactID int) ([]types.Collection, error) {
	args := m.Called(ctx, artifactID)
	collections, _ := args.Get(0).([]types.Collection)
	return collections, args.Error(1)
}

func (m *Model) GetCollection(ctx context.Context, id int) (types.Collection, error) {
	args := m.Called(ctx, id)
	collection, _ := args.Get(0).(types.Collection)
	return collection, args.Error(1)
}

func (m *Model) CreateCollection(ctx context.Context, collection types.Collection) (types.Collection, error) {
	args := m.Called(ctx, collection)
	created, _ := args.Get(0).(types.Collection)
	return created, args.Error(1)
}

func (m *Model) UpdateCollection(ctx context.Context, collection types.Collection) (types.Collection, error) {
	args := m.Called(ctx, collection)
	updated, _ := args.Get(0).(types.Collection)
	return updated, args.Error(1)
}

func (m *Model) DeleteCollection(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Model) ListArtifactsByCollection(ctx context.Context, collectionID int) ([]types.Artifact, error) {
	args := m.Called(ctx, collectionID)
	artifacts, _ := args.Get(0).([]types.Artifact)
	return artifacts, args.Error(1)
}

func (m *Model) GetArtifact(ctx context.Context, id int) (types.Artifact, error) {
	args := m.Called(ctx, id)
	artifact, _ := args.Get(0).(types.Artifact)
	return artifact, args.Error(1)
}

func (m *Model) CreateArtifact(ctx context.Context, artifact types.Artifact) (types.Artifact, error) {
	args := m.Called(ctx, artifact)
	created, _ := args.Get(0).(types.Artifact)
	return created, args.Error(1)
}

func (m *Model) UpdateArtifact(ctx context.Context, artifact types.Artifact) (types.Artifact, error) {
	args := m.Called(ctx, artifact)
	updated, _ := args.Get(0).(types.Artifact)
	return updated, args.Error(1)
}

func (m *Model) DeleteArtifact(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *Model) AddArtifactCollection(ctx context.Context, artifactID, collectionID int) error {
	return m.Called(ctx, artifactID, collectionID).Error(0)
}

func (m *Model) RemoveArtifactCollections(ctx context.Context, artifactID int) error {
	return m.Called(ctx, artifactID).Error(0)
}

func (m *Model) GetArtifactEdit(ctx context.Context, id int) (types.ArtifactEdit, error) {
	args := m.Called(ctx, id)
	edit, _ := args.Get(0).(types.ArtifactEdit)
	return edit, args.Error(1)
}

func (m *Model) ListArtifactEditsByProposer(ctx context.Context, userID int) ([]types.ArtifactEdit, error) {
	args := m.Called(ctx, userID)
	edits, _ := args.Get(0).([]types.ArtifactEdit)
	return edits, args.Error(1)
}

func (m *Model) ListArtifactEditsByMuseum(ctx context.Context, museumID int) ([]types.ArtifactEdit, error) {
	args := m.Called(ctx, museumID)
	edits, _ := args.Get(0).([]types.ArtifactEdit)
	return edits, args.Error(1)
}

func (m *Model) CreateArtifactEdit(ctx context.Context, edit types.ArtifactEdit) (types.ArtifactEdit, error) {
	args := m.Called(ctx, edit)
	created, _ := args.Get(0).(types.ArtifactEdit)
	return created, args.Error(1)
}

func (m *Model) UpdateArtifactEdit(ctx context.Context, edit types.ArtifactEdit) error {
	return m.Called(ctx, edit).Error(0)
}

func (m *Model) GetCollectionEdit(ctx context.Context, id int) (types.CollectionEdit, error) {
	args := m.Called(ctx, id)
	edit, _ := args.Get(0).(types.CollectionEdit)
	return edit, args.Error(1)
}

func (m *Model) ListCollectionEditsByProposer(ctx context.Context, userID int) ([]types.CollectionEdit, error) {
	args := m.Called(ctx, userID)
	edits, _ := args.Get(0).([]types.CollectionEdit)
	return edits, args.Error(1)
}

func (m *Model) ListCollectionEditsByMuseum(ctx context.Context, museumID int) ([]types.CollectionEdit, error) {
	args := m.Called(ctx, museumID)
	edits, _ := args.Get(0).([]types.CollectionEdit)
	return edits, args.Error(1)
}

func (m *Model) CreateCollectionEdit(ctx context.Context, edit types.CollectionEdit) (types.CollectionEdit, error) {
	args := m.Called(ctx, edit)
	created, _ := args.Get(0).(types.CollectionEdit)
	return created, args.Error(1)
}

func (m *Model) UpdateCollectionEdit(ctx context.Context, edit types.CollectionEdit) error {
	return m.Called(ctx, edit).Error(0)
}

// Notifier is a mock of services.Notifier.
type Notifier struct {
	mock.Mock
}

func (n *Notifier) Notify(ctx context.Context, event notify.Event) error {
	return n.Called(ctx, event).Error(0)
}
