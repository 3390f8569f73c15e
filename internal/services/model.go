package services

import "github.com/lafayette53/apiserver/internal/gateway"

type (
	UserRepository       = gateway.UserRepository
	MuseumRepository     = gateway.MuseumRepository
	CollectionRepository = gateway.CollectionRepository
	ArtifactRepository   = gateway.ArtifactRepository
	EditRepository       = gateway.EditRepository

	// Model is the catalogue gateway every service depends on.
	Model = gateway.Model
)
