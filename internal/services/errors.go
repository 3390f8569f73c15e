package services

import "errors"

var (
	// ErrInvalidCredentials is returned when a password does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUnauthorized is returned when an authenticated user lacks the
	// authority for an action.
	ErrUnauthorized = errors.New("user is not allowed to perform this action")

	// ErrEditResolved is returned when reviewing an edit that was already
	// approved or rejected.
	ErrEditResolved = errors.New("edit has already been reviewed")

	// ErrNoCollections is returned when an artifact would belong to no collection.
	ErrNoCollections = errors.New("artifact must belong to at least one collection")

	// ErrMuseumMismatch is returned when a referenced entity belongs to a
	// different museum than the request targets.
	ErrMuseumMismatch = errors.New("entity does not belong to the museum")
)
