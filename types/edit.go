package types

import "time"

// Edit categories accepted by the review endpoint.
const (
	CategoryArtifact   = "artifact"
	CategoryCollection = "collection"
	CategoryMuseum     = "museum"
)

// EditAction is the change an Edit proposes.
type EditAction string

const (
	ActionAdd    EditAction = "add"
	ActionEdit   EditAction = "edit"
	ActionDelete EditAction = "delete"
)

// Label returns the human-readable name used in API responses.
func (a EditAction) Label() string {
	switch a {
	case ActionAdd:
		return "Addition"
	case ActionEdit:
		return "Edit"
	case ActionDelete:
		return "Deletion"
	default:
		return string(a)
	}
}

// ApprovalStatus is the review state of an Edit.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// Label returns the human-readable name used in API responses.
func (s ApprovalStatus) Label() string {
	switch s {
	case StatusPending:
		return "Under review"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return string(s)
	}
}

// Resolved reports whether the status is terminal.
func (s ApprovalStatus) Resolved() bool {
	return s == StatusApproved || s == StatusRejected
}

// Editable is the closed set of entities that can be changed through an Edit.
type Editable interface {
	Artifact | Collection
	MuseumRef() Museum
}

// Edit is a persisted proposal to add, change, or delete an entity.
// It is created pending and resolved exactly once by the curator of the
// entity's museum.
type Edit[T Editable] struct {
	// ID is the unique identifier of the edit within its category.
	ID int `json:"id" db:"id"`

	// Payload is the proposed state of the entity. For deletions it is the
	// entity as it was when the deletion was proposed.
	Payload T `json:"payload"`

	// Action is the change being proposed.
	Action EditAction `json:"action" db:"action"`

	// Proposer is the user who submitted the edit.
	Proposer User `json:"proposer"`

	// Collections lists the collections an artifact should belong to once the
	// edit is applied, in submission order. Always empty for collection edits.
	Collections []Collection `json:"collections"`

	// Status is the review state.
	Status ApprovalStatus `json:"status" db:"status"`

	// ReviewedAt is when the edit was approved or rejected. Zero while pending.
	ReviewedAt time.Time `json:"reviewed_at" db:"reviewed_at"`

	// CreatedAt is when the edit was proposed.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ArtifactEdit is an Edit over an Artifact.
type ArtifactEdit = Edit[Artifact]

// CollectionEdit is an Edit over a Collection.
type CollectionEdit = Edit[Collection]

// Museum returns the museum whose curator may review the edit.
func (e Edit[T]) Museum() Museum {
	return e.Payload.MuseumRef()
}

// Category returns the edit category name of the payload type.
func (e Edit[T]) Category() string {
	switch any(e.Payload).(type) {
	case Artifact:
		return CategoryArtifact
	case Collection:
		return CategoryCollection
	default:
		return ""
	}
}
