package types

import "time"

// Museum is the top-level catalogue entity.
// The curator owns the right to mutate the museum's collections and artifacts.
type Museum struct {
	// ID is the unique identifier of the museum.
	ID int `json:"id" db:"id"`

	// Name is the unique display name of the museum.
	Name string `json:"name" db:"name"`

	// Description is a short summary shown in listings.
	Description string `json:"description" db:"description"`

	// Introduction is the long-form text shown on the museum page.
	Introduction string `json:"introduction" db:"introduction"`

	// Image is the path or URL of the museum's cover image.
	Image string `json:"image" db:"image"`

	// Curator is the owning user. Only ID and Username are populated on reads.
	Curator User `json:"-" db:"-"`

	// CreatedAt is the timestamp when the museum was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Fields returns the museum attributes keyed by their wire names.
func (m Museum) Fields() map[string]any {
	return map[string]any{
		"id":           m.ID,
		"name":         m.Name,
		"description":  m.Description,
		"introduction": m.Introduction,
		"image":        m.Image,
		"userID":       m.Curator.ID,
	}
}

// CuratedBy reports whether the user is the museum's curator of record.
func (m Museum) CuratedBy(user User) bool {
	return m.Curator.ID != 0 && m.Curator.ID == user.ID
}
