package types

// Artifact is a catalogued object. It belongs to one museum and to
// one or more of that museum's collections.
type Artifact struct {
	// ID is the unique identifier of the artifact.
	ID int `json:"id" db:"id"`

	// Name is unique within the owning museum.
	Name string `json:"name" db:"name"`

	// Description is a short summary shown in listings.
	Description string `json:"description" db:"description"`

	// Introduction is the long-form text shown on the artifact page.
	Introduction string `json:"introduction" db:"introduction"`

	// Image is the path or URL of the artifact's photograph.
	Image string `json:"image" db:"image"`

	// Museum is the museum the artifact belongs to.
	Museum Museum `json:"-" db:"-"`
}

// Fields returns the artifact attributes keyed by their wire names.
func (a Artifact) Fields() map[string]any {
	return map[string]any{
		"id":           a.ID,
		"name":         a.Name,
		"description":  a.Description,
		"introduction": a.Introduction,
		"image":        a.Image,
		"museumID":     a.Museum.ID,
	}
}

// MuseumRef returns the museum whose curator has authority over the artifact.
func (a Artifact) MuseumRef() Museum {
	return a.Museum
}
