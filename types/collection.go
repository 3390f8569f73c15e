package types

// Collection groups artifacts inside a single museum.
type Collection struct {
	// ID is the unique identifier of the collection.
	ID int `json:"id" db:"id"`

	// Name is unique within the owning museum.
	Name string `json:"name" db:"name"`

	// Description is a short summary shown in listings.
	Description string `json:"description" db:"description"`

	// Introduction is the long-form text shown on the collection page.
	Introduction string `json:"introduction" db:"introduction"`

	// Image is the path or URL of the collection's cover image.
	Image string `json:"image" db:"image"`

	// Museum is the museum the collection belongs to.
	Museum Museum `json:"-" db:"-"`
}

// Fields returns the collection attributes keyed by their wire names.
func (c Collection) Fields() map[string]any {
	return map[string]any{
		"id":           c.ID,
		"name":         c.Name,
		"description":  c.Description,
		"introduction": c.Introduction,
		"image":        c.Image,
		"museumID":     c.Museum.ID,
	}
}

// MuseumRef returns the museum whose curator has authority over the collection.
func (c Collection) MuseumRef() Museum {
	return c.Museum
}
