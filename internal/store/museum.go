package store

import (
	"context"
	"time"

	"github.com/lafayette53/apiserver/internal/db"
	"github.com/lafayette53/apiserver/types"
)

// MuseumRow is the flattened museum and curator columns shared by every
// query that hydrates a museum reference.
type MuseumRow struct {
	MuseumID           int       `db:"museum_id"`
	MuseumName         string    `db:"museum_name"`
	MuseumDescription  string    `db:"museum_description"`
	MuseumIntroduction string    `db:"museum_introduction"`
	MuseumImage        string    `db:"museum_image"`
	MuseumCreatedAt    time.Time `db:"museum_created_at"`
	CuratorID          int       `db:"curator_id"`
	CuratorUsername    string    `db:"curator_username"`
}

const museumColumns = `
	m.id AS museum_id,
	m.name AS museum_name,
	m.description AS museum_description,
	m.introduction AS museum_introduction,
	m.image AS museum_image,
	m.created_at AS museum_created_at,
	u.id AS curator_id,
	u.username AS curator_username`

func (r MuseumRow) museum() types.Museum {
	return types.Museum{
		ID:           r.MuseumID,
		Name:         r.MuseumName,
		Description:  r.MuseumDescription,
		Introduction: r.MuseumIntroduction,
		Image:        r.MuseumImage,
		CreatedAt:    r.MuseumCreatedAt,
		Curator: types.User{
			ID:       r.CuratorID,
			Username: r.CuratorUsername,
		},
	}
}

func museums(rows []MuseumRow) []types.Museum {
	out := make([]types.Museum, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.museum())
	}
	return out
}

// MuseumRepository handles persistence for museums.
type MuseumRepository struct {
	db db.Handler
}

func NewMuseumRepository(db db.Handler) *MuseumRepository {
	return &MuseumRepository{db: db}
}

func (r *MuseumRepository) ListMuseums(ctx context.Context) ([]types.Museum, error) {
	const query = `
		SELECT` + museumColumns + `
		FROM museums m
		JOIN users u ON u.id = m.user_id
		ORDER BY m.id`
	var rows []MuseumRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, mapError(err)
	}
	return museums(rows), nil
}

func (r *MuseumRepository) ListMuseumsByCurator(ctx context.Context, userID int) ([]types.Museum, error) {
	const query = `
		SELECT` + museumColumns + `
		FROM museums m
		JOIN users u ON u.id = m.user_id
		WHERE m.user_id = $1
		ORDER BY m.id`
	var rows []MuseumRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, mapError(err)
	}
	return museums(rows), nil
}

func (r *MuseumRepository) GetMuseum(ctx context.Context, id int) (types.Museum, error) {
	const query = `
		SELECT` + museumColumns + `
		FROM museums m
		JOIN users u ON u.id = m.user_id
		WHERE m.id = $1`
	var row MuseumRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return types.Museum{}, mapError(err)
	}
	return row.museum(), nil
}

func (r *MuseumRepository) CreateMuseum(ctx context.Context, museum types.Museum) (types.Museum, error) {
	museum.CreatedAt = time.Now()

	const query = `
		INSERT INTO museums (name, description, introduction, image, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		museum.Name,
		museum.Description,
		museum.Introduction,
		museum.Image,
		museum.Curator.ID,
		museum.CreatedAt,
	).Scan(&museum.ID); err != nil {
		return types.Museum{}, mapError(err)
	}
	return museum, nil
}

// DeleteMuseum removes the museum together with its collections, artifacts,
// and edits.
func (r *MuseumRepository) DeleteMuseum(ctx context.Context, id int) error {
	const query = `DELETE FROM museums WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(result)
}
