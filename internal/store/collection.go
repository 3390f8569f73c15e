package store

import (
	"context"

	"github.com/lafayette53/apiserver/internal/db"
	"github.com/lafayette53/apiserver/types"
	"github.com/lib/pq"
)

type collectionRow struct {
	ID           int    `db:"id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	Introduction string `db:"introduction"`
	Image        string `db:"image"`
	MuseumRow
}

func (r collectionRow) collection() types.Collection {
	return types.Collection{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Introduction: r.Introduction,
		Image:        r.Image,
		Museum:       r.museum(),
	}
}

func collections(rows []collectionRow) []types.Collection {
	out := make([]types.Collection, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.collection())
	}
	return out
}

const collectionSelect = `
	SELECT c.id, c.name, c.description, c.introduction, c.image,` + museumColumns + `
	FROM collections c
	JOIN museums m ON m.id = c.museum_id
	JOIN users u ON u.id = m.user_id`

// CollectionRepository handles persistence for collections.
type CollectionRepository struct {
	db db.Handler
}

func NewCollectionRepository(db db.Handler) *CollectionRepository {
	return &CollectionRepository{db: db}
}

func (r *CollectionRepository) ListCollectionsByMuseum(ctx context.Context, museumID int) ([]types.Collection, error) {
	const query = collectionSelect + `
		WHERE c.museum_id = $1
		ORDER BY c.id`
	var rows []collectionRow
	if err := r.db.SelectContext(ctx, &rows, query, museumID); err != nil {
		return nil, mapError(err)
	}
	return collections(rows), nil
}

func (r *CollectionRepository) ListCollectionsByArtifact(ctx context.Context, artifactID int) ([]types.Collection, error) {
	const query = collectionSelect + `
		JOIN artifact_collections ac ON ac.collection_id = c.id
		WHERE ac.artifact_id = $1
		ORDER BY c.id`
	var rows []collectionRow
	if err := r.db.SelectContext(ctx, &rows, query, artifactID); err != nil {
		return nil, mapError(err)
	}
	return collections(rows), nil
}

func (r *CollectionRepository) GetCollection(ctx context.Context, id int) (types.Collection, error) {
	const query = collectionSelect + `
		WHERE c.id = $1`
	var row collectionRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return types.Collection{}, mapError(err)
	}
	return row.collection(), nil
}

// collectionsByID loads the given collections keyed by id. Ids that no
// longer exist are absent from the result.
func (r *CollectionRepository) collectionsByID(ctx context.Context, ids []int64) (map[int]types.Collection, error) {
	out := make(map[int]types.Collection, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	const query = collectionSelect + `
		WHERE c.id = ANY($1)`
	var rows []collectionRow
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(ids)); err != nil {
		return nil, mapError(err)
	}
	for _, row := range rows {
		out[row.ID] = row.collection()
	}
	return out, nil
}

func (r *CollectionRepository) CreateCollection(ctx context.Context, collection types.Collection) (types.Collection, error) {
	const query = `
		INSERT INTO collections (name, description, introduction, image, museum_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		collection.Name,
		collection.Description,
		collection.Introduction,
		collection.Image,
		collection.Museum.ID,
	).Scan(&collection.ID); err != nil {
		return types.Collection{}, mapError(err)
	}
	return collection, nil
}

func (r *CollectionRepository) UpdateCollection(ctx context.Context, collection types.Collection) (types.Collection, error) {
	const query = `
		UPDATE collections
		SET name = $1,
			description = $2,
			introduction = $3,
			image = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		collection.Name,
		collection.Description,
		collection.Introduction,
		collection.Image,
		collection.ID,
	)
	if err != nil {
		return types.Collection{}, mapError(err)
	}
	if err := expectAffected(result); err != nil {
		return types.Collection{}, err
	}
	return collection, nil
}

// DeleteCollection is not implemented. Approving a collection deletion
// therefore always fails.
func (r *CollectionRepository) DeleteCollection(ctx context.Context, id int) error {
	return ErrUnsupported
}
