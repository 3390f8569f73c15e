package store

import (
	"context"

	"github.com/lafayette53/apiserver/internal/db"
	"github.com/lafayette53/apiserver/types"
)

type artifactRow struct {
	ID           int    `db:"id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	Introduction string `db:"introduction"`
	Image        string `db:"image"`
	MuseumRow
}

func (r artifactRow) artifact() types.Artifact {
	return types.Artifact{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Introduction: r.Introduction,
		Image:        r.Image,
		Museum:       r.museum(),
	}
}

const artifactSelect = `
	SELECT a.id, a.name, a.description, a.introduction, a.image,` + museumColumns + `
	FROM artifacts a
	JOIN museums m ON m.id = a.museum_id
	JOIN users u ON u.id = m.user_id`

// ArtifactRepository handles persistence for artifacts and their
// collection associations.
type ArtifactRepository struct {
	db db.Handler
}

func NewArtifactRepository(db db.Handler) *ArtifactRepository {
	return &ArtifactRepository{db: db}
}

func (r *ArtifactRepository) ListArtifactsByCollection(ctx context.Context, collectionID int) ([]types.Artifact, error) {
	const query = artifactSelect + `
		JOIN artifact_collections ac ON ac.artifact_id = a.id
		WHERE ac.collection_id = $1
		ORDER BY a.id`
	var rows []artifactRow
	if err := r.db.SelectContext(ctx, &rows, query, collectionID); err != nil {
		return nil, mapError(err)
	}
	out := make([]types.Artifact, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.artifact())
	}
	return out, nil
}

func (r *ArtifactRepository) GetArtifact(ctx context.Context, id int) (types.Artifact, error) {
	const query = artifactSelect + `
		WHERE a.id = $1`
	var row artifactRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return types.Artifact{}, mapError(err)
	}
	return row.artifact(), nil
}

func (r *ArtifactRepository) CreateArtifact(ctx context.Context, artifact types.Artifact) (types.Artifact, error) {
	const query = `
		INSERT INTO artifacts (name, description, introduction, image, museum_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		artifact.Name,
		artifact.Description,
		artifact.Introduction,
		artifact.Image,
		artifact.Museum.ID,
	).Scan(&artifact.ID); err != nil {
		return types.Artifact{}, mapError(err)
	}
	return artifact, nil
}

func (r *ArtifactRepository) UpdateArtifact(ctx context.Context, artifact types.Artifact) (types.Artifact, error) {
	const query = `
		UPDATE artifacts
		SET name = $1,
			description = $2,
			introduction = $3,
			image = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		artifact.Name,
		artifact.Description,
		artifact.Introduction,
		artifact.Image,
		artifact.ID,
	)
	if err != nil {
		return types.Artifact{}, mapError(err)
	}
	if err := expectAffected(result); err != nil {
		return types.Artifact{}, err
	}
	return artifact, nil
}

// DeleteArtifact removes the artifact. Its collection associations are
// removed by the foreign key cascade.
func (r *ArtifactRepository) DeleteArtifact(ctx context.Context, id int) error {
	const query = `DELETE FROM artifacts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(result)
}

func (r *ArtifactRepository) AddArtifactCollection(ctx context.Context, artifactID, collectionID int) error {
	const query = `
		INSERT INTO artifact_collections (artifact_id, collection_id)
		VALUES ($1, $2)`
	_, err := r.db.ExecContext(ctx, query, artifactID, collectionID)
	return mapError(err)
}

func (r *ArtifactRepository) RemoveArtifactCollections(ctx context.Context, artifactID int) error {
	const query = `DELETE FROM artifact_collections WHERE artifact_id = $1`
	_, err := r.db.ExecContext(ctx, query, artifactID)
	return mapError(err)
}
