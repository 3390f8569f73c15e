package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lafayette53/apiserver/internal/db"
	"github.com/lafayette53/apiserver/types"
	"github.com/lib/pq"
)

type editRow struct {
	ID               int           `db:"id"`
	Action           string        `db:"action"`
	Status           string        `db:"status"`
	TargetID         sql.NullInt64 `db:"target_id"`
	Name             string        `db:"name"`
	Description      string        `db:"description"`
	Introduction     string        `db:"introduction"`
	Image            string        `db:"image"`
	ReviewedAt       sql.NullTime  `db:"reviewed_at"`
	CreatedAt        time.Time     `db:"created_at"`
	ProposerID       int           `db:"proposer_id"`
	ProposerUsername string        `db:"proposer_username"`
	ProposerEmail    string        `db:"proposer_email"`
	MuseumRow
}

type artifactEditRow struct {
	editRow
	CollectionIDs pq.Int64Array `db:"collection_ids"`
}

func (r editRow) proposer() types.User {
	return types.User{
		ID:       r.ProposerID,
		Username: r.ProposerUsername,
		Email:    r.ProposerEmail,
	}
}

func (r artifactEditRow) edit(byID map[int]types.Collection) types.ArtifactEdit {
	collections := make([]types.Collection, 0, len(r.CollectionIDs))
	for _, id := range r.CollectionIDs {
		if c, ok := byID[int(id)]; ok {
			collections = append(collections, c)
		}
	}
	return types.ArtifactEdit{
		ID: r.ID,
		Payload: types.Artifact{
			ID:           int(r.TargetID.Int64),
			Name:         r.Name,
			Description:  r.Description,
			Introduction: r.Introduction,
			Image:        r.Image,
			Museum:       r.museum(),
		},
		Action:      types.EditAction(r.Action),
		Proposer:    r.proposer(),
		Collections: collections,
		Status:      types.ApprovalStatus(r.Status),
		ReviewedAt:  r.ReviewedAt.Time,
		CreatedAt:   r.CreatedAt,
	}
}

func (r editRow) collectionEdit() types.CollectionEdit {
	return types.CollectionEdit{
		ID: r.ID,
		Payload: types.Collection{
			ID:           int(r.TargetID.Int64),
			Name:         r.Name,
			Description:  r.Description,
			Introduction: r.Introduction,
			Image:        r.Image,
			Museum:       r.museum(),
		},
		Action:      types.EditAction(r.Action),
		Proposer:    r.proposer(),
		Collections: []types.Collection{},
		Status:      types.ApprovalStatus(r.Status),
		ReviewedAt:  r.ReviewedAt.Time,
		CreatedAt:   r.CreatedAt,
	}
}

const artifactEditSelect = `
	SELECT e.id, e.action, e.status, e.artifact_id AS target_id,
		e.name, e.description, e.introduction, e.image, e.collection_ids,
		e.reviewed_at, e.created_at,
		p.id AS proposer_id, p.username AS proposer_username, p.email AS proposer_email,` + museumColumns + `
	FROM artifact_edits e
	JOIN users p ON p.id = e.proposer_id
	JOIN museums m ON m.id = e.museum_id
	JOIN users u ON u.id = m.user_id`

const collectionEditSelect = `
	SELECT e.id, e.action, e.status, e.collection_id AS target_id,
		e.name, e.description, e.introduction, e.image,
		e.reviewed_at, e.created_at,
		p.id AS proposer_id, p.username AS proposer_username, p.email AS proposer_email,` + museumColumns + `
	FROM collection_edits e
	JOIN users p ON p.id = e.proposer_id
	JOIN museums m ON m.id = e.museum_id
	JOIN users u ON u.id = m.user_id`

// EditRepository handles persistence for artifact and collection edits.
type EditRepository struct {
	db          db.Handler
	collections *CollectionRepository
}

func NewEditRepository(db db.Handler, collections *CollectionRepository) *EditRepository {
	return &EditRepository{db: db, collections: collections}
}

func (r *EditRepository) GetArtifactEdit(ctx context.Context, id int) (types.ArtifactEdit, error) {
	edits, err := r.selectArtifactEdits(ctx, artifactEditSelect+`
		WHERE e.id = $1`, id)
	if err != nil {
		return types.ArtifactEdit{}, err
	}
	if len(edits) == 0 {
		return types.ArtifactEdit{}, ErrNotFound
	}
	return edits[0], nil
}

func (r *EditRepository) ListArtifactEditsByProposer(ctx context.Context, userID int) ([]types.ArtifactEdit, error) {
	return r.selectArtifactEdits(ctx, artifactEditSelect+`
		WHERE e.proposer_id = $1
		ORDER BY e.created_at DESC, e.id DESC`, userID)
}

// ListArtifactEditsByMuseum returns the pending artifact edits awaiting the
// museum curator's review.
func (r *EditRepository) ListArtifactEditsByMuseum(ctx context.Context, museumID int) ([]types.ArtifactEdit, error) {
	return r.selectArtifactEdits(ctx, artifactEditSelect+`
		WHERE e.museum_id = $1 AND e.status = 'pending'
		ORDER BY e.created_at, e.id`, museumID)
}

func (r *EditRepository) selectArtifactEdits(ctx context.Context, query string, args ...any) ([]types.ArtifactEdit, error) {
	var rows []artifactEditRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, mapError(err)
	}

	var ids []int64
	for _, row := range rows {
		ids = append(ids, row.CollectionIDs...)
	}
	byID, err := r.collections.collectionsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]types.ArtifactEdit, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.edit(byID))
	}
	return out, nil
}

func (r *EditRepository) CreateArtifactEdit(ctx context.Context, edit types.ArtifactEdit) (types.ArtifactEdit, error) {
	edit.CreatedAt = time.Now()
	ids := make([]int64, 0, len(edit.Collections))
	for _, c := range edit.Collections {
		ids = append(ids, int64(c.ID))
	}

	const query = `
		INSERT INTO artifact_edits (
			action, status, proposer_id, museum_id, artifact_id,
			name, description, introduction, image, collection_ids, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		edit.Action,
		edit.Status,
		edit.Proposer.ID,
		edit.Payload.Museum.ID,
		nullID(edit.Payload.ID),
		edit.Payload.Name,
		edit.Payload.Description,
		edit.Payload.Introduction,
		edit.Payload.Image,
		pq.Array(ids),
		edit.CreatedAt,
	).Scan(&edit.ID); err != nil {
		return types.ArtifactEdit{}, mapError(err)
	}
	return edit, nil
}

// UpdateArtifactEdit persists the review outcome and the id of the artifact
// the edit targets, which is only known after an addition is applied.
func (r *EditRepository) UpdateArtifactEdit(ctx context.Context, edit types.ArtifactEdit) error {
	const query = `
		UPDATE artifact_edits
		SET status = $1,
			reviewed_at = $2,
			artifact_id = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(
		ctx,
		query,
		edit.Status,
		nullTime(edit.ReviewedAt),
		nullID(edit.Payload.ID),
		edit.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(result)
}

func (r *EditRepository) GetCollectionEdit(ctx context.Context, id int) (types.CollectionEdit, error) {
	const query = collectionEditSelect + `
		WHERE e.id = $1`
	var row editRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return types.CollectionEdit{}, mapError(err)
	}
	return row.collectionEdit(), nil
}

func (r *EditRepository) ListCollectionEditsByProposer(ctx context.Context, userID int) ([]types.CollectionEdit, error) {
	const query = collectionEditSelect + `
		WHERE e.proposer_id = $1
		ORDER BY e.created_at DESC, e.id DESC`
	return r.selectCollectionEdits(ctx, query, userID)
}

// ListCollectionEditsByMuseum returns the pending collection edits awaiting
// the museum curator's review.
func (r *EditRepository) ListCollectionEditsByMuseum(ctx context.Context, museumID int) ([]types.CollectionEdit, error) {
	const query = collectionEditSelect + `
		WHERE e.museum_id = $1 AND e.status = 'pending'
		ORDER BY e.created_at, e.id`
	return r.selectCollectionEdits(ctx, query, museumID)
}

func (r *EditRepository) selectCollectionEdits(ctx context.Context, query string, args ...any) ([]types.CollectionEdit, error) {
	var rows []editRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, mapError(err)
	}
	out := make([]types.CollectionEdit, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.collectionEdit())
	}
	return out, nil
}

func (r *EditRepository) CreateCollectionEdit(ctx context.Context, edit types.CollectionEdit) (types.CollectionEdit, error) {
	edit.CreatedAt = time.Now()

	const query = `
		INSERT INTO collection_edits (
			action, status, proposer_id, museum_id, collection_id,
			name, description, introduction, image, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		edit.Action,
		edit.Status,
		edit.Proposer.ID,
		edit.Payload.Museum.ID,
		nullID(edit.Payload.ID),
		edit.Payload.Name,
		edit.Payload.Description,
		edit.Payload.Introduction,
		edit.Payload.Image,
		edit.CreatedAt,
	).Scan(&edit.ID); err != nil {
		return types.CollectionEdit{}, mapError(err)
	}
	return edit, nil
}

func (r *EditRepository) UpdateCollectionEdit(ctx context.Context, edit types.CollectionEdit) error {
	const query = `
		UPDATE collection_edits
		SET status = $1,
			reviewed_at = $2,
			collection_id = $3
		WHERE id = $4`
	result, err := r.db.ExecContext(
		ctx,
		query,
		edit.Status,
		nullTime(edit.ReviewedAt),
		nullID(edit.Payload.ID),
		edit.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(result)
}

func nullID(id int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(id), Valid: id != 0}
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
