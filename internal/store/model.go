package store

import (
	"context"

	"github.com/lafayette53/apiserver/internal/db"
	"github.com/lafayette53/apiserver/internal/gateway"
)

var _ gateway.Model = (*Model)(nil)

// Model is the postgres-backed catalogue gateway. It composes the per-entity
// repositories behind a single handle.
type Model struct {
	*UserRepository
	*MuseumRepository
	*CollectionRepository
	*ArtifactRepository
	*EditRepository

	// db is nil on a Model bound to a transaction.
	db *db.DB
}

// NewModel constructs a Model over an open connection pool.
func NewModel(conn *db.DB) *Model {
	m := newModel(conn)
	m.db = conn
	return m
}

func newModel(h db.Handler) *Model {
	collections := NewCollectionRepository(h)
	return &Model{
		UserRepository:       NewUserRepository(h),
		MuseumRepository:     NewMuseumRepository(h),
		CollectionRepository: collections,
		ArtifactRepository:   NewArtifactRepository(h),
		EditRepository:       NewEditRepository(h, collections),
	}
}

// InTx runs fn against repositories bound to a single transaction. Nested
// calls join the enclosing transaction.
func (m *Model) InTx(ctx context.Context, fn func(tx gateway.Model) error) error {
	if m.db == nil {
		return fn(m)
	}
	return m.db.TransactionContext(ctx, func(tx *db.Tx) error {
		return fn(newModel(tx))
	})
}

// Ping verifies the database is reachable.
func (m *Model) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

// Close releases the connection pool.
func (m *Model) Close() error {
	return m.db.Close()
}
