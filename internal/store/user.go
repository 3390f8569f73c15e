package store

import (
	"context"
	"time"

	"github.com/lafayette53/apiserver/internal/db"
	"github.com/lafayette53/apiserver/types"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db db.Handler
}

func NewUserRepository(db db.Handler) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (types.User, error) {
	const query = `
		SELECT id, username, email, role, password_hash, created_at, updated_at
		FROM users
		WHERE username = $1`
	var user types.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return types.User{}, mapError(err)
	}
	return user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user types.User) (types.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = types.RoleCurator
	}

	const query = `
		INSERT INTO users (username, email, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.Role,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID); err != nil {
		return types.User{}, mapError(err)
	}
	return user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user types.User) (types.User, error) {
	user.UpdatedAt = time.Now()

	const query = `
		UPDATE users
		SET username = $1,
			email = $2,
			role = $3,
			password_hash = $4,
			updated_at = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Username,
		user.Email,
		user.Role,
		user.PasswordHash,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return types.User{}, mapError(err)
	}
	if err := expectAffected(result); err != nil {
		return types.User{}, err
	}
	return user, nil
}

// IsHeadCurator reads the user's current role rather than trusting the
// role carried by the caller.
func (r *UserRepository) IsHeadCurator(ctx context.Context, user types.User) (bool, error) {
	const query = `SELECT role FROM users WHERE id = $1`
	var role string
	if err := r.db.GetContext(ctx, &role, query, user.ID); err != nil {
		return false, mapError(err)
	}
	return role == types.RoleHeadCurator, nil
}
