package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"neuroscent/internal/domain"
)

// UserRepository define el contrato de persistencia para usuarios anonimos.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetBySessionID(ctx context.Context, sessionID string) (domain.User, error)
}

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) Create(ctx context.Context, user domain.User) error {
	const query = `
		INSERT INTO users (id, session_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.SessionID,
		user.CreatedAt,
	)
	return err
}

func (r *PgUserRepository) GetBySessionID(ctx context.Context, sessionID string) (domain.User, error) {
	const query = `
		SELECT id, session_id, created_at
		FROM users
		WHERE session_id = $1
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, query, sessionID).Scan(
		&u.ID,
		&u.SessionID,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, err
	}
	return u, err
}
