package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"labpipe/internal/model"
	"labpipe/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const uniqueViolation = "23505"

// Create inserts a new user row and returns the stored record.
// A unique violation on email maps to repository.ErrDuplicateEmail.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, full_name, email, role, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, full_name, email, role, password_hash, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.FullName,
		u.Email,
		u.Role,
		u.PasswordHash,
		u.CreatedAt,
	)
	var out model.User
	if err := row.Scan(
		&out.ID,
		&out.FullName,
		&out.Email,
		&out.Role,
		&out.PasswordHash,
		&out.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single user by id.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT id, full_name, email, role, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// FindByEmail fetches a single user by email.
func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `
		SELECT id, full_name, email, role, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserPostgres) scanOne(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.Role,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
