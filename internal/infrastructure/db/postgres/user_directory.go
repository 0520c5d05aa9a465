package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baechuer/identity-service/internal/domain"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// UserDirectory is the Postgres-backed auth.UserDirectory.
type UserDirectory struct {
	db *sql.DB
}

func NewUserDirectory(db *sql.DB) *UserDirectory {
	return &UserDirectory{db: db}
}

const selectUser = `
SELECT id, first_name, last_name, email, password_hash, created_at
FROM users
`

func scanUser(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.FirstName,
		&ur.LastName,
		&ur.Email,
		&ur.PasswordHash,
		&ur.CreatedAt,
	)
	return ur, err
}

func (r *UserDirectory) find(ctx context.Context, q string, arg string) (domain.User, bool, error) {
	ur, err := scanUser(r.db.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, domain.ErrPersistence(err)
	}
	return ur.toDomain(), true, nil
}

// FindByEmail matches the stored (already lowercased) email exactly.
func (r *UserDirectory) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	if email == "" {
		return domain.User{}, false, nil
	}
	return r.find(ctx, selectUser+"WHERE email = $1 LIMIT 1;", email)
}

func (r *UserDirectory) FindByID(ctx context.Context, id string) (domain.User, bool, error) {
	if id == "" {
		return domain.User{}, false, nil
	}
	// Non-UUID ids can never match; skip the round trip and the cast error.
	if _, err := uuid.Parse(id); err != nil {
		return domain.User{}, false, nil
	}
	return r.find(ctx, selectUser+"WHERE id = $1 LIMIT 1;", id)
}

func (r *UserDirectory) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}

	const q = `
INSERT INTO users (id, first_name, last_name, email, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at;
`
	err := r.db.QueryRowContext(ctx, q,
		u.ID, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.CreatedAt,
	).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrPersistence(err)
	}

	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

