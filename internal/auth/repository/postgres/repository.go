package postgres

import (
	"context"
	"errors"

	"github.com/RochKDev/warranty-manager/db"
	"github.com/RochKDev/warranty-manager/internal/auth/domain"
	apperror "github.com/RochKDev/warranty-manager/internal/errors"
	"github.com/jackc/pgx/v5"
)

const emailConstraint = "uq_users_email"

type PostgresRepository struct {
	conn db.DBTX
}

func NewPostgresRepository(conn db.DBTX) *PostgresRepository {
	return &PostgresRepository{conn: conn}
}

const selectUser = `
	SELECT id, name, email, password_hash, created_at, updated_at
	FROM users
`

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.conn.QueryRow(ctx, selectUser+`WHERE email = $1 LIMIT 1`, email)
	return scanUser(row, "get user by email")
}

func scanUser(row pgx.Row, op string) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewStorage(op, err)
	}
	return &user, nil
}

func (r *PostgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, apperror.NewStorage("check user email", err)
	}
	return exists, nil
}

// Create inserts the user and stores the generated id on it. The unique
// index on email backs the service-level existence check.
func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.conn.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt).Scan(&user.ID)
	if err != nil {
		if db.IsUniqueViolation(err, emailConstraint) {
			return apperror.ErrEmailAlreadyInUse
		}
		return apperror.NewStorage("create user", err)
	}
	return nil
}
