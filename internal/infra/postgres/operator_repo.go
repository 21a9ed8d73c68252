package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/platform/operator"
)

// OperatorRepository implements the repository interface using PostgreSQL
type OperatorRepository struct {
	pool *pgxpool.Pool
}

// NewOperatorRepository creates a new PostgreSQL operator repository
func NewOperatorRepository(pool *pgxpool.Pool) *OperatorRepository {
	return &OperatorRepository{pool: pool}
}

var _ operator.Repository = (*OperatorRepository)(nil)

// Create creates a new operator in the database
func (r *OperatorRepository) Create(ctx context.Context, op *operator.Operator) error {
	if err := op.Validate(); err != nil {
		return fmt.Errorf("invalid operator: %w", err)
	}

	query := `
		INSERT INTO operators (id, email, full_name, password_hash, created_at, updated_at, last_login_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		op.ID,
		op.Email,
		op.FullName,
		op.PasswordHash,
		op.CreatedAt,
		op.UpdatedAt,
		op.LastLoginAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return operator.ErrOperatorAlreadyExists
		}
		return fmt.Errorf("failed to create operator: %w", err)
	}

	return nil
}

// GetByID retrieves an operator by ID
func (r *OperatorRepository) GetByID(ctx context.Context, id uuid.UUID) (*operator.Operator, error) {
	query := `
		SELECT id, email, full_name, password_hash, created_at, updated_at, last_login_at
		FROM operators
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail retrieves an operator by email
func (r *OperatorRepository) GetByEmail(ctx context.Context, email string) (*operator.Operator, error) {
	query := `
		SELECT id, email, full_name, password_hash, created_at, updated_at, last_login_at
		FROM operators
		WHERE email = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *OperatorRepository) scanOne(row pgx.Row) (*operator.Operator, error) {
	var op operator.Operator
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&op.ID,
		&op.Email,
		&op.FullName,
		&op.PasswordHash,
		&op.CreatedAt,
		&op.UpdatedAt,
		&lastLoginAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, operator.ErrOperatorNotFound
		}
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}

	if lastLoginAt.Valid {
		op.LastLoginAt = &lastLoginAt.Time
	}

	return &op, nil
}

// Update updates an operator
func (r *OperatorRepository) Update(ctx context.Context, op *operator.Operator) error {
	if err := op.Validate(); err != nil {
		return fmt.Errorf("invalid operator: %w", err)
	}

	query := `
		UPDATE operators
		SET email = $2, full_name = $3, password_hash = $4, updated_at = $5, last_login_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		op.ID,
		op.Email,
		op.FullName,
		op.PasswordHash,
		op.UpdatedAt,
		op.LastLoginAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update operator: %w", err)
	}

	if result.RowsAffected() == 0 {
		return operator.ErrOperatorNotFound
	}

	return nil
}

// Exists checks if an operator with the given email exists
func (r *OperatorRepository) Exists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM operators WHERE email = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check operator existence: %w", err)
	}

	return exists, nil
}

// isUniqueViolation checks if the error is a unique constraint violation
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "unique constraint") ||
		strings.Contains(errStr, "23505")
}
