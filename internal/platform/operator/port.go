package operator

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for operator persistence operations
type Repository interface {
	// Create creates a new operator
	Create(ctx context.Context, op *Operator) error

	// GetByID retrieves an operator by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Operator, error)

	// GetByEmail retrieves an operator by email
	GetByEmail(ctx context.Context, email string) (*Operator, error)

	// Update updates an operator
	Update(ctx context.Context, op *Operator) error

	// Exists checks if an operator with the given email exists
	Exists(ctx context.Context, email string) (bool, error)
}
