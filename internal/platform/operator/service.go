package operator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/logger"
)

// Service handles operator business logic
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates a new operator service
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.WithField("component", "operator"),
	}
}

// Register registers a new operator account.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*Operator, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	op := &Operator{
		ID:        uuid.New(),
		Email:     email,
		FullName:  strings.TrimSpace(fullName),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := op.ValidateEmail(); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check if operator exists: %w", err)
	}
	if exists {
		return nil, ErrOperatorAlreadyExists
	}

	if err := op.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("failed to create operator: %w", err)
	}

	s.log.Info("operator registered", "operator_id", op.ID, "email", op.Email)
	return op, nil
}

// Login authenticates an operator with email and password.
func (s *Service) Login(ctx context.Context, email, password string) (*Operator, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	op, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrOperatorNotFound) {
			// Don't reveal that the account doesn't exist
			return nil, ErrInvalidPassword
		}
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}

	if err := op.CheckPassword(password); err != nil {
		return nil, err
	}

	op.UpdateLastLogin()
	if err := s.repo.Update(ctx, op); err != nil {
		// Non-critical; the login itself succeeded.
		s.log.Warn("failed to update last login", "operator_id", op.ID, "error", err)
	}

	return op, nil
}

// GetByID retrieves an operator by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Operator, error) {
	return s.repo.GetByID(ctx, id)
}
