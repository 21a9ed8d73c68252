package operator_test

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/platform/operator"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/pkg/logger"
)

type memRepo struct {
	byEmail map[string]*operator.Operator
}

func newMemRepo() *memRepo {
	return &memRepo{byEmail: make(map[string]*operator.Operator)}
}

func (r *memRepo) Create(_ context.Context, op *operator.Operator) error {
	cp := *op
	r.byEmail[op.Email] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id uuid.UUID) (*operator.Operator, error) {
	for _, op := range r.byEmail {
		if op.ID == id {
			cp := *op
			return &cp, nil
		}
	}
	return nil, operator.ErrOperatorNotFound
}

func (r *memRepo) GetByEmail(_ context.Context, email string) (*operator.Operator, error) {
	op, ok := r.byEmail[email]
	if !ok {
		return nil, operator.ErrOperatorNotFound
	}
	cp := *op
	return &cp, nil
}

func (r *memRepo) Update(_ context.Context, op *operator.Operator) error {
	cp := *op
	r.byEmail[op.Email] = &cp
	return nil
}

func (r *memRepo) Exists(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func newService() (*operator.Service, *memRepo) {
	repo := newMemRepo()
	return operator.NewService(repo, logger.New("development", io.Discard)), repo
}

func TestService_Register(t *testing.T) {
	svc, repo := newService()

	op, err := svc.Register(context.Background(), "Ops@Example.COM", "hunter2hunter2", "Ada Eze")
	require.NoError(t, err)

	assert.Equal(t, "ops@example.com", op.Email)
	assert.Equal(t, "Ada Eze", op.FullName)
	assert.NotEmpty(t, op.PasswordHash)
	assert.NotEqual(t, "hunter2hunter2", op.PasswordHash)
	assert.Contains(t, repo.byEmail, "ops@example.com")
}

func TestService_Register_Duplicate(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Register(context.Background(), "ops@example.com", "hunter2hunter2", "")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "ops@example.com", "otherpassword", "")
	assert.ErrorIs(t, err, operator.ErrOperatorAlreadyExists)
}

func TestService_Register_Validation(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Register(context.Background(), "not-an-email", "hunter2hunter2", "")
	assert.ErrorIs(t, err, operator.ErrInvalidEmail)

	_, err = svc.Register(context.Background(), "ops@example.com", "short", "")
	assert.ErrorIs(t, err, operator.ErrPasswordTooShort)
}

func TestService_Login(t *testing.T) {
	svc, _ := newService()

	reg, err := svc.Register(context.Background(), "ops@example.com", "hunter2hunter2", "")
	require.NoError(t, err)

	op, err := svc.Login(context.Background(), "ops@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, op.ID)
	assert.NotNil(t, op.LastLoginAt)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Register(context.Background(), "ops@example.com", "hunter2hunter2", "")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ops@example.com", "wrong-password")
	assert.ErrorIs(t, err, operator.ErrInvalidPassword)
}

func TestService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever123")
	assert.ErrorIs(t, err, operator.ErrInvalidPassword)
}
