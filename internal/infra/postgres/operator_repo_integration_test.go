//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/internal/platform/operator"
	"github.com/Orange-Invent-House-Ltd/orm-web-sub000/testutil/testdb"
)

var testDB *testdb.TestDB

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	testDB, err = testdb.NewTestDB(ctx)
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}

	code := m.Run()

	testDB.Close(ctx)
	if code != 0 {
		panic("tests failed")
	}
}

func setupTest(t *testing.T) (*OperatorRepository, context.Context) {
	ctx := context.Background()
	require.NoError(t, testDB.Reset(ctx))

	return NewOperatorRepository(testDB.Pool), ctx
}

func newTestOperator(t *testing.T, email string) *operator.Operator {
	op := &operator.Operator{
		ID:        uuid.New(),
		Email:     email,
		FullName:  "Test Operator",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, op.SetPassword("hunter2hunter2"))
	return op
}

func TestOperatorRepository_CreateAndGet(t *testing.T) {
	repo, ctx := setupTest(t)

	op := newTestOperator(t, "ops@example.com")
	require.NoError(t, repo.Create(ctx, op))

	byID, err := repo.GetByID(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, op.Email, byID.Email)
	assert.Equal(t, op.FullName, byID.FullName)
	assert.Nil(t, byID.LastLoginAt)

	byEmail, err := repo.GetByEmail(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, op.ID, byEmail.ID)
}

func TestOperatorRepository_DuplicateEmail(t *testing.T) {
	repo, ctx := setupTest(t)

	require.NoError(t, repo.Create(ctx, newTestOperator(t, "ops@example.com")))

	err := repo.Create(ctx, newTestOperator(t, "ops@example.com"))
	assert.ErrorIs(t, err, operator.ErrOperatorAlreadyExists)
}

func TestOperatorRepository_NotFound(t *testing.T) {
	repo, ctx := setupTest(t)

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, operator.ErrOperatorNotFound)

	_, err = repo.GetByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, operator.ErrOperatorNotFound)
}

func TestOperatorRepository_Update(t *testing.T) {
	repo, ctx := setupTest(t)

	op := newTestOperator(t, "ops@example.com")
	require.NoError(t, repo.Create(ctx, op))

	op.UpdateLastLogin()
	require.NoError(t, repo.Update(ctx, op))

	got, err := repo.GetByID(ctx, op.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.WithinDuration(t, *op.LastLoginAt, *got.LastLoginAt, time.Second)
}

func TestOperatorRepository_UpdateMissing(t *testing.T) {
	repo, ctx := setupTest(t)

	op := newTestOperator(t, "ops@example.com")
	err := repo.Update(ctx, op)
	assert.ErrorIs(t, err, operator.ErrOperatorNotFound)
}

func TestOperatorRepository_Exists(t *testing.T) {
	repo, ctx := setupTest(t)

	exists, err := repo.Exists(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(ctx, newTestOperator(t, "ops@example.com")))

	exists, err = repo.Exists(ctx, "ops@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}
