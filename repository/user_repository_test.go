package repository

import (
	"cafewifi/model"
	"cafewifi/testutil"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestUserRepository_FirstUserIsAdmin(t *testing.T) {
	repo := NewUserRepository(testutil.OpenTestDB(t))
	ctx := context.Background()

	first := &model.User{Email: "ada@example.com", Name: "Ada", Password: "hash"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)
	assert.Equal(t, model.RoleAdmin, first.Role)

	second := &model.User{Email: "bob@example.com", Name: "Bob", Password: "hash"}
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, model.RoleUser, second.Role)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository(testutil.OpenTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Email: "ada@example.com", Name: "Ada", Password: "hash"}))
	err := repo.Create(ctx, &model.User{Email: "ada@example.com", Name: "Other", Password: "hash"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUserRepository_Lookups(t *testing.T) {
	repo := NewUserRepository(testutil.OpenTestDB(t))
	ctx := context.Background()

	u := &model.User{Email: "ada@example.com", Name: "Ada", Password: "hash"}
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
