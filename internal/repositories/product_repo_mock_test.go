package repositories_test

import (
	"context"
	"testing"

	"productapi/internal/models"
	"productapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProductRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMockProductRepository()

	a := &models.Product{Name: "A", Description: "first", Price: 1, Quantity: 1}
	b := &models.Product{Name: "B", Description: "second", Price: 2, Quantity: 2}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Product{*a, *b}, all)

	b.Name = "B2"
	require.NoError(t, repo.Save(ctx, b))
	found, ok, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "B2", found.Name)

	require.NoError(t, repo.DeleteByID(ctx, a.ID))
	require.NoError(t, repo.DeleteByID(ctx, a.ID))
	_, ok, err = repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// IDs are never reused after a delete.
	c := &models.Product{Name: "C", Description: "third", Price: 3, Quantity: 3}
	require.NoError(t, repo.Create(ctx, c))
	assert.Equal(t, int64(3), c.ID)
}

func TestNoopTransactor(t *testing.T) {
	called := false
	err := repositories.NoopTransactor{}.WithinTransaction(context.Background(), repositories.TxOptions{ReadOnly: true}, func(ctx context.Context) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}
