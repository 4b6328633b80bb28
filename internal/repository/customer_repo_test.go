package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arkan-dev/custodia-api/internal/models"
)

func TestCustomerRepositoryListsPartitionRecords(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	first := models.Customer{Name: "Alice", Address: "1 Main St", Phone: "555-0100"}
	second := models.Customer{Name: "Bob", Address: "2 Side St", Phone: "555-0101"}
	third := models.Customer{Name: "Carol", Address: "3 High St", Phone: "555-0102"}
	require.NoError(t, repo.Create(ctx, &first))
	require.NoError(t, repo.Create(ctx, &second))
	require.NoError(t, repo.Create(ctx, &third))

	require.NoError(t, repo.SoftDelete(ctx, second.ID))

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "Carol", active[0].Name, "expected newest record first")
	require.Equal(t, "Alice", active[1].Name)
	for _, customer := range active {
		require.False(t, customer.DeletedAt.Valid)
	}

	deleted, err := repo.ListDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	require.Equal(t, "Bob", deleted[0].Name)
	require.True(t, deleted[0].DeletedAt.Valid)
}

func TestCustomerRepositoryGetByIDSeesDeletedRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	customer := models.Customer{Name: "Alice", Address: "1 Main St", Phone: "555-0100"}
	require.NoError(t, repo.Create(ctx, &customer))
	require.NoError(t, repo.SoftDelete(ctx, customer.ID))

	found, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", found.Name)
	require.True(t, found.DeletedAt.Valid)

	_, err = repo.GetByID(ctx, 9999)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCustomerRepositorySoftDeleteOnlyStampsActiveRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	customer := models.Customer{Name: "Alice", Address: "1 Main St", Phone: "555-0100"}
	require.NoError(t, repo.Create(ctx, &customer))

	require.NoError(t, repo.SoftDelete(ctx, customer.ID))

	err := repo.SoftDelete(ctx, customer.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound), "second delete should see no active row")

	err = repo.SoftDelete(ctx, 9999)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCustomerRepositoryRestoreIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	customer := models.Customer{Name: "Alice", Address: "1 Main St", Phone: "555-0100"}
	require.NoError(t, repo.Create(ctx, &customer))
	require.NoError(t, repo.SoftDelete(ctx, customer.ID))

	require.NoError(t, repo.Restore(ctx, customer.ID))

	restored, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	require.False(t, restored.DeletedAt.Valid)
	require.Equal(t, "Alice", restored.Name)
	require.Equal(t, "1 Main St", restored.Address)
	require.Equal(t, "555-0100", restored.Phone)

	// restoring an already-active row is a harmless no-op
	require.NoError(t, repo.Restore(ctx, customer.ID))

	again, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	require.False(t, again.DeletedAt.Valid)
}

func TestCustomerRepositoryUpdateFieldsOverwritesRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	customer := models.Customer{Name: "Alice", Address: "1 Main St", Phone: "555-0100"}
	require.NoError(t, repo.Create(ctx, &customer))

	updates := map[string]interface{}{
		"name":    "Alice B.",
		"address": "9 New Rd",
		"phone":   "555-0199",
	}
	require.NoError(t, repo.UpdateFields(ctx, customer.ID, updates))

	updated, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice B.", updated.Name)
	require.Equal(t, "9 New Rd", updated.Address)
	require.Equal(t, "555-0199", updated.Phone)
	require.Equal(t, customer.ID, updated.ID)
}
