package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arkan-dev/custodia-api/internal/models"
)

func TestVersionRepositoryMaxVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVersionRepository(db)
	ctx := context.Background()

	max, err := repo.MaxVersion(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 0, max, "no snapshots yet")

	require.NoError(t, repo.Create(ctx, &models.CustomerVersion{CustomerID: 1, Name: "Alice", VersionNumber: 1}))
	require.NoError(t, repo.Create(ctx, &models.CustomerVersion{CustomerID: 1, Name: "Alice B.", VersionNumber: 2}))
	require.NoError(t, repo.Create(ctx, &models.CustomerVersion{CustomerID: 2, Name: "Bob", VersionNumber: 1}))

	max, err = repo.MaxVersion(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 2, max)

	max, err = repo.MaxVersion(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 1, max)
}

func TestVersionRepositoryListForCustomerJoinsEditor(t *testing.T) {
	db := setupTestDB(t)
	repo := NewVersionRepository(db)
	ctx := context.Background()

	editor := models.User{Username: "jdoe", PasswordHash: "x"}
	require.NoError(t, db.Create(&editor).Error)

	require.NoError(t, repo.Create(ctx, &models.CustomerVersion{CustomerID: 7, Name: "Alice", Address: "1 Main St", Phone: "555-0100", VersionNumber: 1, ChangedBy: ptrUint(editor.ID)}))
	require.NoError(t, repo.Create(ctx, &models.CustomerVersion{CustomerID: 7, Name: "Alice B.", Address: "1 Main St", Phone: "555-0100", VersionNumber: 2}))
	require.NoError(t, repo.Create(ctx, &models.CustomerVersion{CustomerID: 8, Name: "Bob", VersionNumber: 1}))

	rows, err := repo.ListForCustomer(ctx, 7)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, 2, rows[0].VersionNumber, "expected newest version first")
	require.Equal(t, "Alice B.", rows[0].Name)
	require.Nil(t, rows[0].ChangedByUsername, "anonymous edit has no username")

	require.Equal(t, 1, rows[1].VersionNumber)
	require.Equal(t, "Alice", rows[1].Name)
	require.NotNil(t, rows[1].ChangedByUsername)
	require.Equal(t, "jdoe", *rows[1].ChangedByUsername)
}
