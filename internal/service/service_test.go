package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arkan-dev/custodia-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Customer{}, &models.CustomerVersion{}, &models.ActivityLog{}))
	return db
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// recorderStub captures audit entries in memory.
type recorderStub struct {
	entries []ActivityEntry
}

func (r *recorderStub) Record(ctx context.Context, entry ActivityEntry) {
	r.entries = append(r.entries, entry)
}

func (r *recorderStub) byType(activityType string) []ActivityEntry {
	var matched []ActivityEntry
	for _, entry := range r.entries {
		if entry.Type == activityType {
			matched = append(matched, entry)
		}
	}
	return matched
}
