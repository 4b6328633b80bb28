package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/arkan-dev/custodia-api/internal/models"
)

// CustomerVersionRow is a version snapshot joined with the editor's username.
// Username is nil when the update was anonymous or the user was removed.
type CustomerVersionRow struct {
	ID                uint      `json:"id"`
	CustomerID        uint      `json:"customer_id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	Phone             string    `json:"phone"`
	VersionNumber     int       `json:"version_number"`
	ChangedBy         *uint     `json:"changed_by"`
	ChangedByUsername *string   `json:"changed_by_username"`
	CreatedAt         time.Time `json:"created_at"`
}

// VersionRepository persists immutable customer snapshots.
type VersionRepository interface {
	Create(ctx context.Context, version *models.CustomerVersion) error
	MaxVersion(ctx context.Context, customerID uint) (int, error)
	ListForCustomer(ctx context.Context, customerID uint) ([]CustomerVersionRow, error)
}

type versionRepository struct {
	db *gorm.DB
}

// NewVersionRepository constructs the version archive repository.
func NewVersionRepository(db *gorm.DB) VersionRepository {
	return &versionRepository{db: db}
}

func (r *versionRepository) Create(ctx context.Context, version *models.CustomerVersion) error {
	return r.db.WithContext(ctx).Create(version).Error
}

// MaxVersion returns the highest version number recorded for the customer,
// or zero when no snapshots exist yet.
func (r *versionRepository) MaxVersion(ctx context.Context, customerID uint) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&models.CustomerVersion{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}

	return max, nil
}

func (r *versionRepository) ListForCustomer(ctx context.Context, customerID uint) ([]CustomerVersionRow, error) {
	var rows []CustomerVersionRow
	err := r.db.WithContext(ctx).
		Table("customer_versions").
		Select("customer_versions.*, users.username AS changed_by_username").
		Joins("LEFT JOIN users ON users.id = customer_versions.changed_by").
		Where("customer_versions.customer_id = ?", customerID).
		Order("customer_versions.version_number DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
