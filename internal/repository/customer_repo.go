package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/arkan-dev/custodia-api/internal/models"
)

// CustomerRepository exposes persistence helpers for customer records.
//
// Reads and writes that must address a record regardless of its deletion
// state go through Unscoped; the default GORM scope only sees active rows.
type CustomerRepository interface {
	ListActive(ctx context.Context) ([]models.Customer, error)
	ListDeleted(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id uint) (models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository constructs a repository backed by GORM.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) ListActive(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}

	return customers, nil
}

func (r *customerRepository) ListDeleted(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).Unscoped().
		Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}

	return customers, nil
}

// GetByID returns the record whether or not it has been soft deleted.
func (r *customerRepository) GetByID(ctx context.Context, id uint) (models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Unscoped().
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		return models.Customer{}, err
	}

	return customer, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Unscoped().
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

// SoftDelete stamps deleted_at on an active row. Rows that are missing or
// already deleted report gorm.ErrRecordNotFound.
func (r *customerRepository) SoftDelete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Customer{})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Restore clears deleted_at unconditionally, so restoring an already-active
// row is a harmless no-op.
func (r *customerRepository) Restore(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().
		Model(&models.Customer{}).
		Where("id = ?", id).
		Update("deleted_at", nil).
		Error
}
