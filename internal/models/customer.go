package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a single customer record. Deletion is logical: DeletedAt is
// stamped instead of removing the row, so deleted records stay recoverable.
type Customer struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	Phone     string         `gorm:"size:64" json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// TableName keeps the legacy singular table name.
func (Customer) TableName() string {
	return "customer"
}

// CustomerVersion is an immutable snapshot of a customer's field values as
// they were immediately before an update was applied. Versions are never
// mutated or removed, even after the parent customer is soft deleted.
type CustomerVersion struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CustomerID    uint      `gorm:"index;not null" json:"customer_id"`
	Name          string    `gorm:"size:255" json:"name"`
	Address       string    `gorm:"size:255" json:"address"`
	Phone         string    `gorm:"size:64" json:"phone"`
	VersionNumber int       `gorm:"not null" json:"version_number"`
	ChangedBy     *uint     `gorm:"index" json:"changed_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName maps the snapshot model onto the customer_versions table.
func (CustomerVersion) TableName() string {
	return "customer_versions"
}
