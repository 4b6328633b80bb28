package dto

import (
	"time"

	"github.com/arkan-dev/custodia-api/internal/models"
	"github.com/arkan-dev/custodia-api/internal/repository"
)

// CustomerPayload carries the mutable customer fields for create and update
// requests. Fields are stored as submitted; absent fields persist empty.
type CustomerPayload struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CustomerResponse serializes a customer record.
type CustomerResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	CreatedAt time.Time  `json:"created_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewCustomerResponse converts a customer model into a DTO.
func NewCustomerResponse(customer models.Customer) CustomerResponse {
	var deletedAt *time.Time
	if customer.DeletedAt.Valid {
		t := customer.DeletedAt.Time
		deletedAt = &t
	}

	return CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Address:   customer.Address,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
		DeletedAt: deletedAt,
	}
}

// CustomerVersionResponse serializes one archived snapshot together with the
// username of whoever made the change that produced it.
type CustomerVersionResponse struct {
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

// NewCustomerVersionResponse converts a joined version row into a DTO.
func NewCustomerVersionResponse(row repository.CustomerVersionRow) CustomerVersionResponse {
	return CustomerVersionResponse{
		ID:                row.ID,
		CustomerID:        row.CustomerID,
		Name:              row.Name,
		Address:           row.Address,
		Phone:             row.Phone,
		VersionNumber:     row.VersionNumber,
		ChangedBy:         row.ChangedBy,
		ChangedByUsername: row.ChangedByUsername,
		CreatedAt:         row.CreatedAt,
	}
}

// CustomerVersionsResponse pairs a customer with its version history.
type CustomerVersionsResponse struct {
	Customer CustomerResponse          `json:"customer"`
	Versions []CustomerVersionResponse `json:"versions"`
}
