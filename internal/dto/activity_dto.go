package dto

import (
	"time"

	"github.com/arkan-dev/custodia-api/internal/repository"
)

// ActivityListRequest filters the activity log listing.
type ActivityListRequest struct {
	Limit        int
	ActivityType string
	Table        string
	UserID       *uint
}

// ActivityResponse serializes one audit entry joined with the acting user.
type ActivityResponse struct {
	ID          uint      `json:"id"`
	UserID      *uint     `json:"user_id"`
	Username    *string   `json:"username"`
	Type        string    `json:"activity_type"`
	Description string    `json:"activity_description"`
	Table       *string   `json:"table_name"`
	RecordID    *uint     `json:"record_id"`
	IPAddress   string    `json:"ip_address"`
	UserAgent   string    `json:"user_agent"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewActivityResponse converts a joined audit row into a DTO.
func NewActivityResponse(row repository.ActivityLogRow) ActivityResponse {
	return ActivityResponse{
		ID:          row.ID,
		UserID:      row.UserID,
		Username:    row.Username,
		Type:        row.ActivityType,
		Description: row.ActivityDescription,
		Table:       row.EntityTable,
		RecordID:    row.RecordID,
		IPAddress:   row.IPAddress,
		UserAgent:   row.UserAgent,
		CreatedAt:   row.CreatedAt,
	}
}
