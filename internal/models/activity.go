package models

import "time"

// Activity types recorded in the audit trail.
const (
	ActivityLogin   = "LOGIN"
	ActivityLogout  = "LOGOUT"
	ActivityCreate  = "CREATE"
	ActivityUpdate  = "UPDATE"
	ActivityDelete  = "DELETE"
	ActivityRestore = "RESTORE"
)

// ActivityLog captures one auditable action. Rows are append-only.
type ActivityLog struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              *uint     `gorm:"index" json:"user_id"`
	ActivityType        string    `gorm:"size:32;not null;index" json:"activity_type"`
	ActivityDescription string    `gorm:"type:text" json:"activity_description"`
	EntityTable         *string   `gorm:"column:table_name;size:64" json:"table_name"`
	RecordID            *uint     `json:"record_id"`
	IPAddress           string    `gorm:"size:64" json:"ip_address"`
	UserAgent           string    `gorm:"size:255" json:"user_agent"`
	CreatedAt           time.Time `gorm:"index" json:"created_at"`
}

// TableName maps the model onto the activity_log table.
func (ActivityLog) TableName() string {
	return "activity_log"
}
