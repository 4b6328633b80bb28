package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/arkan-dev/custodia-api/internal/models"
)

// ActivityLogFilter narrows activity log queries.
type ActivityLogFilter struct {
	Limit        int
	UserID       *uint
	ActivityType string
	EntityTable  string
}

// ActivityLogRow is an audit entry joined with the acting user's username.
type ActivityLogRow struct {
	ID                  uint      `json:"id"`
	UserID              *uint     `json:"user_id"`
	Username            *string   `json:"username"`
	ActivityType        string    `json:"activity_type"`
	ActivityDescription string    `json:"activity_description"`
	EntityTable         *string   `gorm:"column:table_name" json:"table_name"`
	RecordID            *uint     `json:"record_id"`
	IPAddress           string    `json:"ip_address"`
	UserAgent           string    `json:"user_agent"`
	CreatedAt           time.Time `json:"created_at"`
}

// ActivityLogRepository persists audit trail events.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	ListRecent(ctx context.Context, filter ActivityLogFilter) ([]ActivityLogRow, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) ListRecent(ctx context.Context, filter ActivityLogFilter) ([]ActivityLogRow, error) {
	query := r.db.WithContext(ctx).
		Table("activity_log").
		Select("activity_log.*, users.username AS username").
		Joins("LEFT JOIN users ON users.id = activity_log.user_id")

	if filter.UserID != nil {
		query = query.Where("activity_log.user_id = ?", *filter.UserID)
	}

	if filter.ActivityType != "" {
		query = query.Where("activity_log.activity_type = ?", filter.ActivityType)
	}

	if filter.EntityTable != "" {
		query = query.Where("activity_log.table_name = ?", filter.EntityTable)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []ActivityLogRow
	err := query.
		Order("activity_log.created_at DESC, activity_log.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
