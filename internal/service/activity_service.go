package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arkan-dev/custodia-api/internal/dto"
	"github.com/arkan-dev/custodia-api/internal/models"
	"github.com/arkan-dev/custodia-api/internal/observability"
	"github.com/arkan-dev/custodia-api/internal/repository"
)

// RequestMeta carries the client metadata attached to every audit entry.
type RequestMeta struct {
	IP        string
	UserAgent string
}

// Actor identifies who is performing an operation. UserID is nil for
// unauthenticated callers.
type Actor struct {
	UserID *uint
	Meta   RequestMeta
}

// ActivityEntry captures the details required to persist one audit entry.
type ActivityEntry struct {
	UserID      *uint
	Type        string
	Description string
	Table       *string
	RecordID    *uint
	Meta        RequestMeta
}

// ActivityRecorder records audit entries. Record is fire and forget: a
// failed write must never abort the business operation that triggered it,
// so the method has no error to return.
type ActivityRecorder interface {
	Record(ctx context.Context, entry ActivityEntry)
}

// ActivityService exposes the audit trail.
type ActivityService interface {
	ActivityRecorder
	ListRecent(ctx context.Context, req dto.ActivityListRequest) ([]dto.ActivityResponse, error)
}

// DefaultActivityLimit bounds the activity listing when no limit is given.
const DefaultActivityLimit = 100

type activityService struct {
	repo   repository.ActivityLogRepository
	logger zerolog.Logger
}

// NewActivityService constructs the activity log service.
func NewActivityService(repo repository.ActivityLogRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Record(ctx context.Context, entry ActivityEntry) {
	model := models.ActivityLog{
		UserID:              entry.UserID,
		ActivityType:        entry.Type,
		ActivityDescription: entry.Description,
		EntityTable:         entry.Table,
		RecordID:            entry.RecordID,
		IPAddress:           orUnknown(entry.Meta.IP),
		UserAgent:           orUnknown(entry.Meta.UserAgent),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		observability.AuditWriteFailures().Inc()
		s.logger.Error().
			Err(err).
			Str("activity_type", entry.Type).
			Str("description", entry.Description).
			Msg("failed to persist activity log entry")
	}
}

func (s *activityService) ListRecent(ctx context.Context, req dto.ActivityListRequest) ([]dto.ActivityResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	rows, err := s.repo.ListRecent(ctx, repository.ActivityLogFilter{
		Limit:        limit,
		UserID:       req.UserID,
		ActivityType: req.ActivityType,
		EntityTable:  req.Table,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ActivityResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, dto.NewActivityResponse(row))
	}

	return responses, nil
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
