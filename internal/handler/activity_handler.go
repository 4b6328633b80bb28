package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arkan-dev/custodia-api/internal/dto"
	"github.com/arkan-dev/custodia-api/internal/service"
	"github.com/arkan-dev/custodia-api/internal/utils"
)

// ActivityHandler exposes the audit trail listing.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register attaches activity log routes to the router group.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil || limit < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	if limit > 500 {
		limit = 500
	}

	req := dto.ActivityListRequest{
		Limit:        limit,
		ActivityType: strings.ToUpper(strings.TrimSpace(c.Query("type"))),
		Table:        strings.TrimSpace(c.Query("table")),
	}

	entries, err := h.service.ListRecent(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity log")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity log")
	}

	return utils.SendSuccess(c, "activity log retrieved", entries)
}
