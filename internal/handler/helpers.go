package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arkan-dev/custodia-api/internal/middleware"
	"github.com/arkan-dev/custodia-api/internal/service"
)

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Params(key))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func userIDFromContext(c *fiber.Ctx) *uint {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

func sessionTokenFromContext(c *fiber.Ctx) string {
	if v := c.Locals("session_token"); v != nil {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}

// requestMeta captures client metadata for the audit trail. Fiber's IP()
// already honors trusted proxy headers, but a bare X-Forwarded-For is still
// preferred when present so entries survive unconfigured proxies.
func requestMeta(c *fiber.Ctx) service.RequestMeta {
	ip := c.IP()
	if forwarded := strings.TrimSpace(c.Get("X-Forwarded-For")); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			ip = first
		}
	}

	return service.RequestMeta{
		IP:        ip,
		UserAgent: c.Get("User-Agent"),
	}
}

func actorFromContext(c *fiber.Ctx) service.Actor {
	return service.Actor{
		UserID: userIDFromContext(c),
		Meta:   requestMeta(c),
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
