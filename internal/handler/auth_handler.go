package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/arkan-dev/custodia-api/internal/dto"
	"github.com/arkan-dev/custodia-api/internal/service"
	"github.com/arkan-dev/custodia-api/internal/utils"
)

// AuthHandler wires login and logout endpoints.
type AuthHandler struct {
	service    service.AuthService
	cookieName string
	cookieTTL  time.Duration
	logger     zerolog.Logger
}

// NewAuthHandler constructs the handler. cookieName and cookieTTL control
// the browser session cookie issued on login.
func NewAuthHandler(service service.AuthService, cookieName string, cookieTTL time.Duration, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:    service,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
		logger:     logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches auth routes to the router group.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/logout", h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Login(c.Context(), payload, requestMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid username or password")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "username and password are required")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    response.SessionToken,
		Expires:  time.Now().Add(h.cookieTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SendSuccess(c, "login successful", response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	token := sessionTokenFromContext(c)
	if token == "" {
		token = c.Cookies(h.cookieName)
	}

	if err := h.service.Logout(c.Context(), token, requestMeta(c)); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("logout failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "logout failed")
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return utils.SendSuccess(c, "logout successful", nil)
}
