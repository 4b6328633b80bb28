package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/arkan-dev/custodia-api/internal/session"
	"github.com/arkan-dev/custodia-api/internal/utils"
)

// AuthConfig configures the Authenticated middleware.
type AuthConfig struct {
	Sessions   session.Store
	JWTSecret  string
	CookieName string
}

// Authenticated guards routes behind a login. Browser clients present the
// session cookie; API clients may present a JWT bearer token instead. On
// success the acting user id, username and session token (if any) are bound
// to the request locals.
func Authenticated(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := strings.TrimSpace(c.Cookies(cfg.CookieName)); token != "" {
			sess, err := cfg.Sessions.Get(c.Context(), token)
			if err == nil {
				c.Locals("user_id", sess.UserID)
				c.Locals("username", sess.Username)
				c.Locals("session_token", sess.Token)
				return c.Next()
			}
			if err != session.ErrSessionNotFound {
				return utils.SendError(c, fiber.StatusInternalServerError, "failed to verify session")
			}
		}

		if bearer := bearerToken(c); bearer != "" {
			userID, username, err := verifyBearerToken(bearer, cfg.JWTSecret)
			if err != nil {
				return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
			}
			c.Locals("user_id", userID)
			c.Locals("username", username)
			return c.Next()
		}

		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}
}

func bearerToken(c *fiber.Ctx) string {
	authorization := c.Get("Authorization")
	const prefix = "Bearer "
	if len(authorization) <= len(prefix) || !strings.EqualFold(authorization[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(authorization[len(prefix):])
}

func verifyBearerToken(tokenString, secret string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("invalid token claims")
	}

	userID, err := subjectFromClaims(claims)
	if err != nil {
		return 0, "", err
	}

	username, _ := claims["username"].(string)
	return userID, username, nil
}

func subjectFromClaims(claims jwt.MapClaims) (uint, error) {
	value, ok := claims["sub"]
	if !ok {
		return 0, fmt.Errorf("missing subject")
	}

	switch v := value.(type) {
	case float64:
		if v < 0 {
			return 0, fmt.Errorf("invalid subject")
		}
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("unsupported subject type")
	}
}
