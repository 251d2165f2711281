package middleware

import (
	"strings"

	"artisan/internal/services"
	"artisan/internal/session"
	apperrors "artisan/pkg/errors"
	"artisan/pkg/logger"
	"artisan/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const sessionLocal = "session"

// SessionRequired is a Fiber middleware that resolves the bearer token to a
// live session.
func SessionRequired(tokens *services.TokenService, sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, apperrors.Unauthorized("Authorization header is required", nil))
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return response.Error(c, apperrors.Unauthorized("Authorization header format must be 'Bearer <token>'", nil))
		}

		sessionID, err := tokens.Validate(parts[1])
		if err != nil {
			logger.Debug("session token rejected: %v", err)
			return response.Error(c, apperrors.Unauthorized("Invalid or expired token", err))
		}

		s, err := sessions.Resume(c.UserContext(), sessionID)
		if err != nil {
			return response.Error(c, err)
		}

		// Store the session in Fiber context for subsequent handlers
		c.Locals(sessionLocal, s)
		return c.Next()
	}
}

// CurrentSession returns the session stored by SessionRequired.
func CurrentSession(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(sessionLocal).(*session.Session)
	return s
}
