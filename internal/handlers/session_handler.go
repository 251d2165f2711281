package handlers

import (
	"time"

	"artisan/internal/services"
	"artisan/internal/session"
	apperrors "artisan/pkg/errors"
	"artisan/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler hands out sessions and their bearer tokens.
type SessionHandler struct {
	sessions *session.Manager
	tokens   *services.TokenService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *session.Manager, tokens *services.TokenService) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		tokens:   tokens,
	}
}

// RegisterRoutes registers the public session routes.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/sessions", h.HandleCreateSession)
}

type sessionResponse struct {
	SessionID string    `json:"sessionId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HandleCreateSession starts an anonymous session with an empty cart.
func (h *SessionHandler) HandleCreateSession(c *fiber.Ctx) error {
	s := h.sessions.Create(c.UserContext())

	token, expiresAt, err := h.tokens.Issue(s.ID)
	if err != nil {
		h.sessions.Delete(c.UserContext(), s.ID)
		return response.Error(c, apperrors.Internal("Could not issue session token", err))
	}
	return response.Created(c, sessionResponse{
		SessionID: s.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
