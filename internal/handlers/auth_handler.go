package handlers

import (
	"artisan/internal/middleware"
	"artisan/internal/models"
	"artisan/internal/services"
	apperrors "artisan/pkg/errors"
	"artisan/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles the session identity: sign in, sign up, sign out and
// the profile.
type AuthHandler struct{}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// RegisterRoutes registers the authentication and profile routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/logout", h.HandleLogout)

	router.Get("/profile", h.HandleGetProfile)
	router.Patch("/profile", h.HandleUpdateProfile)
}

// HandleRegister signs the session in as a newly created account.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var data models.RegisterData
	if err := c.BodyParser(&data); err != nil {
		return response.Error(c, apperrors.BadRequest("Invalid request body", err))
	}

	user, err := middleware.CurrentSession(c).Identity.Register(c.UserContext(), data)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, user)
}

// HandleLogin signs the session in. Any well-formed credentials succeed.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperrors.BadRequest("Invalid request body", err))
	}

	user, err := middleware.CurrentSession(c).Identity.Login(c.UserContext(), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}

func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	middleware.CurrentSession(c).Identity.Logout(c.UserContext())
	return response.Success(c, fiber.Map{"message": "Signed out"})
}

func (h *AuthHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, ok := middleware.CurrentSession(c).Identity.Current()
	if !ok {
		return response.Error(c, services.ErrNoIdentity)
	}
	return response.Success(c, user)
}

// HandleUpdateProfile merges the supplied fields into the signed-in user.
func (h *AuthHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var update models.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return response.Error(c, apperrors.BadRequest("Invalid request body", err))
	}

	user, err := middleware.CurrentSession(c).Identity.UpdateProfile(c.UserContext(), update)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user)
}
