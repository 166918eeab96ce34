package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mistatas/soporte-service/internal/api/dto"
	"github.com/mistatas/soporte-service/internal/auth"
	"github.com/mistatas/soporte-service/internal/domain"
	"github.com/mistatas/soporte-service/internal/service"
	"github.com/mistatas/soporte-service/pkg/util/errorutil"
)

// UsersHandler serves coordinator account endpoints.
type UsersHandler struct {
	service *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{service: authService}
}

// Register POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	req, err := parseCredentials(c)
	if err != nil {
		return err
	}
	user, token, expiresAt, err := h.service.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if err.Error() == "email already registered" {
			return errorutil.NewConflict("email already registered", nil)
		}
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sessionResponse(user, token, expiresAt)})
}

// Login POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	req, err := parseCredentials(c)
	if err != nil {
		return err
	}
	user, token, expiresAt, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if err.Error() == "invalid credentials" {
			return errorutil.NewUnauthorized("invalid credentials")
		}
		return err
	}
	return c.JSON(fiber.Map{"data": sessionResponse(user, token, expiresAt)})
}

// Logout POST /auth/logout. Revokes the presented token.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Claims == nil {
		return errorutil.NewUnauthorized("user required")
	}
	expiresAt := principal.Claims.ExpiresAt.Time
	if err := h.service.Logout(c.UserContext(), principal.TokenID, expiresAt); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me GET /auth/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return errorutil.NewUnauthorized("user required")
	}
	return c.JSON(fiber.Map{"data": userResponse(principal.User)})
}

func parseCredentials(c *fiber.Ctx) (dto.CredentialsRequest, error) {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return req, errorutil.NewValidationError("invalid payload", nil)
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return req, errorutil.NewValidationError("email and password required", nil)
	}
	return req, nil
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func sessionResponse(user *domain.User, token string, expiresAt time.Time) dto.SessionResponse {
	return dto.SessionResponse{
		User:      userResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}
}
