package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Moussassoss/citizens-complaints/internal/api/dto"
	"github.com/Moussassoss/citizens-complaints/internal/auth"
	"github.com/Moussassoss/citizens-complaints/internal/service"
	"github.com/Moussassoss/citizens-complaints/internal/session"
	apperrors "github.com/Moussassoss/citizens-complaints/pkg/util/errorutil"
)

// AuthHandler exposes staff login, logout and session endpoints.
type AuthHandler struct {
	authService *service.AuthService
	tokens      *auth.TokenManager
	sessions    session.Store
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, tokens *auth.TokenManager, sessions session.Store) *AuthHandler {
	return &AuthHandler{authService: authService, tokens: tokens, sessions: sessions}
}

// Login handles POST /api/v1/auth/login. A caller that already holds a
// session keeps its slot; otherwise a new one is allocated.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	fields := map[string]string{}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "is required"
	}
	if req.Password == "" {
		fields["password"] = "is required"
	}
	if len(fields) > 0 {
		return apperrors.NewFieldValidationError(fields)
	}

	sess := auth.SessionFromContext(c)
	if sess == nil {
		sess = session.New(h.sessions, uuid.NewString())
	}
	admin, err := h.authService.Login(c.UserContext(), sess, req.Email, req.Password)
	if err != nil {
		return err
	}

	token, exp, err := h.tokens.GenerateToken(sess.Key(), admin.ID)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{Token: token, ExpiresAt: exp, Admin: *admin}})
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), auth.SessionFromContext(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Session handles GET /api/v1/auth/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	admin, err := h.authService.CurrentSession(c.UserContext(), auth.SessionFromContext(c))
	if err != nil {
		return err
	}
	if admin == nil {
		return apperrors.NewUnauthorized("not signed in")
	}
	return c.JSON(fiber.Map{"data": admin})
}
