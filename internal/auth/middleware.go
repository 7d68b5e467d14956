package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Moussassoss/citizens-complaints/internal/session"
	apperrors "github.com/Moussassoss/citizens-complaints/pkg/util/errorutil"
)

const sessionKey = "auth_session"

// AuthMiddleware turns bearer tokens into session handles.
type AuthMiddleware struct {
	tokens *TokenManager
	store  session.Store
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, store session.Store) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, store: store}
}

// Handle enforces a well-formed token on protected routes. Whether the slot
// behind it still holds an admin is decided downstream.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}
	sess, err := m.sessionFromHeader(authHeader)
	if err != nil {
		return err
	}
	c.Locals(sessionKey, sess)
	return c.Next()
}

// Attach binds a session when a valid token is present and lets the request
// through otherwise.
func (m *AuthMiddleware) Attach(c *fiber.Ctx) error {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		if sess, err := m.sessionFromHeader(authHeader); err == nil {
			c.Locals(sessionKey, sess)
		}
	}
	return c.Next()
}

func (m *AuthMiddleware) sessionFromHeader(header string) (*session.Session, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	return session.New(m.store, claims.SessionID), nil
}

// SessionFromContext returns the caller's session handle, or nil.
func SessionFromContext(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionKey).(*session.Session)
	return sess
}
