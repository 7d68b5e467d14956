package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Moussassoss/citizens-complaints/internal/domain"
	apperrors "github.com/Moussassoss/citizens-complaints/pkg/util/errorutil"
)

const adminKey = "auth_admin"

// RequireSignedIn rejects requests whose session slot is empty and exposes
// the signed-in admin to later handlers.
func RequireSignedIn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := SessionFromContext(c)
		if sess == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		admin, err := sess.Current(c.UserContext())
		if err != nil {
			return apperrors.MapError(err)
		}
		if admin == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		c.Locals(adminKey, admin)
		return c.Next()
	}
}

// AdminFromContext retrieves the admin loaded by RequireSignedIn.
func AdminFromContext(c *fiber.Ctx) (*domain.AdminPublic, bool) {
	admin, ok := c.Locals(adminKey).(*domain.AdminPublic)
	return admin, ok && admin != nil
}
