package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"rentledger/internal/auth"
)

// requireAuth resolves the bearer token to a user and stores it in the
// request's user context.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return Error(c, fiber.StatusUnauthorized, "unauthorized", "missing bearer token")
	}

	user, err := s.auth.ParseToken(c.UserContext(), strings.TrimSpace(token))
	if err != nil {
		return err
	}

	c.SetUserContext(auth.WithUser(c.UserContext(), user))
	return c.Next()
}
