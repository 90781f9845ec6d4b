package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Zsw0rd/Gambo-web/internal/custody"
	"github.com/Zsw0rd/Gambo-web/internal/identity"
	"github.com/Zsw0rd/Gambo-web/internal/session"
)

// PrincipalKey is the fiber.Ctx local under which SessionAuth stores the
// resolved principal.
const PrincipalKey = "principal"

// SessionAuth validates the bearer session credential and resolves the
// wagering principal. Registered users are looked up so that deleted
// accounts and stale verification flags cannot keep playing on an old
// credential; guest principals carry no repository record.
func SessionAuth(mgr *session.Manager, users identity.Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		tokenStr := strings.TrimSpace(authz[len("Bearer "):])
		claims, err := mgr.Verify(tokenStr)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid session")
		}

		p := custody.Principal{ID: claims.Subject, Kind: claims.Kind}
		if claims.Kind == session.KindUser {
			user, err := users.FindByID(c.UserContext(), claims.Subject)
			if err != nil {
				return fiber.NewError(http.StatusUnauthorized, "session revoked")
			}
			p.Verified = user.Verified
		}

		c.Locals(PrincipalKey, p)
		return c.Next()
	}
}

// PrincipalFrom extracts the principal set by SessionAuth.
func PrincipalFrom(c *fiber.Ctx) (custody.Principal, bool) {
	p, ok := c.Locals(PrincipalKey).(custody.Principal)
	return p, ok
}
