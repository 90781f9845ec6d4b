package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Zsw0rd/Gambo-web/internal/config"
	"github.com/Zsw0rd/Gambo-web/internal/custody"
	"github.com/Zsw0rd/Gambo-web/internal/identity"
	"github.com/Zsw0rd/Gambo-web/internal/session"
)

// authHandler serves the action-dispatched authentication endpoint and the
// balance read.
type authHandler struct {
	cfg      config.Config
	users    *identity.Service
	sessions *session.Manager
	gateway  *custody.Gateway
	logger   *slog.Logger
}

type authRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handle dispatches POST /auth on the action field: signup, login, guest or
// logout.
func (h *authHandler) Handle(c *fiber.Ctx) error {
	var req authRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid request body")
	}
	switch req.Action {
	case "signup":
		return h.signup(c, req)
	case "login":
		return h.login(c, req)
	case "guest":
		return h.guest(c)
	case "logout":
		return c.JSON(fiber.Map{"ok": true})
	default:
		return fiber.NewError(http.StatusBadRequest, "unknown action")
	}
}

func (h *authHandler) signup(c *fiber.Ctx, req authRequest) error {
	user, err := h.users.Signup(c.UserContext(), identity.Credentials{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return httpError(err)
	}

	p := custody.Principal{ID: user.ID, Kind: session.KindUser, Verified: user.Verified}
	if err := h.gateway.Provision(c.UserContext(), p, h.cfg.StartingBalance); err != nil {
		return httpError(err)
	}

	token, err := h.sessions.Issue(user.ID, session.KindUser)
	if err != nil {
		return httpError(err)
	}

	h.logger.Info("user signed up", slog.String("user_id", user.ID), slog.String("username", user.Username))
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"user":    userView(user),
		"balance": h.cfg.StartingBalance,
	})
}

func (h *authHandler) login(c *fiber.Ctx, req authRequest) error {
	user, err := h.users.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	p := custody.Principal{ID: user.ID, Kind: session.KindUser, Verified: user.Verified}
	bonusDue, err := h.users.RecordLogin(c.UserContext(), user, time.Now().UTC())
	if err != nil {
		return httpError(err)
	}
	var bonus int64
	if bonusDue {
		if _, err := h.gateway.Award(c.UserContext(), p, h.cfg.DailyBonus); err != nil {
			return httpError(err)
		}
		bonus = h.cfg.DailyBonus
	}

	balance, err := h.gateway.Balance(c.UserContext(), p)
	if err != nil {
		return httpError(err)
	}

	token, err := h.sessions.Issue(user.ID, session.KindUser)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"token":   token,
		"user":    userView(user),
		"balance": balance,
		"bonus":   bonus,
	})
}

func (h *authHandler) guest(c *fiber.Ctx) error {
	p := custody.Principal{ID: uuid.NewString(), Kind: session.KindGuest}
	if err := h.gateway.Provision(c.UserContext(), p, h.cfg.GuestBalance); err != nil {
		return httpError(err)
	}

	token, err := h.sessions.Issue(p.ID, session.KindGuest)
	if err != nil {
		return httpError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"token":   token,
		"guest":   true,
		"balance": h.cfg.GuestBalance,
	})
}

// Balance serves GET /balance for the authenticated principal. Balances only
// move through settled wagers and awards; there is no write counterpart.
func (h *authHandler) Balance(c *fiber.Ctx) error {
	p, err := mustPrincipal(c)
	if err != nil {
		return err
	}
	balance, err := h.gateway.Balance(c.UserContext(), p)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{
		"account": p.AccountCode(),
		"balance": balance,
	})
}

func userView(u identity.User) fiber.Map {
	return fiber.Map{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
		"verified": u.Verified,
	}
}
