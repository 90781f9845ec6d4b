package routes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Zsw0rd/Gambo-web/internal/config"
	"github.com/Zsw0rd/Gambo-web/internal/custody"
	"github.com/Zsw0rd/Gambo-web/internal/games"
	"github.com/Zsw0rd/Gambo-web/internal/games/blackjack"
	"github.com/Zsw0rd/Gambo-web/internal/games/dice"
	"github.com/Zsw0rd/Gambo-web/internal/games/mines"
	"github.com/Zsw0rd/Gambo-web/internal/games/poker"
	"github.com/Zsw0rd/Gambo-web/internal/games/roulette"
	"github.com/Zsw0rd/Gambo-web/internal/identity"
	"github.com/Zsw0rd/Gambo-web/internal/ledger"
	"github.com/Zsw0rd/Gambo-web/internal/middleware"
	"github.com/Zsw0rd/Gambo-web/internal/rng"
	"github.com/Zsw0rd/Gambo-web/internal/session"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger

	// Rand overrides the outcome source; tests inject a seeded one.
	Rand rng.Source
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !config.IsDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	edge, err := decimal.NewFromString(d.Cfg.DiceHouseEdge)
	if err != nil {
		return fmt.Errorf("parse DICE_HOUSE_EDGE: %w", err)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	// Health and metrics
	RegisterHealthRoutes(app, d)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Services and handlers
	var ledgerBackend ledger.Ledger
	if d.DB != nil {
		ledgerBackend = ledger.NewPostgresLedger(d.DB)
	} else {
		ledgerBackend = ledger.NewInMemory()
	}

	var identityRepo identity.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
	}
	identitySvc := identity.NewService(identityRepo)

	sessions := session.NewManager(d.Cfg.SessionSecret, d.Cfg.SessionTTL)
	gateway := custody.NewGateway(ledgerBackend, d.Cfg.RequireVerified)

	src := d.Rand
	if src == nil {
		src = rng.NewCrypto()
	}

	authHandler := &authHandler{
		cfg:      d.Cfg,
		users:    identitySvc,
		sessions: sessions,
		gateway:  gateway,
		logger:   d.Logger,
	}
	gameHandler := &gameHandler{
		gateway: gateway,
		rounds:  games.NewStore(),
		src:     src,
		edge:    edge,
		logger:  d.Logger,
	}

	// API routes
	api := app.Group("/api/v1")

	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	api.Post("/auth", rateLimiter, authHandler.Handle)

	// Protected routes
	authmw := middleware.SessionAuth(sessions, identityRepo)
	protected := api.Group("", authmw)
	protected.Get("/balance", authHandler.Balance)

	wagers := protected.Group("/games")
	if d.Cache != nil {
		wagers.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}
	wagers.Post("/slots/spin", gameHandler.SlotsSpin)
	wagers.Post("/dice/roll", gameHandler.DiceRoll)
	wagers.Post("/roulette/spin", gameHandler.RouletteSpin)
	wagers.Post("/blackjack/deal", gameHandler.BlackjackDeal)
	wagers.Post("/blackjack/hit", gameHandler.BlackjackHit)
	wagers.Post("/blackjack/stand", gameHandler.BlackjackStand)
	wagers.Post("/mines/start", gameHandler.MinesStart)
	wagers.Post("/mines/reveal", gameHandler.MinesReveal)
	wagers.Post("/mines/cashout", gameHandler.MinesCashout)
	wagers.Post("/poker/new", gameHandler.PokerNew)
	wagers.Post("/poker/action", gameHandler.PokerAction)

	return nil
}

// httpError maps domain errors onto HTTP statuses.
func httpError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return fiber.NewError(http.StatusBadRequest, "insufficient funds")
	case errors.Is(err, custody.ErrUnverified):
		return fiber.NewError(http.StatusForbidden, "account not verified")
	case errors.Is(err, games.ErrRoundNotFound):
		return fiber.NewError(http.StatusNotFound, "round not found")
	case errors.Is(err, ledger.ErrUnknownAccount):
		return fiber.NewError(http.StatusNotFound, "account not found")
	case errors.Is(err, ledger.ErrInvalidAmount):
		return fiber.NewError(http.StatusBadRequest, "invalid amount")
	case errors.Is(err, rng.ErrEntropy):
		return fiber.NewError(http.StatusServiceUnavailable, "outcome generation unavailable")
	case errors.Is(err, identity.ErrUsernameTaken), errors.Is(err, identity.ErrEmailTaken):
		return fiber.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, identity.ErrInvalidCredentials):
		return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, dice.ErrBadThreshold), errors.Is(err, dice.ErrBadDirection),
		errors.Is(err, mines.ErrBadBombCount), errors.Is(err, mines.ErrBadCell),
		errors.Is(err, mines.ErrCellRevealed), errors.Is(err, mines.ErrRoundFinished),
		errors.Is(err, mines.ErrNothingToTake), errors.Is(err, poker.ErrBadAction),
		errors.Is(err, poker.ErrHandOver), errors.Is(err, blackjack.ErrHandOver),
		errors.Is(err, roulette.ErrBadSpot):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}

func requireStake(stake int64) error {
	if stake <= 0 {
		return fiber.NewError(http.StatusBadRequest, "stake must be positive")
	}
	return nil
}

// mustPrincipal reads the principal installed by the session middleware.
func mustPrincipal(c *fiber.Ctx) (custody.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return custody.Principal{}, fiber.NewError(http.StatusUnauthorized, "no session")
	}
	return p, nil
}
