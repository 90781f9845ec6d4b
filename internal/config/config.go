package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName         = "Gambo"
	defaultAppEnv          = "development"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultShutdownDelay   = 10 * time.Second
	defaultSessionTTL      = 24 * time.Hour
	defaultIdempotencyTTL  = 24 * time.Hour
	defaultStartingBalance = 1000
	defaultGuestBalance    = 1000
	defaultDailyBonus      = 100
	defaultDiceHouseEdge   = "0.99"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName         string
	AppEnv          string
	Port            string
	LogLevel        string
	DatabaseURL     string
	RedisURL        string
	SessionSecret   string
	SessionTTL      time.Duration
	ShutdownPeriod  time.Duration
	IdempotencyTTL  time.Duration
	StartingBalance int64
	GuestBalance    int64
	DailyBonus      int64
	DiceHouseEdge   string
	RequireVerified bool
}

// Load reads configuration values from the environment and populates a Config
// instance. DATABASE_URL and REDIS_URL may be empty in development; the
// service then falls back to in-memory stores.
func Load() (Config, error) {
	cfg := Config{
		AppName:         getEnv("APP_NAME", defaultAppName),
		AppEnv:          getEnv("APP_ENV", defaultAppEnv),
		Port:            getEnv("PORT", defaultPort),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		SessionTTL:      defaultSessionTTL,
		ShutdownPeriod:  defaultShutdownDelay,
		IdempotencyTTL:  defaultIdempotencyTTL,
		StartingBalance: defaultStartingBalance,
		GuestBalance:    defaultGuestBalance,
		DailyBonus:      defaultDailyBonus,
		DiceHouseEdge:   getEnv("DICE_HOUSE_EDGE", defaultDiceHouseEdge),
		RequireVerified: getEnv("REQUIRE_VERIFIED", "") == "true",
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	for _, knob := range []struct {
		env  string
		dest *int64
	}{
		{"STARTING_BALANCE", &cfg.StartingBalance},
		{"GUEST_BALANCE", &cfg.GuestBalance},
		{"DAILY_BONUS", &cfg.DailyBonus},
	} {
		if v := os.Getenv(knob.env); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				return Config{}, fmt.Errorf("invalid %s: %q", knob.env, v)
			}
			*knob.dest = n
		}
	}

	if cfg.SessionSecret == "" {
		if !IsDev(cfg.AppEnv) {
			return Config{}, fmt.Errorf("SESSION_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
		cfg.SessionSecret = "dev-only-secret"
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the environment name denotes a development setup.
func IsDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
