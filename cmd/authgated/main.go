// Command authgated runs the authentication service: the JSON auth API
// behind the route gate, backed by Redis (or an in-memory store in
// development) and an SMTP notifier.
package main

import (
	"crypto/rand"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/redis/go-redis/v9"

	"github.com/authgate/authgate"
	"github.com/authgate/authgate/httpapi"
	"github.com/authgate/authgate/middleware"
	"github.com/authgate/authgate/notify"
	"github.com/authgate/authgate/store"
)

type config struct {
	Addr   string `env:"ADDR" envDefault:":8080"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	JWTSecret string `env:"JWT_SECRET"`

	// Empty RedisAddr selects the in-memory store (development only).
	RedisAddr   string `env:"REDIS_ADDR"`
	RedisPrefix string `env:"REDIS_PREFIX" envDefault:"ag"`

	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logger.Error("parse env", "error", err)
		os.Exit(1)
	}

	secret, err := signingSecret(cfg, logger)
	if err != nil {
		logger.Error("signing secret", "error", err)
		os.Exit(1)
	}

	engineCfg := authgate.DefaultConfig()
	engineCfg.Token.Secret = secret

	userStore, err := buildStore(cfg, logger)
	if err != nil {
		logger.Error("user store", "error", err)
		os.Exit(1)
	}

	notifier, err := buildNotifier(cfg, logger)
	if err != nil {
		logger.Error("notifier", "error", err)
		os.Exit(1)
	}

	engine, err := authgate.New().
		WithConfig(engineCfg).
		WithStore(userStore).
		WithNotifier(notifier).
		WithAuditSink(authgate.NewJSONWriterSink(os.Stdout)).
		Build()
	if err != nil {
		logger.Error("engine build", "error", err)
		os.Exit(1)
	}

	api := httpapi.NewServer(engine, logger)
	handler := middleware.Gate(engine, middleware.DefaultGateConfig())(api.Routes())

	logger.Info("listening", "addr", cfg.Addr, "env", cfg.AppEnv)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// signingSecret enforces the fail-fast rule: outside development mode an
// unset JWT_SECRET is a startup error, never a silent fallback. Development
// mode gets an ephemeral random secret so tokens die with the process.
func signingSecret(cfg config, logger *slog.Logger) ([]byte, error) {
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret), nil
	}
	if cfg.AppEnv != "development" {
		return nil, errors.New("JWT_SECRET must be set outside development mode")
	}

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, err
	}
	logger.Warn("JWT_SECRET unset; using ephemeral development secret, sessions will not survive restarts")
	return secret, nil
}

func buildStore(cfg config, logger *slog.Logger) (authgate.UserStore, error) {
	if cfg.RedisAddr == "" {
		if cfg.AppEnv != "development" {
			return nil, errors.New("REDIS_ADDR must be set outside development mode")
		}
		logger.Warn("REDIS_ADDR unset; using in-memory user store")
		return store.NewMemoryUserStore(), nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	return store.NewRedisUserStore(client, cfg.RedisPrefix), nil
}

func buildNotifier(cfg config, logger *slog.Logger) (authgate.Notifier, error) {
	if cfg.SMTPUser == "" {
		if cfg.AppEnv != "development" {
			return nil, errors.New("SMTP_USER must be set outside development mode")
		}
		logger.Warn("SMTP_USER unset; logging codes instead of sending mail")
		return notify.NewLogNotifier(logger), nil
	}

	return notify.NewSMTP(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
	})
}
