// Command authgate-mailcheck sends a test verification email through the
// configured SMTP transport, so deployment credentials can be checked
// without registering an account.
//
// Usage:
//
//	SMTP_USER=me@example.com SMTP_PASS=app-password \
//	  authgate-mailcheck -to you@example.com
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/authgate/authgate/notify"
)

type config struct {
	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER,required"`
	SMTPPass string `env:"SMTP_PASS,required"`
}

func main() {
	to := flag.String("to", "", "recipient address (defaults to SMTP_USER)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		logger.Error("parse env", "error", err)
		os.Exit(1)
	}

	recipient := *to
	if recipient == "" {
		recipient = cfg.SMTPUser
	}

	notifier, err := notify.NewSMTP(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
	})
	if err != nil {
		logger.Error("smtp config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("sending test verification email", "host", cfg.SMTPHost, "port", cfg.SMTPPort, "to", recipient)
	if err := notifier.SendVerificationCode(ctx, recipient, "Test User", "123456"); err != nil {
		logger.Error("send failed", "error", err)
		os.Exit(1)
	}
	logger.Info("email sent successfully, check the inbox")
}
