package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes codes to a structured logger instead of sending mail.
// Development only: codes end up in the process log.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendVerificationCode(ctx context.Context, to, name, code string) error {
	n.logger.InfoContext(ctx, "verification code issued", "to", to, "name", name, "code", code)
	return nil
}

func (n *LogNotifier) SendResetCode(ctx context.Context, to, name, code string) error {
	n.logger.InfoContext(ctx, "password reset code issued", "to", to, "name", name, "code", code)
	return nil
}
