package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"
)

// SMTPConfig defines a public type used by authgate APIs.
//
// SMTPConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// From defaults to Username when empty.
	From string
}

// SMTPNotifier sends verification and reset codes over SMTP.
type SMTPNotifier struct {
	config SMTPConfig
}

// NewSMTP describes the newsmtp operation and its observable behavior.
//
// NewSMTP may return an error when the configuration is incomplete.
func NewSMTP(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.Port <= 0 {
		return nil, errors.New("smtp port is required")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.From == "" {
		return nil, errors.New("smtp sender address is required")
	}

	return &SMTPNotifier{config: cfg}, nil
}

// SendVerificationCode mails the 6-digit registration code. The code
// expires 24 hours after issuance and the body says so.
func (n *SMTPNotifier) SendVerificationCode(ctx context.Context, to, name, code string) error {
	body := codeBody(
		"Verify Your Email Address",
		name,
		"Thank you for registering. Please enter the following 6-digit verification code to complete your registration:",
		code,
		"This code will expire in 24 hours. If you did not create an account, please ignore this email.",
	)
	return n.send(ctx, to, "Verify your email address", body)
}

// SendResetCode mails the 6-digit password-reset code. The code expires 15
// minutes after issuance and the body says so.
func (n *SMTPNotifier) SendResetCode(ctx context.Context, to, name, code string) error {
	body := codeBody(
		"Password Reset Request",
		name,
		"You requested to reset your password. Please enter the following 6-digit code to continue:",
		code,
		"This code will expire in 15 minutes. If you did not request a password reset, please ignore this email.",
	)
	return n.send(ctx, to, "Password Reset Code", body)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, htmlBody string) error {
	// net/smtp has no context support; honor cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := buildMessage(n.config.From, to, subject, htmlBody)
	addr := n.config.Host + ":" + strconv.Itoa(n.config.Port)

	var auth smtp.Auth
	if n.config.Username != "" {
		auth = smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)
	}

	if err := smtp.SendMail(addr, auth, n.config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

func codeBody(heading, name, intro, code, expiryNote string) string {
	return fmt.Sprintf(`
          <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
            <h2 style="color: #333;">%s</h2>
            <p>Hello %s,</p>
            <p>%s</p>
            <div style="text-align: center; margin: 30px 0;">
              <span style="font-size: 32px; font-weight: bold; letter-spacing: 5px; color: #4F46E5; background-color: #F3F4F6; padding: 15px; border-radius: 8px;">%s</span>
            </div>
            <p>%s</p>
            <hr style="margin: 30px 0; border: none; border-top: 1px solid #e5e7eb;" />
            <p style="color: #666; font-size: 12px;">This is an automated message, please do not reply to this email.</p>
          </div>
        `, heading, html.EscapeString(name), intro, code, expiryNote)
}
