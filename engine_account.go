package authgate

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Register describes the register operation and its observable behavior.
//
// Register creates an unverified account, persists a fresh verification code
// with a 24h expiry on the record, and hands the code to the notifier. When
// notification fails the just-created record is deleted again so the caller
// can retry from scratch; this is the only compensating rollback in the
// engine.
//
// Register may return an error when input validation, dependency calls, or
// security checks fail. It fails with [ErrEmailTaken] when the email is
// already registered.
func (e *Engine) Register(ctx context.Context, name, email, pwd string) (SanitizedUser, error) {
	if e == nil || e.store == nil || e.notifier == nil {
		return SanitizedUser{}, ErrEngineNotReady
	}
	if name == "" || email == "" || pwd == "" {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegister, "", email, false, ErrInvalidInput, nil)
		return SanitizedUser{}, ErrInvalidInput
	}

	_, err := e.store.GetByEmail(ctx, email)
	switch {
	case err == nil:
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegister, "", email, false, ErrEmailTaken, nil)
		return SanitizedUser{}, ErrEmailTaken
	case !errors.Is(err, ErrUserNotFound):
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegister, "", email, false, err, nil)
		return SanitizedUser{}, err
	}

	hash, err := e.hasher.Hash(pwd)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		return SanitizedUser{}, err
	}

	code, err := newCode()
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		return SanitizedUser{}, err
	}

	now := e.now()
	record := UserRecord{
		ID:                  uuid.NewString(),
		Name:                name,
		Email:               email,
		PasswordHash:        hash,
		EmailVerified:       false,
		VerificationCode:    code,
		VerificationExpires: now.Add(e.config.Verification.CodeTTL),
		CreatedAt:           now,
	}

	if err := e.store.Create(ctx, record); err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegister, "", email, false, err, nil)
		return SanitizedUser{}, err
	}

	if err := e.notifier.SendVerificationCode(ctx, email, name, code); err != nil {
		// Compensating action: a record whose owner never received the code
		// is unusable, so remove it and let the user retry.
		delErr := e.store.Delete(ctx, record.ID)
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterRollback, record.ID, email, delErr == nil, err, func() map[string]string {
			return map[string]string{
				"reason": "notify_failed",
			}
		})
		return SanitizedUser{}, ErrNotifyFailed
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegister, record.ID, email, true, nil, nil)
	return record.Sanitized(), nil
}

// Login describes the login operation and its observable behavior.
//
// Login never distinguishes "no such user" from "wrong password": both fail
// with [ErrInvalidCredentials]. A correct password on an unverified account
// fails with [ErrAccountUnverified] so the edge can signal that verification
// is still pending. On success it returns the sanitized user and a signed
// session token with a fixed 1h lifetime.
func (e *Engine) Login(ctx context.Context, email, pwd string) (SanitizedUser, string, error) {
	if e == nil || e.store == nil || e.tokens == nil {
		return SanitizedUser{}, "", ErrEngineNotReady
	}
	if email == "" || pwd == "" {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLogin, "", email, false, ErrInvalidInput, nil)
		return SanitizedUser{}, "", ErrInvalidInput
	}

	user, err := e.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			err = ErrInvalidCredentials
		}
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLogin, "", email, false, err, nil)
		return SanitizedUser{}, "", err
	}

	if !e.hasher.Verify(pwd, user.PasswordHash) {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLogin, user.ID, email, false, ErrInvalidCredentials, nil)
		return SanitizedUser{}, "", ErrInvalidCredentials
	}

	if !user.EmailVerified {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLogin, user.ID, email, false, ErrAccountUnverified, func() map[string]string {
			return map[string]string{
				"requires_verification": "true",
			}
		})
		return SanitizedUser{}, "", ErrAccountUnverified
	}

	token, err := e.tokens.Issue(user.ID, user.Email)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLogin, user.ID, email, false, err, nil)
		return SanitizedUser{}, "", err
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLogin, user.ID, email, true, nil, nil)
	return user.Sanitized(), token, nil
}
