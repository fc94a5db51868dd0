package authgate

import (
	"context"
	"errors"
)

// RequestPasswordReset describes the requestpasswordreset operation and its
// observable behavior.
//
// The operation is enumeration-safe: an unknown email returns nil without
// touching the store or the notifier, indistinguishable from the success
// path at the edge. A known email gets a fresh code with a 15m expiry
// persisted on the record, overwriting any outstanding pair — repeated
// requests are allowed and the last writer wins. A notifier failure is a
// hard error for this request; the stored code is left in place since a
// retried request simply overwrites it.
func (e *Engine) RequestPasswordReset(ctx context.Context, email string) error {
	if e == nil || e.store == nil || e.notifier == nil {
		return ErrEngineNotReady
	}
	if email == "" {
		e.emitAudit(ctx, auditEventResetRequest, "", email, false, ErrInvalidInput, nil)
		return ErrInvalidInput
	}

	user, err := e.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricResetRequest)
			e.emitAudit(ctx, auditEventResetRequest, "", email, true, nil, func() map[string]string {
				return map[string]string{
					"enumeration_safe": "true",
				}
			})
			return nil
		}
		e.emitAudit(ctx, auditEventResetRequest, "", email, false, err, nil)
		return err
	}

	code, err := newCode()
	if err != nil {
		return err
	}

	if err := e.store.SetResetCode(ctx, user.ID, code, e.now().Add(e.config.Reset.CodeTTL)); err != nil {
		e.emitAudit(ctx, auditEventResetRequest, user.ID, email, false, err, nil)
		return err
	}

	if err := e.notifier.SendResetCode(ctx, email, user.Name, code); err != nil {
		e.emitAudit(ctx, auditEventResetRequest, user.ID, email, false, err, func() map[string]string {
			return map[string]string{
				"reason": "notify_failed",
			}
		})
		return ErrNotifyFailed
	}

	e.metricInc(MetricResetRequest)
	e.emitAudit(ctx, auditEventResetRequest, user.ID, email, true, nil, nil)
	return nil
}

// CheckResetCode describes the checkresetcode operation and its observable
// behavior.
//
// It is a read-only probe used to gate the password-entry step: the same
// validation as [Engine.CompleteReset] runs, but the code is never consumed
// and no state changes.
func (e *Engine) CheckResetCode(ctx context.Context, email, code string) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}
	if email == "" || code == "" {
		return ErrInvalidInput
	}

	user, err := e.store.GetByEmail(ctx, email)
	if err != nil {
		e.emitAudit(ctx, auditEventResetCheck, "", email, false, err, nil)
		return err
	}

	if err := e.validateResetCode(user, code); err != nil {
		e.emitAudit(ctx, auditEventResetCheck, user.ID, email, false, err, nil)
		return err
	}

	e.emitAudit(ctx, auditEventResetCheck, user.ID, email, true, nil, nil)
	return nil
}

// CompleteReset describes the completereset operation and its observable
// behavior.
//
// It re-validates the code exactly as the probe does, then hashes the new
// password and writes it together with the cleared reset pair in a single
// store update. A consumed code cannot be replayed. New passwords shorter
// than the configured minimum fail with [ErrPasswordPolicy].
func (e *Engine) CompleteReset(ctx context.Context, email, code, newPassword string) error {
	if e == nil || e.store == nil {
		return ErrEngineNotReady
	}
	if email == "" || code == "" || newPassword == "" {
		e.metricInc(MetricResetCompleteFailure)
		return ErrInvalidInput
	}
	if len(newPassword) < e.config.Password.MinLength {
		e.metricInc(MetricResetCompleteFailure)
		e.emitAudit(ctx, auditEventResetComplete, "", email, false, ErrPasswordPolicy, nil)
		return ErrPasswordPolicy
	}

	user, err := e.store.GetByEmail(ctx, email)
	if err != nil {
		e.metricInc(MetricResetCompleteFailure)
		e.emitAudit(ctx, auditEventResetComplete, "", email, false, err, nil)
		return err
	}

	if err := e.validateResetCode(user, code); err != nil {
		e.metricInc(MetricResetCompleteFailure)
		e.emitAudit(ctx, auditEventResetComplete, user.ID, email, false, err, nil)
		return err
	}

	hash, err := e.hasher.Hash(newPassword)
	if err != nil {
		e.metricInc(MetricResetCompleteFailure)
		return err
	}

	if err := e.store.UpdatePassword(ctx, user.ID, hash); err != nil {
		e.metricInc(MetricResetCompleteFailure)
		e.emitAudit(ctx, auditEventResetComplete, user.ID, email, false, err, nil)
		return err
	}

	e.metricInc(MetricResetCompleteSuccess)
	e.emitAudit(ctx, auditEventResetComplete, user.ID, email, true, nil, nil)
	return nil
}

func (e *Engine) validateResetCode(user UserRecord, code string) error {
	if !codeMatches(user.ResetCode, code) {
		return ErrCodeInvalid
	}
	if !user.ResetExpires.IsZero() && e.now().After(user.ResetExpires) {
		return ErrCodeExpired
	}
	return nil
}
