package authgate

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"
)

// ConfirmEmailVerification describes the confirmemailverification operation
// and its observable behavior.
//
// The checks run in a fixed order: unknown email fails with [ErrUserNotFound],
// an already verified account with [ErrAlreadyVerified], a code mismatch
// (including the case where no code is outstanding) with [ErrCodeInvalid],
// and only then a stale expiry with [ErrCodeExpired]. On success the account
// is flipped to verified exactly once, the code pair is cleared, and the
// updated record is returned with secrets stripped.
func (e *Engine) ConfirmEmailVerification(ctx context.Context, email, code string) (SanitizedUser, error) {
	if e == nil || e.store == nil {
		return SanitizedUser{}, ErrEngineNotReady
	}
	if email == "" || code == "" {
		e.metricInc(MetricVerifyConfirmFailure)
		e.emitAudit(ctx, auditEventVerifyConfirm, "", email, false, ErrInvalidInput, nil)
		return SanitizedUser{}, ErrInvalidInput
	}

	user, err := e.store.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricVerifyConfirmFailure)
			e.emitAudit(ctx, auditEventVerifyConfirm, "", email, false, err, nil)
			return SanitizedUser{}, err
		}
		e.metricInc(MetricVerifyConfirmFailure)
		e.emitAudit(ctx, auditEventVerifyConfirm, "", email, false, ErrUserNotFound, nil)
		return SanitizedUser{}, ErrUserNotFound
	}

	if user.EmailVerified {
		e.metricInc(MetricVerifyConfirmFailure)
		e.emitAudit(ctx, auditEventVerifyConfirm, user.ID, email, false, ErrAlreadyVerified, nil)
		return SanitizedUser{}, ErrAlreadyVerified
	}

	if !codeMatches(user.VerificationCode, code) {
		e.metricInc(MetricVerifyConfirmFailure)
		e.emitAudit(ctx, auditEventVerifyConfirm, user.ID, email, false, ErrCodeInvalid, nil)
		return SanitizedUser{}, ErrCodeInvalid
	}

	if !user.VerificationExpires.IsZero() && e.now().After(user.VerificationExpires) {
		e.metricInc(MetricVerifyConfirmFailure)
		e.emitAudit(ctx, auditEventVerifyConfirm, user.ID, email, false, ErrCodeExpired, nil)
		return SanitizedUser{}, ErrCodeExpired
	}

	if err := e.store.MarkVerified(ctx, user.ID); err != nil {
		e.metricInc(MetricVerifyConfirmFailure)
		e.emitAudit(ctx, auditEventVerifyConfirm, user.ID, email, false, err, nil)
		return SanitizedUser{}, err
	}

	user.EmailVerified = true
	user.VerificationCode = ""
	user.VerificationExpires = time.Time{}

	e.metricInc(MetricVerifyConfirmSuccess)
	e.emitAudit(ctx, auditEventVerifyConfirm, user.ID, email, true, nil, nil)
	return user.Sanitized(), nil
}

// codeMatches compares a stored code against a provided one. An empty stored
// code never matches. The comparison is constant-time; exact-match semantics
// are unchanged.
func codeMatches(stored, provided string) bool {
	if stored == "" {
		return false
	}
	if len(stored) != len(provided) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(provided)) == 1
}
