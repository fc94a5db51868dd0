package authgate

import (
	"context"
	"time"

	"github.com/authgate/authgate/jwt"
	"github.com/authgate/authgate/password"
)

// Engine defines a public type used by authgate APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config Config

	store    UserStore
	notifier Notifier

	hasher *password.Bcrypt
	tokens *jwt.Manager

	auditSink AuditSink
	metrics   *metricSet

	now func() time.Time
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{}
	}
	return e.metrics.snapshot()
}

// ValidateToken parses and verifies a session token. It fails with
// [ErrTokenInvalid] without distinguishing malformed, badly signed, or
// expired tokens.
//
// ValidateToken is the hot path of the route gate: it performs no store
// lookups and allocates only the returned claims.
func (e *Engine) ValidateToken(ctx context.Context, token string) (*jwt.SessionClaims, error) {
	if e == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}

	claims, err := e.tokens.Parse(token)
	if err != nil {
		e.metricInc(MetricTokenValidateFailure)
		e.emitAudit(ctx, auditEventTokenValidate, "", "", false, ErrTokenInvalid, nil)
		return nil, ErrTokenInvalid
	}

	e.metricInc(MetricTokenValidateSuccess)
	return claims, nil
}

// User looks up an account by id and returns it with secrets stripped.
func (e *Engine) User(ctx context.Context, id string) (SanitizedUser, error) {
	if e == nil || e.store == nil {
		return SanitizedUser{}, ErrEngineNotReady
	}
	if id == "" {
		return SanitizedUser{}, ErrInvalidInput
	}

	user, err := e.store.GetByID(ctx, id)
	if err != nil {
		return SanitizedUser{}, err
	}
	return user.Sanitized(), nil
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.inc(id)
}

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	userID string,
	email string,
	success bool,
	failure error,
	metadata func() map[string]string,
) {
	if e == nil || e.auditSink == nil {
		return
	}

	event := AuditEvent{
		Timestamp: e.now(),
		EventType: eventType,
		UserID:    userID,
		Email:     email,
		IP:        clientIPFromContext(ctx),
		Success:   success,
	}
	if failure != nil {
		event.Error = failure.Error()
	}
	if metadata != nil {
		event.Metadata = metadata()
	}

	e.auditSink.Emit(ctx, event)
}
