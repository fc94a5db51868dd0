package authgate

import (
	"errors"
	"time"

	"github.com/authgate/authgate/jwt"
	"github.com/authgate/authgate/password"
)

// Builder defines a public type used by authgate APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	store    UserStore
	notifier Notifier

	auditSink AuditSink

	built bool
}

// New returns a Builder seeded with [DefaultConfig]. Construction is
// allocation-only; no I/O happens until Build.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the builder configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore sets the user record store. Required.
func (b *Builder) WithStore(s UserStore) *Builder {
	b.store = s
	return b
}

// WithNotifier sets the out-of-band code notifier. Required.
func (b *Builder) WithNotifier(n Notifier) *Builder {
	b.notifier = n
	return b
}

// WithAuditSink sets the audit event sink. Defaults to [NoOpSink].
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build validates the configuration and assembles the Engine.
//
// Build fails when the store or notifier is missing, when any TTL is
// non-positive, and when the token signing secret is empty — there is no
// insecure development fallback.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.store == nil {
		return nil, errors.New("user store is required")
	}
	if b.notifier == nil {
		return nil, errors.New("notifier is required")
	}
	if b.config.Verification.CodeTTL <= 0 {
		return nil, errors.New("verification code TTL must be positive")
	}
	if b.config.Reset.CodeTTL <= 0 {
		return nil, errors.New("reset code TTL must be positive")
	}
	if b.config.Password.MinLength <= 0 {
		return nil, errors.New("minimum password length must be positive")
	}
	if len(b.config.Token.Secret) == 0 {
		return nil, errors.New("token signing secret is required")
	}

	hasher, err := password.NewBcrypt(b.config.Password.Cost)
	if err != nil {
		return nil, err
	}

	tokens, err := jwt.NewManager(jwt.Config{
		Secret: b.config.Token.Secret,
		TTL:    b.config.Token.TTL,
		Issuer: b.config.Token.Issuer,
	})
	if err != nil {
		return nil, err
	}

	sink := b.auditSink
	if sink == nil {
		sink = NoOpSink{}
	}

	b.built = true

	return &Engine{
		config:    b.config,
		store:     b.store,
		notifier:  b.notifier,
		hasher:    hasher,
		tokens:    tokens,
		auditSink: sink,
		metrics:   &metricSet{},
		now:       time.Now,
	}, nil
}
