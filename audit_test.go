package authgate

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONWriterSinkOneLinePerEvent(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	st := newMockStore()
	n := &mockNotifier{}

	cfg := DefaultConfig()
	cfg.Password.Cost = 4
	cfg.Token.Secret = []byte("test-secret")

	engine, err := New().
		WithConfig(cfg).
		WithStore(st).
		WithNotifier(n).
		WithAuditSink(NewJSONWriterSink(&buf)).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ip := WithClientIP(ctx, "203.0.113.7")
	if _, err := engine.Register(ip, "Alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, _, _ = engine.Login(ip, "alice@example.com", "wrong")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 audit lines, got %d:\n%s", len(lines), buf.String())
	}

	var register, login AuditEvent
	if err := json.Unmarshal([]byte(lines[0]), &register); err != nil {
		t.Fatalf("unmarshal register event: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &login); err != nil {
		t.Fatalf("unmarshal login event: %v", err)
	}

	if register.EventType != "account.register" || !register.Success {
		t.Fatalf("unexpected register event: %+v", register)
	}
	if register.IP != "203.0.113.7" {
		t.Fatalf("client IP not propagated: %+v", register)
	}
	if login.EventType != "account.login" || login.Success {
		t.Fatalf("unexpected login event: %+v", login)
	}
	if login.Error == "" {
		t.Fatal("failed login event carries no error")
	}
}

func TestChannelSinkDeliversAndRespectsContext(t *testing.T) {
	sink := NewChannelSink(1)

	sink.Emit(context.Background(), AuditEvent{EventType: "account.login"})

	select {
	case event := <-sink.Events():
		if event.EventType != "account.login" {
			t.Fatalf("unexpected event: %+v", event)
		}
	default:
		t.Fatal("expected buffered event")
	}

	// A full buffer plus a cancelled context must not block.
	sink.Emit(context.Background(), AuditEvent{EventType: "first"})
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	sink.Emit(cancelled, AuditEvent{EventType: "dropped"})

	event := <-sink.Events()
	if event.EventType != "first" {
		t.Fatalf("unexpected event: %+v", event)
	}
}
