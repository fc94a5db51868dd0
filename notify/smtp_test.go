package notify

import (
	"strings"
	"testing"
)

func TestNewSMTPValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  SMTPConfig
	}{
		{"missing host", SMTPConfig{Port: 587, Username: "me@example.com"}},
		{"missing port", SMTPConfig{Host: "smtp.example.com", Username: "me@example.com"}},
		{"missing sender", SMTPConfig{Host: "smtp.example.com", Port: 587}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewSMTP(tc.cfg); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}

func TestNewSMTPFromDefaultsToUsername(t *testing.T) {
	n, err := NewSMTP(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "me@example.com"})
	if err != nil {
		t.Fatalf("NewSMTP failed: %v", err)
	}
	if n.config.From != "me@example.com" {
		t.Fatalf("From = %q, want username", n.config.From)
	}
}

func TestBuildMessageHeaders(t *testing.T) {
	msg := string(buildMessage("me@example.com", "you@example.com", "Verify your email address", "<p>body</p>"))

	wantHeaders := []string{
		"From: me@example.com\r\n",
		"To: you@example.com\r\n",
		"Subject: Verify your email address\r\n",
		"MIME-Version: 1.0\r\n",
		"Content-Type: text/html; charset=\"UTF-8\"\r\n",
	}
	for _, h := range wantHeaders {
		if !strings.Contains(msg, h) {
			t.Fatalf("message missing header %q:\n%s", h, msg)
		}
	}

	// Headers and body are separated by a blank line, body comes last.
	head, body, found := strings.Cut(msg, "\r\n\r\n")
	if !found {
		t.Fatalf("no header/body separator in:\n%s", msg)
	}
	if strings.Contains(head, "<p>") {
		t.Fatal("body leaked into headers")
	}
	if body != "<p>body</p>" {
		t.Fatalf("body = %q", body)
	}
}

func TestCodeBodyContent(t *testing.T) {
	body := codeBody("Verify Your Email Address", "Alice", "intro line", "123456", "This code will expire in 24 hours.")

	for _, want := range []string{"Verify Your Email Address", "Hello Alice,", "intro line", "123456", "expire in 24 hours"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q:\n%s", want, body)
		}
	}
}

func TestCodeBodyEscapesName(t *testing.T) {
	body := codeBody("Heading", `<script>alert("x")</script>`, "intro", "123456", "note")

	if strings.Contains(body, "<script>") {
		t.Fatal("name not HTML-escaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("expected escaped name in body:\n%s", body)
	}
}
