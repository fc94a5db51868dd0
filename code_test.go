package authgate

import (
	"strconv"
	"testing"
)

func TestNewCodeShapeAndRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := newCode()
		if err != nil {
			t.Fatalf("newCode failed: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		if code[0] == '0' {
			t.Fatalf("code has leading zero: %q", code)
		}

		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code is not numeric: %q", code)
		}
		if n < codeMin || n > codeMax {
			t.Fatalf("code %d outside [%d, %d]", n, codeMin, codeMax)
		}
	}
}

func TestCodeMatches(t *testing.T) {
	cases := []struct {
		name     string
		stored   string
		provided string
		want     bool
	}{
		{"exact match", "123456", "123456", true},
		{"mismatch", "123456", "654321", false},
		{"empty stored never matches", "", "", false},
		{"empty provided", "123456", "", false},
		{"length mismatch", "123456", "12345", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := codeMatches(tc.stored, tc.provided); got != tc.want {
				t.Fatalf("codeMatches(%q, %q) = %v, want %v", tc.stored, tc.provided, got, tc.want)
			}
		})
	}
}
