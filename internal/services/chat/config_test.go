// File: internal/services/chat/config_test.go
package chat

import (
	"strings"
	"testing"
)

func TestDeriveTitle(t *testing.T) {
	config := DefaultConfig()

	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"short kept whole", "hi there", "hi there"},
		{"exactly at limit", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"one over limit", strings.Repeat("a", 51), strings.Repeat("a", 50) + "..."},
		{"multibyte counted as runes", strings.Repeat("ü", 51), strings.Repeat("ü", 50) + "..."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := config.DeriveTitle(tc.content); got != tc.want {
				t.Fatalf("DeriveTitle(%q) = %q, want %q", tc.content, got, tc.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	config := DefaultConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := DefaultConfig()
	bad.TitleMaxLen = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected zero title max len to be rejected")
	}

	bad = DefaultConfig()
	bad.ImportBatchSize = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected zero batch size to be rejected")
	}
}
