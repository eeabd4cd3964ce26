package utils

import (
	"strings"
	"testing"
)

func TestGenerateCode_LengthAndAlphabet(t *testing.T) {
	tests := []struct {
		name     string
		length   int
		alphabet string
	}{
		{"digits", 6, "0123456789"},
		{"letters", 8, "ABCDEFGHJKLMNPQRSTUVWXYZ"},
		{"single symbol", 4, "7"},
		{"multibyte", 5, "αβγ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := GenerateCode(tt.length, tt.alphabet)
			if err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if n := len([]rune(code)); n != tt.length {
				t.Errorf("expected length %d, got %d", tt.length, n)
			}
			for _, r := range code {
				if !strings.ContainsRune(tt.alphabet, r) {
					t.Errorf("symbol %q not in alphabet %q", r, tt.alphabet)
				}
			}
		})
	}
}

func TestGenerateCode_InvalidParams(t *testing.T) {
	if _, err := GenerateCode(0, "0123"); err == nil {
		t.Error("expected error for zero length")
	}
	if _, err := GenerateCode(6, ""); err == nil {
		t.Error("expected error for empty alphabet")
	}
}

// TestGenerateCode_Varies guards against a constant generator. 20 six-digit
// codes colliding into one value has probability ~1e-114.
func TestGenerateCode_Varies(t *testing.T) {
	seen := make(map[string]struct{})
	for range 20 {
		code, err := GenerateCode(6, "0123456789")
		if err != nil {
			t.Fatal(err)
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 2 {
		t.Error("expected different codes across calls")
	}
}
