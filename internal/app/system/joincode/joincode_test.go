package joincode_test

import (
	"strings"
	"testing"

	"github.com/upliftapp/uplift/internal/app/system/joincode"
)

func TestNew(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	for i := 0; i < 100; i++ {
		code := joincode.New()
		if len(code) < joincode.MinLength || len(code) > joincode.MaxLength {
			t.Fatalf("length %d outside %d..%d: %q", len(code), joincode.MinLength, joincode.MaxLength, code)
		}
		for _, ch := range code {
			if !strings.ContainsRune(alphabet, ch) {
				t.Fatalf("unexpected character %q in %q", ch, code)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	for in, want := range map[string]string{
		"abc123":      "ABC123",
		"  AbC123  ":  "ABC123",
		"ALREADYUP":   "ALREADYUP",
		"\tlower \n ": "LOWER",
	} {
		if got := joincode.Normalize(in); got != want {
			t.Errorf("Normalize(%q): got %q, want %q", in, got, want)
		}
	}
}
