package invitecode_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/huddleup/huddle/internal/app/system/invitecode"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		code := invitecode.Generate(rng, invitecode.Alphabet, invitecode.Length)
		if len(code) != invitecode.Length {
			t.Fatalf("code %q: got length %d, want %d", code, len(code), invitecode.Length)
		}
		for _, r := range code {
			if !strings.ContainsRune(invitecode.Alphabet, r) {
				t.Fatalf("code %q contains %q, not in alphabet", code, r)
			}
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a := invitecode.Generate(rand.New(rand.NewSource(42)), invitecode.Alphabet, invitecode.Length)
	b := invitecode.Generate(rand.New(rand.NewSource(42)), invitecode.Alphabet, invitecode.Length)
	if a != b {
		t.Errorf("same seed produced different codes: %q vs %q", a, b)
	}
}

func TestAlphabetHas21Symbols(t *testing.T) {
	if len(invitecode.Alphabet) != 21 {
		t.Errorf("alphabet has %d symbols, want 21", len(invitecode.Alphabet))
	}
	seen := map[rune]bool{}
	for _, r := range invitecode.Alphabet {
		if seen[r] {
			t.Errorf("alphabet repeats %q", r)
		}
		seen[r] = true
	}
}
