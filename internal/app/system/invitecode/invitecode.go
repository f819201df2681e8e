// internal/app/system/invitecode/invitecode.go

// Package invitecode generates short join codes for groups.
//
// Generation is a pure function over an injected rand source; uniqueness is
// the store's problem (unique index on groups.invite_code) and the group
// directory retries on collision up to a bounded attempt count.
package invitecode

import "math/rand"

// Alphabet is the fixed 21-symbol set codes are drawn from. Ambiguous
// symbols (0, O, o, l) are excluded so codes survive being read aloud.
const Alphabet = "ABCDEFGHIJKL123456789"

// Length is the number of symbols in a group invite code.
const Length = 6

// Generate returns a code of n symbols drawn from alphabet using rng.
func Generate(rng *rand.Rand, alphabet string, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}
