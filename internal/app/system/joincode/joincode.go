// Package joincode generates and normalizes group join codes.
//
// Codes are 6-8 uppercase alphanumeric characters. Generation is
// random; uniqueness is best-effort only (the group store retries a
// bounded number of times on detected collision, and the storage layer
// carries no unique index on the field).
package joincode

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	MinLength = 6
	MaxLength = 8
)

// New returns a random code of MinLength..MaxLength characters,
// already normalized to uppercase.
func New() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(MaxLength-MinLength+1)))
	if err != nil {
		// crypto/rand only fails if the platform source is broken;
		// fall back to the shortest length rather than panic.
		n = big.NewInt(0)
	}
	length := MinLength + int(n.Int64())

	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			idx = big.NewInt(0)
		}
		b.WriteByte(alphabet[idx.Int64()])
	}
	return b.String()
}

// Normalize uppercases and trims a user-supplied code so comparisons
// are case-insensitive.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
