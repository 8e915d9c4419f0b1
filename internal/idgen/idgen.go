// Package idgen mints the opaque public identifiers used for orders and
// payments. IDs are random rather than sequential, so allocation is a
// generate-and-check loop against the backing store with a bounded retry
// budget: collisions are statistically rare but possible, and exhaustion
// is surfaced as a distinct error the caller maps to a retryable server
// failure.
package idgen

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// RandomLength is the number of random characters appended to the prefix.
	RandomLength = 16
	// MaxAttempts bounds the generate-and-check loop in AllocateUnique.
	MaxAttempts = 10
)

// ErrExhausted is returned when AllocateUnique fails to find an unused ID
// within its attempt budget.
var ErrExhausted = errors.New("idgen: could not allocate a unique identifier")

// Generate returns prefix followed by RandomLength characters drawn
// uniformly from [A-Z0-9].
func Generate(prefix string) string {
	buf := make([]byte, 0, len(prefix)+RandomLength)
	buf = append(buf, prefix...)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < RandomLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the platform entropy source is
			// broken, at which point nothing else works either.
			panic(err)
		}
		buf = append(buf, alphabet[n.Int64()])
	}
	return string(buf)
}

// AllocateUnique generates candidate IDs and checks each one against the
// exists oracle until an unused ID is found. It returns ErrExhausted after
// MaxAttempts collisions, and propagates any error from the oracle itself.
func AllocateUnique(prefix string, exists func(id string) (bool, error)) (string, error) {
	for attempt := 0; attempt < MaxAttempts; attempt++ {
		id := Generate(prefix)
		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrExhausted
}
