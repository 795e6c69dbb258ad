// Package idgen generates report, section and item identifiers.
package idgen

import (
	"crypto/rand"
	"io"
	"math/big"
	mrand "math/rand/v2"

	"github.com/google/uuid"

	"github.com/custodia-labs/walkthrough/internal/core/ports/driven"
	"github.com/custodia-labs/walkthrough/internal/logger"
)

// Ensure Generator implements the interface.
var _ driven.IDGenerator = (*Generator)(nil)

const (
	// ShortIDLength is the length of shareable keys.
	ShortIDLength = 9

	// shortIDAlphabet holds the 62 characters a short key is drawn from.
	shortIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Generator draws identifiers from a secure random source and falls back to
// math/rand when that source fails. Fallback identifiers have the same shape
// but weaker uniqueness guarantees.
type Generator struct {
	random io.Reader
}

// New creates a generator backed by crypto/rand.
func New() *Generator {
	return &Generator{random: rand.Reader}
}

// NewWithReader creates a generator backed by r. Used in tests.
func NewWithReader(r io.Reader) *Generator {
	return &Generator{random: r}
}

// NewID returns a random version 4 UUID string.
func (g *Generator) NewID() string {
	id, err := uuid.NewRandomFromReader(g.random)
	if err != nil {
		logger.Warn("secure random unavailable for id, using fallback: %v", err)
		return fallbackUUID()
	}
	return id.String()
}

// NewShortID returns a 9-character alphanumeric key.
func (g *Generator) NewShortID() string {
	buf := make([]byte, ShortIDLength)
	limit := big.NewInt(int64(len(shortIDAlphabet)))
	for i := range buf {
		n, err := rand.Int(g.random, limit)
		if err != nil {
			logger.Warn("secure random unavailable for short id, using fallback: %v", err)
			return fallbackShortID()
		}
		buf[i] = shortIDAlphabet[n.Int64()]
	}
	return string(buf)
}

// pseudoRandom reads from math/rand. It never fails.
type pseudoRandom struct{}

func (pseudoRandom) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(mrand.IntN(256))
	}
	return len(p), nil
}

// fallbackUUID draws a version 4 UUID from math/rand.
func fallbackUUID() string {
	return uuid.Must(uuid.NewRandomFromReader(pseudoRandom{})).String()
}

func fallbackShortID() string {
	buf := make([]byte, ShortIDLength)
	for i := range buf {
		buf[i] = shortIDAlphabet[mrand.IntN(len(shortIDAlphabet))]
	}
	return string(buf)
}
