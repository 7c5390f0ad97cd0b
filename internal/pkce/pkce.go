// Package pkce generates OAuth 2.0 PKCE (RFC 7636) code verifiers and their
// S256 code challenges.
package pkce

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	// MinVerifierLength is the shortest verifier allowed by RFC 7636.
	MinVerifierLength = 43
	// MaxVerifierLength is the longest verifier allowed by RFC 7636.
	MaxVerifierLength = 128
	// ChallengeLength is the length of an unpadded base64url SHA-256 digest.
	ChallengeLength = 43
	// MethodS256 is the only challenge method produced.
	MethodS256 = "S256"

	// unreserved characters per RFC 7636 section 4.1
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

	// Bytes at or above this bound are discarded so that b%len(alphabet) is
	// uniform.
	rejectBound = 256 - 256%len(alphabet)
)

var (
	ErrInvalidLength      = errors.New("verifier length must be between 43 and 128")
	ErrInvalidVerifier    = errors.New("verifier contains characters outside the unreserved set")
	ErrHashingUnavailable = errors.New("sha-256 digest unavailable")
	ErrIncompleteState    = errors.New("no generated values")
)

// Hasher computes a SHA-256 digest. It is a capability so callers can plug in
// a platform primitive; implementations may block.
type Hasher interface {
	Sum256(ctx context.Context, data []byte) ([]byte, error)
}

// HasherFunc adapts a function to the Hasher interface.
type HasherFunc func(ctx context.Context, data []byte) ([]byte, error)

// Sum256 calls f.
func (f HasherFunc) Sum256(ctx context.Context, data []byte) ([]byte, error) {
	return f(ctx, data)
}

type sha256Hasher struct{}

func (sha256Hasher) Sum256(_ context.Context, data []byte) ([]byte, error) {
	sum := sha256.Sum256(data)
	return sum[:], nil
}

// Pair is a verifier together with the challenge derived from it.
type Pair struct {
	Verifier  string
	Challenge string
}

// Generator produces verifiers and challenges.
type Generator struct {
	random io.Reader
	hasher Hasher
}

// Option configures a Generator.
type Option func(*Generator)

// WithRandom sets the random source. It must be cryptographically secure.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		g.random = r
	}
}

// WithHasher sets the SHA-256 capability.
func WithHasher(h Hasher) Option {
	return func(g *Generator) {
		g.hasher = h
	}
}

// New returns a Generator backed by crypto/rand and crypto/sha256 unless
// overridden by options.
func New(opts ...Option) *Generator {
	g := &Generator{
		random: rand.Reader,
		hasher: sha256Hasher{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = New()

// GenerateVerifier returns a verifier of the given length using the default
// generator.
func GenerateVerifier(length int) (string, error) {
	return defaultGenerator.Verifier(length)
}

// GenerateChallenge returns the S256 challenge for verifier using the default
// generator.
func GenerateChallenge(ctx context.Context, verifier string) (string, error) {
	return defaultGenerator.Challenge(ctx, verifier)
}

// ValidLength reports whether length is within the RFC 7636 bounds.
func ValidLength(length int) bool {
	return length >= MinVerifierLength && length <= MaxVerifierLength
}

// Verifier draws length characters uniformly from the unreserved alphabet.
// The length is checked before anything is read from the random source.
func (g *Generator) Verifier(length int) (string, error) {
	if !ValidLength(length) {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLength, length)
	}

	out := make([]byte, 0, length)
	// Roughly 23% of bytes are rejected; over-read a little to keep the
	// number of reads low.
	buf := make([]byte, length+length/3+8)
	for len(out) < length {
		if _, err := io.ReadFull(g.random, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= rejectBound {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == length {
				break
			}
		}
	}
	clear(buf)

	return string(out), nil
}

// Challenge computes base64url(SHA-256(verifier)) without padding. The
// verifier is validated since it may not come from Verifier.
func (g *Generator) Challenge(ctx context.Context, verifier string) (string, error) {
	if err := ValidVerifier(verifier); err != nil {
		return "", err
	}
	if g.hasher == nil {
		return "", ErrHashingUnavailable
	}

	sum, err := g.hasher.Sum256(ctx, []byte(verifier))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingUnavailable, err)
	}
	if len(sum) != sha256.Size {
		return "", fmt.Errorf("%w: digest has %d bytes", ErrHashingUnavailable, len(sum))
	}

	return base64.RawURLEncoding.EncodeToString(sum), nil
}

// Generate returns a fresh verifier of the given length and its challenge.
func (g *Generator) Generate(ctx context.Context, length int) (Pair, error) {
	verifier, err := g.Verifier(length)
	if err != nil {
		return Pair{}, err
	}
	challenge, err := g.Challenge(ctx, verifier)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Verifier: verifier, Challenge: challenge}, nil
}

// ValidVerifier checks length and charset of an arbitrary verifier.
func ValidVerifier(verifier string) error {
	if !ValidLength(len(verifier)) {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, len(verifier))
	}
	for i := 0; i < len(verifier); i++ {
		if !isUnreserved(verifier[i]) {
			return fmt.Errorf("%w: %q at position %d", ErrInvalidVerifier, verifier[i], i)
		}
	}
	return nil
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
