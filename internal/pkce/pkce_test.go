package pkce

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// countingReader records how many bytes were requested from it.
type countingReader struct {
	reads int
}

func (r *countingReader) Read(p []byte) (int, error) {
	r.reads += len(p)
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// patternReader repeats a fixed byte pattern forever.
type patternReader struct {
	pattern []byte
	pos     int
}

func (r *patternReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.pattern[r.pos%len(r.pattern)]
		r.pos++
	}
	return len(p), nil
}

func requireUnreserved(t *testing.T, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		require.Truef(t, strings.IndexByte(alphabet, s[i]) >= 0, "character %q at %d is not unreserved", s[i], i)
	}
}

func TestAlphabet(t *testing.T) {
	require.Len(t, alphabet, 66)
	require.Equal(t, 198, rejectBound)
}

func TestGenerateVerifier(t *testing.T) {
	t.Run("every valid length", func(t *testing.T) {
		for length := MinVerifierLength; length <= MaxVerifierLength; length++ {
			verifier, err := GenerateVerifier(length)
			require.NoError(t, err)
			require.Len(t, verifier, length)
			requireUnreserved(t, verifier)
		}
	})

	t.Run("invalid lengths draw nothing", func(t *testing.T) {
		for _, length := range []int{-1, 0, 42, 129, 1000} {
			r := &countingReader{}
			g := New(WithRandom(r))

			verifier, err := g.Verifier(length)
			require.ErrorIs(t, err, ErrInvalidLength)
			require.Empty(t, verifier)
			require.Zero(t, r.reads, "length %d read from the random source", length)
		}
	})

	t.Run("rejects biased bytes", func(t *testing.T) {
		// 255 and 198 are rejected, 0 maps to 'A' and 197 to '~'.
		g := New(WithRandom(&patternReader{pattern: []byte{255, 0, 198, 197}}))

		verifier, err := g.Verifier(MinVerifierLength)
		require.NoError(t, err)

		var want strings.Builder
		for i := 0; i < MinVerifierLength; i++ {
			if i%2 == 0 {
				want.WriteByte('A')
			} else {
				want.WriteByte('~')
			}
		}
		require.Equal(t, want.String(), verifier)
	})

	t.Run("keeps reading when most bytes are rejected", func(t *testing.T) {
		g := New(WithRandom(&patternReader{pattern: []byte{250, 251, 252, 253, 254, 255, 7}}))

		verifier, err := g.Verifier(MaxVerifierLength)
		require.NoError(t, err)
		require.Equal(t, strings.Repeat("H", MaxVerifierLength), verifier)
	})

	t.Run("random source failure", func(t *testing.T) {
		errBoom := errors.New("boom")
		g := New(WithRandom(iotest.ErrReader(errBoom)))

		verifier, err := g.Verifier(64)
		require.ErrorIs(t, err, errBoom)
		require.Empty(t, verifier)
	})

	t.Run("uniqueness", func(t *testing.T) {
		seen := make(map[string]struct{}, 10000)
		for i := 0; i < 10000; i++ {
			verifier, err := GenerateVerifier(MaxVerifierLength)
			require.NoError(t, err)
			_, dup := seen[verifier]
			require.False(t, dup, "duplicate verifier after %d calls", i)
			seen[verifier] = struct{}{}
		}
	})

	t.Run("uses the whole alphabet", func(t *testing.T) {
		counts := make(map[byte]int)
		for i := 0; i < 100; i++ {
			verifier, err := GenerateVerifier(MaxVerifierLength)
			require.NoError(t, err)
			for j := 0; j < len(verifier); j++ {
				counts[verifier[j]]++
			}
		}
		// 12800 draws, about 194 per symbol.
		require.Len(t, counts, len(alphabet))
		for c, n := range counts {
			require.Greaterf(t, n, 100, "symbol %q drawn only %d times", c, n)
		}
	})
}

func TestGenerateChallenge(t *testing.T) {
	ctx := context.Background()

	t.Run("RFC 7636 appendix B", func(t *testing.T) {
		challenge, err := GenerateChallenge(ctx, "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk")
		require.NoError(t, err)
		require.Equal(t, "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM", challenge)
	})

	t.Run("deterministic and url safe", func(t *testing.T) {
		verifier, err := GenerateVerifier(96)
		require.NoError(t, err)

		first, err := GenerateChallenge(ctx, verifier)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := GenerateChallenge(ctx, verifier)
			require.NoError(t, err)
			require.Equal(t, first, again)
		}

		require.Len(t, first, ChallengeLength)
		require.NotContains(t, first, "=")
		require.NotContains(t, first, "+")
		require.NotContains(t, first, "/")
	})

	t.Run("matches x/oauth2", func(t *testing.T) {
		for _, length := range []int{43, 60, 80, 100, 128} {
			verifier, err := GenerateVerifier(length)
			require.NoError(t, err)

			challenge, err := GenerateChallenge(ctx, verifier)
			require.NoError(t, err)
			require.Equal(t, oauth2.S256ChallengeFromVerifier(verifier), challenge)
		}
	})

	t.Run("validates input", func(t *testing.T) {
		tests := []struct {
			name     string
			verifier string
			wantErr  error
		}{
			{name: "empty", verifier: "", wantErr: ErrInvalidLength},
			{name: "too short", verifier: strings.Repeat("a", 42), wantErr: ErrInvalidLength},
			{name: "too long", verifier: strings.Repeat("a", 129), wantErr: ErrInvalidLength},
			{name: "space", verifier: strings.Repeat("a", 42) + " ", wantErr: ErrInvalidVerifier},
			{name: "plus", verifier: "+" + strings.Repeat("a", 42), wantErr: ErrInvalidVerifier},
			{name: "non ascii", verifier: strings.Repeat("a", 41) + "é", wantErr: ErrInvalidVerifier},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				challenge, err := GenerateChallenge(ctx, tt.verifier)
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, challenge)
			})
		}
	})

	t.Run("hasher failure", func(t *testing.T) {
		errDown := errors.New("digest backend down")
		g := New(WithHasher(HasherFunc(func(context.Context, []byte) ([]byte, error) {
			return nil, errDown
		})))

		challenge, err := g.Challenge(ctx, strings.Repeat("a", 43))
		require.ErrorIs(t, err, ErrHashingUnavailable)
		require.ErrorIs(t, err, errDown)
		require.Empty(t, challenge)
	})

	t.Run("no weaker digest", func(t *testing.T) {
		g := New(WithHasher(HasherFunc(func(context.Context, []byte) ([]byte, error) {
			return make([]byte, 20), nil
		})))

		_, err := g.Challenge(ctx, strings.Repeat("a", 43))
		require.ErrorIs(t, err, ErrHashingUnavailable)
	})

	t.Run("missing hasher", func(t *testing.T) {
		g := New(WithHasher(nil))

		_, err := g.Challenge(ctx, strings.Repeat("a", 43))
		require.ErrorIs(t, err, ErrHashingUnavailable)
	})
}

func TestGenerate(t *testing.T) {
	verifier, err := GenerateVerifier(43)
	require.NoError(t, err)
	require.Len(t, verifier, 43)

	challenge, err := GenerateChallenge(context.Background(), verifier)
	require.NoError(t, err)
	require.Len(t, challenge, 43)
	require.Equal(t, LevelMinimum, Classify(43))

	pair, err := New().Generate(context.Background(), 128)
	require.NoError(t, err)
	require.Len(t, pair.Verifier, 128)
	require.Equal(t, oauth2.S256ChallengeFromVerifier(pair.Verifier), pair.Challenge)

	_, err = New().Generate(context.Background(), 20)
	require.ErrorIs(t, err, ErrInvalidLength)
}
