package pkce

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimestampFormat is the ISO-8601 layout used for generated_at.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Export is the JSON document produced by "copy all". Field order is part of
// the output format.
type Export struct {
	CodeVerifier        string `json:"code_verifier"`
	CodeChallenge       string `json:"code_challenge"`
	CodeChallengeMethod string `json:"code_challenge_method"`
	VerifierLength      int    `json:"verifier_length"`
	GeneratedAt         string `json:"generated_at"`
}

// NewExport builds the export for a verifier/challenge pair at time now.
func NewExport(verifier, challenge string, now time.Time) (Export, error) {
	if verifier == "" || challenge == "" {
		return Export{}, ErrIncompleteState
	}
	return Export{
		CodeVerifier:        verifier,
		CodeChallenge:       challenge,
		CodeChallengeMethod: MethodS256,
		VerifierLength:      len(verifier),
		GeneratedAt:         now.UTC().Format(TimestampFormat),
	}, nil
}

// BuildExport returns the pretty-printed JSON export for a verifier/challenge
// pair. It fails with ErrIncompleteState if either value is empty.
func BuildExport(verifier, challenge string, now time.Time) ([]byte, error) {
	export, err := NewExport(verifier, challenge, now)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}
	return data, nil
}
