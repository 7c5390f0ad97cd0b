// Package session owns the state of one PKCE generation session: the
// requested verifier length, the current verifier/challenge pair and the
// Idle/Generating state machine that allows one generation at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/pkcegen/internal/clipboard"
	"github.com/charmbracelet/pkcegen/internal/pkce"
	"github.com/google/uuid"
)

const (
	// DefaultLength is the verifier length used when none is configured.
	DefaultLength = pkce.MaxVerifierLength
	// LengthStep is the increment used by IncreaseLength and DecreaseLength.
	LengthStep = 5
)

// ErrGenerationInProgress is returned by Begin while a generation runs.
var ErrGenerationInProgress = errors.New("generation already in progress")

// State represents the generation state of a session.
type State int

const (
	StateIdle State = iota
	StateGenerating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateGenerating:
		return "generating"
	default:
		return "unknown"
	}
}

// CopyTarget selects what a copy action puts on the clipboard.
type CopyTarget int

const (
	CopyVerifier CopyTarget = iota
	CopyChallenge
	CopyAll
)

// Label is the user-facing name of the copied value.
func (t CopyTarget) Label() string {
	switch t {
	case CopyVerifier:
		return "Code verifier"
	case CopyChallenge:
		return "Code challenge"
	case CopyAll:
		return "All values"
	default:
		return "Value"
	}
}

// Controller holds session state. It is not safe for concurrent use; callers
// drive it from a single event loop.
type Controller struct {
	id        string
	generator *pkce.Generator
	clipboard clipboard.Writer
	now       func() time.Time

	state       State
	length      int
	pair        pkce.Pair
	generatedAt time.Time
	err         error
}

// Option configures a Controller.
type Option func(*Controller)

// WithGenerator sets the PKCE generator.
func WithGenerator(g *pkce.Generator) Option {
	return func(c *Controller) {
		c.generator = g
	}
}

// WithClipboard sets the clipboard capability.
func WithClipboard(w clipboard.Writer) Option {
	return func(c *Controller) {
		c.clipboard = w
	}
}

// WithClock sets the time source used for export timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLength sets the initial verifier length. Invalid lengths fall back to
// DefaultLength.
func WithLength(length int) Option {
	return func(c *Controller) {
		if pkce.ValidLength(length) {
			c.length = length
		}
	}
}

// New returns an idle controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		id:        uuid.NewString(),
		generator: pkce.New(),
		clipboard: clipboard.System{},
		now:       time.Now,
		length:    DefaultLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the session identifier used in logs.
func (c *Controller) ID() string { return c.id }

// State returns the generation state.
func (c *Controller) State() State { return c.state }

// Generating reports whether a generation is in flight.
func (c *Controller) Generating() bool { return c.state == StateGenerating }

// Length returns the configured verifier length.
func (c *Controller) Length() int { return c.length }

// Level returns the security level of the configured length.
func (c *Controller) Level() pkce.Level { return pkce.Classify(c.length) }

// Verifier returns the current verifier, or "".
func (c *Controller) Verifier() string { return c.pair.Verifier }

// Challenge returns the challenge of the current verifier, or "".
func (c *Controller) Challenge() string { return c.pair.Challenge }

// HasValues reports whether a verifier/challenge pair is available.
func (c *Controller) HasValues() bool {
	return c.pair.Verifier != "" && c.pair.Challenge != ""
}

// GeneratedAt returns when the current pair was generated.
func (c *Controller) GeneratedAt() time.Time { return c.generatedAt }

// Err returns the error of the last generation, if it failed.
func (c *Controller) Err() error { return c.err }

// SetLength sets the verifier length used by the next generation.
func (c *Controller) SetLength(length int) error {
	if !pkce.ValidLength(length) {
		return fmt.Errorf("%w: got %d", pkce.ErrInvalidLength, length)
	}
	c.length = length
	return nil
}

// IncreaseLength adds LengthStep to the length, up to the maximum.
func (c *Controller) IncreaseLength() int {
	c.length = min(pkce.MaxVerifierLength, c.length+LengthStep)
	return c.length
}

// DecreaseLength subtracts LengthStep from the length, down to the minimum.
func (c *Controller) DecreaseLength() int {
	c.length = max(pkce.MinVerifierLength, c.length-LengthStep)
	return c.length
}

// Begin moves the session to StateGenerating and returns the length to
// generate. It fails while another generation is in flight.
func (c *Controller) Begin() (int, error) {
	if c.state == StateGenerating {
		return 0, ErrGenerationInProgress
	}
	c.state = StateGenerating
	c.err = nil
	return c.length, nil
}

// Finish completes a generation started with Begin. On success both values
// are replaced together; on failure both are cleared.
func (c *Controller) Finish(pair pkce.Pair, err error) {
	c.state = StateIdle
	if err == nil && (pair.Verifier == "" || pair.Challenge == "") {
		err = pkce.ErrIncompleteState
	}
	if err != nil {
		c.pair = pkce.Pair{}
		c.generatedAt = time.Time{}
		c.err = err
		slog.Warn("PKCE generation failed", "session", c.id, "error", err)
		return
	}

	c.pair = pair
	c.generatedAt = c.now()
	c.err = nil
	slog.Info("Generated PKCE values", "session", c.id, "length", len(pair.Verifier))
}

// Generate runs a full generation synchronously.
func (c *Controller) Generate(ctx context.Context) error {
	length, err := c.Begin()
	if err != nil {
		return err
	}
	pair, err := c.generator.Generate(ctx, length)
	c.Finish(pair, err)
	return err
}

// Generator returns the PKCE generator used by Generate.
func (c *Controller) Generator() *pkce.Generator { return c.generator }

// Clear drops the current values and error.
func (c *Controller) Clear() {
	c.pair = pkce.Pair{}
	c.generatedAt = time.Time{}
	c.err = nil
}

// Export returns the JSON export of the current values, stamped with the
// current time.
func (c *Controller) Export() ([]byte, error) {
	return pkce.BuildExport(c.pair.Verifier, c.pair.Challenge, c.now())
}

// CopyText returns the text a copy action would place on the clipboard.
func (c *Controller) CopyText(target CopyTarget) (string, error) {
	switch target {
	case CopyVerifier:
		if c.pair.Verifier == "" {
			return "", pkce.ErrIncompleteState
		}
		return c.pair.Verifier, nil
	case CopyChallenge:
		if c.pair.Challenge == "" {
			return "", pkce.ErrIncompleteState
		}
		return c.pair.Challenge, nil
	case CopyAll:
		data, err := c.Export()
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown copy target %d", target)
	}
}

// Copy writes the selected value to the clipboard. A clipboard failure
// leaves the session untouched and wraps clipboard.ErrUnavailable.
func (c *Controller) Copy(ctx context.Context, target CopyTarget) error {
	text, err := c.CopyText(target)
	if err != nil {
		return err
	}
	return c.WriteClipboard(ctx, text)
}

// WriteClipboard writes text with the session's clipboard. It does not read
// or modify session state, so it may run outside the event loop.
func (c *Controller) WriteClipboard(ctx context.Context, text string) error {
	if err := clipboard.Write(ctx, c.clipboard, text); err != nil {
		slog.Warn("Clipboard write failed", "session", c.id, "error", err)
		return err
	}
	return nil
}
