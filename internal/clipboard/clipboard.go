// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when the clipboard cannot be written.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer writes text to a clipboard.
type Writer interface {
	WriteText(ctx context.Context, text string) error
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc func(ctx context.Context, text string) error

// WriteText calls f.
func (f WriterFunc) WriteText(ctx context.Context, text string) error {
	return f(ctx, text)
}

// System writes to the operating system clipboard.
type System struct{}

// WriteText copies text to the system clipboard. Failures, including a
// missing clipboard utility, are reported as ErrUnavailable.
func (System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility found", ErrUnavailable)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Write calls w and guarantees that any failure wraps ErrUnavailable.
func Write(ctx context.Context, w Writer, text string) error {
	if w == nil {
		return fmt.Errorf("%w: no clipboard configured", ErrUnavailable)
	}
	err := w.WriteText(ctx, text)
	if err == nil || errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
