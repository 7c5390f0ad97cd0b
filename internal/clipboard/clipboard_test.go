package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		var got string
		w := WriterFunc(func(_ context.Context, text string) error {
			got = text
			return nil
		})

		require.NoError(t, Write(context.Background(), w, "hello"))
		require.Equal(t, "hello", got)
	})

	t.Run("failure wraps ErrUnavailable", func(t *testing.T) {
		errNoDisplay := errors.New("no display")
		w := WriterFunc(func(context.Context, string) error {
			return errNoDisplay
		})

		err := Write(context.Background(), w, "hello")
		require.ErrorIs(t, err, ErrUnavailable)
		require.ErrorIs(t, err, errNoDisplay)
	})

	t.Run("already wrapped errors are kept", func(t *testing.T) {
		w := WriterFunc(func(context.Context, string) error {
			return ErrUnavailable
		})

		require.Equal(t, ErrUnavailable, Write(context.Background(), w, "hello"))
	})

	t.Run("nil writer", func(t *testing.T) {
		require.ErrorIs(t, Write(context.Background(), nil, "hello"), ErrUnavailable)
	})
}

func TestSystemCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := System{}.WriteText(ctx, "hello")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, context.Canceled)
}
