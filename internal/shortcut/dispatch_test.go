package shortcut

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	newDispatcher := func(calls *[]Action) *Dispatcher[string] {
		d := NewDispatcher[string](DefaultRegistry())
		for _, action := range []Action{ActionGenerate, ActionCopyAll, ActionShowShortcuts} {
			d.Handle(action, func() string {
				*calls = append(*calls, action)
				return string(action)
			})
		}
		return d
	}

	t.Run("invokes matched handler", func(t *testing.T) {
		var calls []Action
		d := newDispatcher(&calls)

		out, handled := d.Dispatch(KeyEvent{Key: "g", Ctrl: true})
		require.True(t, handled)
		require.Equal(t, "generate", out)
		require.Equal(t, []Action{ActionGenerate}, calls)
		require.Equal(t, StateIdle, d.State())
	})

	t.Run("editable target suppresses dispatch", func(t *testing.T) {
		for _, target := range []Target{TargetTextInput, TargetTextArea, TargetSelect, TargetContentEditable} {
			var calls []Action
			d := newDispatcher(&calls)

			out, handled := d.Dispatch(KeyEvent{Key: "g", Ctrl: true, Target: target})
			require.False(t, handled, target.String())
			require.Empty(t, out)
			require.Empty(t, calls)
		}
	})

	t.Run("no match passes through", func(t *testing.T) {
		var calls []Action
		d := newDispatcher(&calls)

		_, handled := d.Dispatch(KeyEvent{Key: "x"})
		require.False(t, handled)
		require.Empty(t, calls)
	})

	t.Run("match without handler passes through", func(t *testing.T) {
		var calls []Action
		d := newDispatcher(&calls)

		_, handled := d.Dispatch(KeyEvent{Key: "k", Ctrl: true})
		require.False(t, handled)
		require.Empty(t, calls)
	})

	t.Run("both shortcut bindings reach the same handler", func(t *testing.T) {
		var calls []Action
		d := newDispatcher(&calls)

		_, handled := d.Dispatch(KeyEvent{Key: "?"})
		require.True(t, handled)
		_, handled = d.Dispatch(KeyEvent{Key: "?", Shift: true})
		require.True(t, handled)
		require.Equal(t, []Action{ActionShowShortcuts, ActionShowShortcuts}, calls)
	})

	t.Run("re-entrant dispatch is dropped", func(t *testing.T) {
		d := NewDispatcher[bool](DefaultRegistry())
		var inner bool
		var state State
		d.Handle(ActionGenerate, func() bool {
			state = d.State()
			_, inner = d.Dispatch(KeyEvent{Key: "c", Ctrl: true, Shift: true})
			return true
		})
		d.Handle(ActionCopyAll, func() bool {
			t.Fatal("nested handler must not run")
			return false
		})

		out, handled := d.Dispatch(KeyEvent{Key: "g", Ctrl: true})
		require.True(t, handled)
		require.True(t, out)
		require.False(t, inner)
		require.Equal(t, StateDispatching, state)
		require.Equal(t, StateIdle, d.State())
	})

	t.Run("handler replaced", func(t *testing.T) {
		d := NewDispatcher[int](DefaultRegistry())
		d.Handle(ActionGenerate, func() int { return 1 })
		d.Handle(ActionGenerate, func() int { return 2 })

		out, handled := d.Dispatch(KeyEvent{Key: "g", Meta: true})
		require.True(t, handled)
		require.Equal(t, 2, out)
	})
}
