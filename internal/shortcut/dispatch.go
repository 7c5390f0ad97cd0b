package shortcut

import "log/slog"

// State is the dispatcher's state. It only leaves StateIdle for the duration
// of a single Dispatch call.
type State int

const (
	StateIdle State = iota
	StateDispatching
)

// Dispatcher resolves key events against a Registry and invokes the handler
// registered for the matched action. Handlers return a value of type T so
// that callers can thread results (e.g. commands) back to their event loop.
type Dispatcher[T any] struct {
	registry *Registry
	handlers map[Action]func() T
	state    State
}

// NewDispatcher returns a dispatcher with an empty handler table.
func NewDispatcher[T any](registry *Registry) *Dispatcher[T] {
	return &Dispatcher[T]{
		registry: registry,
		handlers: make(map[Action]func() T),
	}
}

// Handle sets the handler for action, replacing any previous one.
func (d *Dispatcher[T]) Handle(action Action, fn func() T) {
	d.handlers[action] = fn
}

// Registry returns the binding table.
func (d *Dispatcher[T]) Registry() *Registry {
	return d.registry
}

// State returns the current dispatcher state.
func (d *Dispatcher[T]) State() State {
	return d.state
}

// Dispatch normalizes ev and, unless the event targets an editable control,
// runs the handler bound to the matching action. handled is true when a
// handler ran, in which case the caller must not process the event further.
// Events dispatched from inside a handler are dropped.
func (d *Dispatcher[T]) Dispatch(ev KeyEvent) (result T, handled bool) {
	if d.state == StateDispatching {
		slog.Debug("Dropping re-entrant key event", "key", ev.Key)
		return result, false
	}

	d.state = StateDispatching
	defer func() { d.state = StateIdle }()

	combo := Normalize(ev)
	if ev.Target.Editable() {
		slog.Debug("Shortcut suppressed for editable target", "combo", combo.String(), "target", ev.Target.String())
		return result, false
	}

	binding, ok := d.registry.Match(combo)
	if !ok {
		return result, false
	}
	fn, ok := d.handlers[binding.Action]
	if !ok || fn == nil {
		slog.Debug("No handler for shortcut", "binding", binding.Describe())
		return result, false
	}

	slog.Debug("Dispatching shortcut", "binding", binding.Describe())
	return fn(), true
}
