package shortcut

import (
	"fmt"
	"slices"
	"strings"
)

// Action identifies what a binding does. Handlers are attached to actions by
// a Dispatcher, never to bindings directly.
type Action string

const (
	ActionGenerate       Action = "generate"
	ActionClear          Action = "clear"
	ActionCopyAll        Action = "copy-all"
	ActionCopyVerifier   Action = "copy-verifier"
	ActionCopyChallenge  Action = "copy-challenge"
	ActionToggleSettings Action = "toggle-settings"
	ActionShowShortcuts  Action = "show-shortcuts"
	ActionIncreaseLength Action = "increase-length"
	ActionDecreaseLength Action = "decrease-length"
	ActionFocusGenerate  Action = "focus-generate"
	ActionQuit           Action = "quit"
)

// DefaultCategory is used for bindings registered without a category.
const DefaultCategory = "General"

// Binding maps a key combination to an action.
type Binding struct {
	// Keys as declared, e.g. ["mod", "shift", "c"]. Order only matters for
	// display.
	Keys        []string
	Description string
	Category    string
	Action      Action
}

// Combo returns the canonical combo of the binding's keys.
func (b Binding) Combo() Combo {
	return NewCombo(b.Keys...)
}

func (b Binding) category() string {
	if b.Category == "" {
		return DefaultCategory
	}
	return b.Category
}

// Registry is an immutable, ordered table of bindings.
type Registry struct {
	bindings []Binding
}

// NewRegistry validates and registers bindings in order. Bindings sharing a
// key set are allowed; the first registered one wins at match time.
func NewRegistry(bindings ...Binding) (*Registry, error) {
	r := &Registry{bindings: make([]Binding, 0, len(bindings))}
	for i, b := range bindings {
		if err := validateBinding(b); err != nil {
			return nil, fmt.Errorf("invalid binding %d (%s): %w", i, b.Action, err)
		}
		b.Keys = slices.Clone(b.Keys)
		r.bindings = append(r.bindings, b)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on invalid bindings. It is
// meant for static tables.
func MustRegistry(bindings ...Binding) *Registry {
	r, err := NewRegistry(bindings...)
	if err != nil {
		panic(err)
	}
	return r
}

func validateBinding(b Binding) error {
	if b.Action == "" {
		return fmt.Errorf("action is required")
	}
	if len(b.Keys) == 0 {
		return fmt.Errorf("at least one key is required")
	}
	seen := make(map[string]bool, len(b.Keys))
	for _, key := range b.Keys {
		key = canonicalKey(key)
		if key == "" {
			return fmt.Errorf("empty key")
		}
		if seen[key] {
			return fmt.Errorf("duplicate key %q", key)
		}
		seen[key] = true
	}
	return nil
}

// Bindings returns a copy of the registered bindings in registration order.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, len(r.bindings))
	for i, b := range r.bindings {
		b.Keys = slices.Clone(b.Keys)
		out[i] = b
	}
	return out
}

// Match returns the first binding whose keys are exactly the observed
// tokens: same count and every declared key present, case-insensitively.
// observed may be in any order or case.
func (r *Registry) Match(observed Combo) (Binding, bool) {
	observed = NewCombo(observed...)
	for _, b := range r.bindings {
		if len(b.Keys) != observed.Len() {
			continue
		}
		if !allIn(b.Keys, observed) {
			continue
		}
		return b, true
	}
	return Binding{}, false
}

func allIn(keys []string, observed Combo) bool {
	for _, key := range keys {
		if !observed.Has(key) {
			return false
		}
	}
	return true
}

// Conflict describes a binding that can never match because an earlier
// binding declares the same key set.
type Conflict struct {
	Combo    Combo
	Winner   Binding
	Shadowed Binding
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: %s shadows %s", c.Combo, c.Winner.Action, c.Shadowed.Action)
}

// Conflicts lists shadowed bindings in registration order.
func (r *Registry) Conflicts() []Conflict {
	var conflicts []Conflict
	first := make(map[string]Binding, len(r.bindings))
	for _, b := range r.bindings {
		key := b.Combo().String()
		if winner, ok := first[key]; ok {
			conflicts = append(conflicts, Conflict{Combo: b.Combo(), Winner: winner, Shadowed: b})
			continue
		}
		first[key] = b
	}
	return conflicts
}

// Group is a set of bindings sharing a category.
type Group struct {
	Category string
	Bindings []Binding
}

// Groups returns bindings grouped by category, in order of first appearance.
func (r *Registry) Groups() []Group {
	var groups []Group
	index := make(map[string]int)
	for _, b := range r.Bindings() {
		cat := b.category()
		i, ok := index[cat]
		if !ok {
			i = len(groups)
			index[cat] = i
			groups = append(groups, Group{Category: cat})
		}
		groups[i].Bindings = append(groups[i].Bindings, b)
	}
	return groups
}

// KeysFor returns the declared keys of every binding for action.
func (r *Registry) KeysFor(action Action) [][]string {
	var keys [][]string
	for _, b := range r.bindings {
		if b.Action == action {
			keys = append(keys, slices.Clone(b.Keys))
		}
	}
	return keys
}

// DefaultBindings returns the application's shortcut table.
func DefaultBindings() []Binding {
	return []Binding{
		{Keys: []string{TokenMod, "g"}, Description: "Generate new PKCE values", Category: "Generation", Action: ActionGenerate},
		{Keys: []string{TokenMod, "k"}, Description: "Clear values", Category: "Generation", Action: ActionClear},
		{Keys: []string{TokenMod, TokenShift, "c"}, Description: "Copy all as JSON", Category: "Clipboard", Action: ActionCopyAll},
		{Keys: []string{TokenMod, "c"}, Description: "Copy code verifier", Category: "Clipboard", Action: ActionCopyVerifier},
		{Keys: []string{TokenMod, TokenShift, "v"}, Description: "Copy code challenge", Category: "Clipboard", Action: ActionCopyChallenge},
		{Keys: []string{TokenMod, ","}, Description: "Toggle settings", Category: "Settings", Action: ActionToggleSettings},
		{Keys: []string{"arrowup"}, Description: "Increase length by 5", Category: "Settings", Action: ActionIncreaseLength},
		{Keys: []string{"arrowdown"}, Description: "Decrease length by 5", Category: "Settings", Action: ActionDecreaseLength},
		{Keys: []string{"?"}, Description: "Show keyboard shortcuts", Category: "Help", Action: ActionShowShortcuts},
		{Keys: []string{TokenShift, "?"}, Description: "Show keyboard shortcuts", Category: "Help", Action: ActionShowShortcuts},
		{Keys: []string{"escape"}, Description: "Focus generate button", Category: "Navigation", Action: ActionFocusGenerate},
		{Keys: []string{TokenMod, "q"}, Description: "Quit", Category: "Navigation", Action: ActionQuit},
	}
}

// DefaultRegistry returns a registry of DefaultBindings.
func DefaultRegistry() *Registry {
	return MustRegistry(DefaultBindings()...)
}

// Describe returns a one-line description of the binding for logs.
func (b Binding) Describe() string {
	return fmt.Sprintf("%s (%s)", b.Action, strings.Join(b.Keys, "+"))
}
