// Package shortcut normalizes key events into canonical combinations and
// routes them to registered actions.
package shortcut

import (
	"slices"
	"strings"
)

// Modifier tokens.
const (
	TokenMod   = "mod"
	TokenShift = "shift"
	TokenAlt   = "alt"
)

// Target is the kind of control that had focus when a key was pressed.
type Target int

const (
	TargetNone Target = iota
	TargetTextInput
	TargetTextArea
	TargetSelect
	TargetContentEditable
)

// Editable reports whether the target accepts text; shortcuts are never
// dispatched to editable targets.
func (t Target) Editable() bool {
	return t != TargetNone
}

func (t Target) String() string {
	switch t {
	case TargetNone:
		return "none"
	case TargetTextInput:
		return "text input"
	case TargetTextArea:
		return "text area"
	case TargetSelect:
		return "select"
	case TargetContentEditable:
		return "content editable"
	default:
		return "unknown"
	}
}

// KeyEvent is a raw key press, independent of the terminal library that
// produced it.
type KeyEvent struct {
	// Key identifies the non-modifier key, e.g. "g", "ArrowUp", "?".
	Key string
	// Ctrl and Meta are both platform control equivalents and map to "mod".
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool

	Target Target
}

// Combo is a canonical, order-independent set of lowercase tokens.
type Combo []string

var keyAliases = map[string]string{
	"esc":      "escape",
	"up":       "arrowup",
	"down":     "arrowdown",
	"left":     "arrowleft",
	"right":    "arrowright",
	"return":   "enter",
	"space":    " ",
	"spacebar": " ",
}

var modifierKeys = map[string]bool{
	"control": true,
	"ctrl":    true,
	"meta":    true,
	"super":   true,
	"os":      true,
	"shift":   true,
	"alt":     true,
	"option":  true,
	"altgr":   true,
}

// canonicalKey lowercases a key name and resolves aliases.
func canonicalKey(key string) string {
	key = strings.ToLower(key)
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}

// NewCombo builds a canonical combo from tokens, lowercasing and
// de-duplicating them.
func NewCombo(tokens ...string) Combo {
	c := make(Combo, 0, len(tokens))
	for _, tok := range tokens {
		tok = canonicalKey(tok)
		if tok == "" || slices.Contains(c, tok) {
			continue
		}
		c = append(c, tok)
	}
	slices.Sort(c)
	return c
}

// Normalize turns a key event into its canonical combo. The event target is
// not consulted; suppression happens at dispatch.
func Normalize(ev KeyEvent) Combo {
	tokens := make([]string, 0, 4)
	if ev.Ctrl || ev.Meta {
		tokens = append(tokens, TokenMod)
	}
	if ev.Shift {
		tokens = append(tokens, TokenShift)
	}
	if ev.Alt {
		tokens = append(tokens, TokenAlt)
	}
	if key := canonicalKey(ev.Key); key != "" && !modifierKeys[key] {
		tokens = append(tokens, key)
	}
	return NewCombo(tokens...)
}

// Len returns the number of tokens.
func (c Combo) Len() int {
	return len(c)
}

// Has reports whether the combo contains tok, compared case-insensitively.
func (c Combo) Has(tok string) bool {
	_, found := slices.BinarySearch(c, canonicalKey(tok))
	return found
}

// Equal reports whether both combos hold the same tokens.
func (c Combo) Equal(o Combo) bool {
	return slices.Equal(c, o)
}

func (c Combo) String() string {
	return strings.Join(c, "+")
}
