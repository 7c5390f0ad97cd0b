package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/pkcegen/internal/shortcut"
)

// keyNames maps special keys to the names used in shortcut bindings.
var keyNames = map[rune]string{
	tea.KeyUp:        "arrowup",
	tea.KeyDown:      "arrowdown",
	tea.KeyLeft:      "arrowleft",
	tea.KeyRight:     "arrowright",
	tea.KeyEscape:    "escape",
	tea.KeyEnter:     "enter",
	tea.KeyTab:       "tab",
	tea.KeySpace:     " ",
	tea.KeyBackspace: "backspace",
	tea.KeyDelete:    "delete",
	tea.KeyHome:      "home",
	tea.KeyEnd:       "end",
	tea.KeyPgUp:      "pageup",
	tea.KeyPgDown:    "pagedown",
}

// keyEvent converts a terminal key press into a shortcut event. Super and
// Meta (Cmd on macOS terminals that report it) count as control
// equivalents.
func keyEvent(msg tea.KeyPressMsg, target shortcut.Target) shortcut.KeyEvent {
	k := msg.Key()
	return shortcut.KeyEvent{
		Key:    keyName(k),
		Ctrl:   k.Mod.Contains(tea.ModCtrl),
		Meta:   k.Mod.Contains(tea.ModMeta) || k.Mod.Contains(tea.ModSuper),
		Shift:  k.Mod.Contains(tea.ModShift),
		Alt:    k.Mod.Contains(tea.ModAlt),
		Target: target,
	}
}

func keyName(k tea.Key) string {
	if name, ok := keyNames[k.Code]; ok {
		return name
	}
	if k.Text != "" {
		return k.Text
	}
	return string(k.Code)
}

// isPlain reports whether k is the given key without modifiers.
func isPlain(k tea.Key, code rune) bool {
	return k.Code == code && k.Mod == 0
}
