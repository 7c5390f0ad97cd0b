package shortcut

import (
	"runtime"
	"strings"
)

// Platform selects the glyph set used when rendering key labels.
type Platform int

const (
	PlatformOther Platform = iota
	PlatformMac
)

// CurrentPlatform returns the platform of the running binary.
func CurrentPlatform() Platform {
	if runtime.GOOS == "darwin" {
		return PlatformMac
	}
	return PlatformOther
}

// ParsePlatform maps a glyph preference ("mac", "pc") to a platform. Anything
// else selects the current platform.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mac", "macos", "darwin":
		return PlatformMac
	case "pc", "other", "linux", "windows":
		return PlatformOther
	default:
		return CurrentPlatform()
	}
}

// FormatKey renders a single key token for display.
func FormatKey(key string, p Platform) string {
	mac := p == PlatformMac
	switch canonicalKey(key) {
	case TokenMod:
		if mac {
			return "⌘"
		}
		return "Ctrl"
	case TokenShift:
		if mac {
			return "⇧"
		}
		return "Shift"
	case TokenAlt:
		if mac {
			return "⌥"
		}
		return "Alt"
	case " ":
		return "Space"
	case "arrowup":
		return "↑"
	case "arrowdown":
		return "↓"
	case "arrowleft":
		return "←"
	case "arrowright":
		return "→"
	case "enter":
		return "↵"
	case "escape":
		return "Esc"
	default:
		return strings.ToUpper(key)
	}
}

// Format renders a key list as a label, e.g. "Ctrl + Shift + C" or "⌘⇧C".
// It has no effect on matching.
func Format(keys []string, p Platform) string {
	labels := make([]string, len(keys))
	for i, key := range keys {
		labels[i] = FormatKey(key, p)
	}
	if p == PlatformMac {
		return strings.Join(labels, "")
	}
	return strings.Join(labels, " + ")
}
