package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/pkcegen/internal/pkce"
	"github.com/charmbracelet/pkcegen/internal/shortcut"
	"github.com/dustin/go-humanize"
)

const (
	verifierHint  = "High-entropy cryptographic random string (43-128 characters)"
	challengeHint = "Base64url-encoded SHA256 hash of the code verifier"

	// Legacy terminals report Ctrl+Shift+C as Ctrl+C.
	shiftComboNote = "Shift combos need a terminal that reports keyboard enhancements."
)

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *Model) render() string {
	s := m.styles
	sections := []string{
		s.title.Render("PKCE Generator"),
		s.subtitle.Render("Create a cryptographically secure code verifier and challenge pair"),
		"",
	}

	if m.showShortcuts {
		sections = append(sections, m.renderShortcuts())
	} else {
		sections = append(sections, m.renderButton())
		if m.showSettings {
			sections = append(sections, m.renderSettings())
		}
		if err := m.session.Err(); err != nil {
			sections = append(sections, s.errorText.Render("Error: "+err.Error()))
		}
		if m.session.HasValues() {
			sections = append(sections, "", m.renderValues())
		}
	}

	if m.toast.text != "" {
		style := s.success
		if m.toast.isErr {
			style = s.errorText
		}
		sections = append(sections, "", style.Render(m.toast.text))
	}
	sections = append(sections, "", m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderButton() string {
	s := m.styles
	if m.session.Generating() {
		return s.buttonBusy.Render(m.spinner.View() + " Generating...")
	}
	label := fmt.Sprintf("Generate %d-char PKCE", m.session.Length())
	if m.focus == focusGenerate {
		return s.buttonFocus.Render(label)
	}
	return s.button.Render(label)
}

func (m *Model) renderSettings() string {
	s := m.styles
	level := m.session.Level()
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		s.label.Render("Code Verifier Length "),
		fmt.Sprintf("%d chars ", m.session.Length()),
		s.badge.Foreground(levelColor(level)).Render(level.String()),
	)
	input := m.lengthInput.View()
	if m.focus != focusLength {
		input = m.lengthInput.Value()
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"Length: "+input,
		s.description.Render(fmt.Sprintf("RFC 7636 requires %d-%d characters. Longer verifiers provide more entropy.",
			pkce.MinVerifierLength, pkce.MaxVerifierLength)),
	)
	return s.panel.Render(body)
}

func (m *Model) renderValues() string {
	s := m.styles
	value := s.value
	if m.width > 4 {
		value = value.Width(m.width - 4)
	}
	parts := []string{
		s.label.Render("Code Verifier"),
		s.description.Render(verifierHint),
		value.Render(m.session.Verifier()),
		s.label.Render("Code Challenge"),
		s.description.Render(challengeHint),
		value.Render(m.session.Challenge()),
	}
	if at := m.session.GeneratedAt(); !at.IsZero() {
		parts = append(parts, s.description.Render(
			fmt.Sprintf("Method %s, generated %s", pkce.MethodS256, humanize.Time(at))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderShortcuts() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.label.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, g := range m.dispatcher.Registry().Groups() {
		b.WriteString("\n")
		b.WriteString(s.category.Render(g.Category))
		b.WriteString("\n")
		for _, binding := range g.Bindings {
			fmt.Fprintf(&b, "  %-14s %s\n",
				shortcut.Format(binding.Keys, m.platform), binding.Description)
		}
	}
	b.WriteString("\n")
	b.WriteString(s.description.Render(shiftComboNote))
	return s.panel.Render(b.String())
}

func (m *Model) renderHelp() string {
	s := m.styles
	items := []struct {
		action shortcut.Action
		label  string
	}{
		{shortcut.ActionGenerate, "generate"},
		{shortcut.ActionCopyVerifier, "copy verifier"},
		{shortcut.ActionToggleSettings, "settings"},
		{shortcut.ActionShowShortcuts, "shortcuts"},
		{shortcut.ActionQuit, "quit"},
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		keys := m.dispatcher.Registry().KeysFor(it.action)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, s.helpKey.Render(shortcut.Format(keys[0], m.platform))+" "+it.label)
	}
	return s.help.Render(strings.Join(parts, " • "))
}
