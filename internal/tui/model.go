// Package tui implements the interactive PKCE generator.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/pkcegen/internal/clipboard"
	"github.com/charmbracelet/pkcegen/internal/config"
	"github.com/charmbracelet/pkcegen/internal/pkce"
	"github.com/charmbracelet/pkcegen/internal/session"
	"github.com/charmbracelet/pkcegen/internal/shortcut"
)

const defaultToastDuration = 2 * time.Second

type focus int

const (
	focusGenerate focus = iota
	focusLength
)

type (
	generatedMsg struct {
		pair pkce.Pair
		err  error
	}
	copiedMsg struct {
		target session.CopyTarget
		err    error
	}
	toastExpiredMsg struct {
		id int
	}
)

type toast struct {
	id    int
	text  string
	isErr bool
}

// Options configures a Model.
type Options struct {
	Session      *session.Controller
	Registry     *shortcut.Registry
	Store        *config.Store
	Platform     shortcut.Platform
	ShowSettings bool

	// ToastDuration overrides how long notifications stay visible.
	ToastDuration time.Duration
}

// Model is the bubbletea model for the generator screen.
type Model struct {
	ctx        context.Context
	session    *session.Controller
	dispatcher *shortcut.Dispatcher[tea.Cmd]
	store      *config.Store
	platform   shortcut.Platform
	styles     styles

	lengthInput textinput.Model
	spinner     spinner.Model

	focus         focus
	showSettings  bool
	showShortcuts bool

	toast         toast
	toastSeq      int
	toastDuration time.Duration

	width  int
	height int
}

// New returns a Model driving opts.Session.
func New(ctx context.Context, opts Options) *Model {
	sess := opts.Session
	if sess == nil {
		sess = session.New()
	}
	registry := opts.Registry
	if registry == nil {
		registry = shortcut.DefaultRegistry()
	}
	for _, c := range registry.Conflicts() {
		slog.Warn("Shortcut shadowed by earlier binding", "conflict", c.String())
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 3
	ti.Placeholder = strconv.Itoa(session.DefaultLength)
	ti.SetValue(strconv.Itoa(sess.Length()))
	ti.CursorEnd()

	m := &Model{
		ctx:           ctx,
		session:       sess,
		dispatcher:    shortcut.NewDispatcher[tea.Cmd](registry),
		store:         opts.Store,
		platform:      opts.Platform,
		styles:        newStyles(),
		lengthInput:   ti,
		spinner:       spinner.New(spinner.WithSpinner(spinner.Dot)),
		showSettings:  opts.ShowSettings,
		toastDuration: opts.ToastDuration,
	}
	if m.toastDuration <= 0 {
		m.toastDuration = defaultToastDuration
	}
	m.registerHandlers()
	return m
}

func (m *Model) registerHandlers() {
	d := m.dispatcher
	d.Handle(shortcut.ActionGenerate, m.generate)
	d.Handle(shortcut.ActionClear, m.clear)
	d.Handle(shortcut.ActionCopyAll, func() tea.Cmd { return m.copy(session.CopyAll) })
	d.Handle(shortcut.ActionCopyVerifier, func() tea.Cmd { return m.copy(session.CopyVerifier) })
	d.Handle(shortcut.ActionCopyChallenge, func() tea.Cmd { return m.copy(session.CopyChallenge) })
	d.Handle(shortcut.ActionToggleSettings, m.toggleSettings)
	d.Handle(shortcut.ActionShowShortcuts, m.toggleShortcuts)
	d.Handle(shortcut.ActionIncreaseLength, func() tea.Cmd {
		m.session.IncreaseLength()
		m.syncLengthInput()
		return nil
	})
	d.Handle(shortcut.ActionDecreaseLength, func() tea.Cmd {
		m.session.DecreaseLength()
		m.syncLengthInput()
		return nil
	})
	d.Handle(shortcut.ActionFocusGenerate, m.focusGenerate)
	d.Handle(shortcut.ActionQuit, m.quit)
}

// Session returns the controller behind the model.
func (m *Model) Session() *session.Controller { return m.session }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	case generatedMsg:
		m.session.Finish(msg.pair, msg.err)
		if msg.err != nil {
			return m, m.notify("Failed to generate PKCE values", true)
		}
		return m, m.notify(fmt.Sprintf("PKCE values generated with %d character verifier!", len(msg.pair.Verifier)), false)
	case copiedMsg:
		if msg.err != nil {
			text := "Failed to copy to clipboard"
			if errors.Is(msg.err, clipboard.ErrUnavailable) {
				text = "Clipboard unavailable"
			}
			return m, m.notify(text, true)
		}
		return m, m.notify(msg.target.Label()+" copied to clipboard!", false)
	case toastExpiredMsg:
		if msg.id == m.toast.id {
			m.toast = toast{}
		}
		return m, nil
	case spinner.TickMsg:
		if !m.session.Generating() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.lengthInput.Focused() {
		var cmd tea.Cmd
		m.lengthInput, cmd = m.lengthInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	target := shortcut.TargetNone
	if m.lengthInput.Focused() {
		target = shortcut.TargetTextInput
	}
	if cmd, ok := m.dispatcher.Dispatch(keyEvent(msg, target)); ok {
		return cmd
	}

	if m.lengthInput.Focused() {
		return m.updateLengthInput(msg)
	}

	k := msg.Key()
	switch {
	case isPlain(k, tea.KeyTab):
		return m.cycleFocus()
	case isPlain(k, tea.KeyEnter), isPlain(k, tea.KeySpace):
		if m.focus == focusGenerate {
			return m.generate()
		}
	}
	return nil
}

func (m *Model) updateLengthInput(msg tea.KeyPressMsg) tea.Cmd {
	k := msg.Key()
	switch {
	case isPlain(k, tea.KeyEnter):
		return m.commitLength()
	case isPlain(k, tea.KeyEscape):
		m.syncLengthInput()
		return m.focusGenerate()
	case isPlain(k, tea.KeyTab):
		return m.cycleFocus()
	}
	var cmd tea.Cmd
	m.lengthInput, cmd = m.lengthInput.Update(msg)
	return cmd
}

func (m *Model) commitLength() tea.Cmd {
	n, err := strconv.Atoi(strings.TrimSpace(m.lengthInput.Value()))
	if err != nil {
		m.syncLengthInput()
		return m.notify("Length must be a number", true)
	}
	if err := m.session.SetLength(n); err != nil {
		m.syncLengthInput()
		return m.notify(fmt.Sprintf("Length must be between %d and %d", pkce.MinVerifierLength, pkce.MaxVerifierLength), true)
	}
	m.syncLengthInput()
	m.lengthInput.Blur()
	m.focus = focusGenerate
	return nil
}

func (m *Model) syncLengthInput() {
	m.lengthInput.SetValue(strconv.Itoa(m.session.Length()))
	m.lengthInput.CursorEnd()
}

func (m *Model) cycleFocus() tea.Cmd {
	if m.focus == focusGenerate && m.showSettings {
		m.focus = focusLength
		return m.lengthInput.Focus()
	}
	m.lengthInput.Blur()
	m.focus = focusGenerate
	return nil
}

func (m *Model) generate() tea.Cmd {
	length, err := m.session.Begin()
	if err != nil {
		slog.Debug("Generate ignored", "error", err)
		return nil
	}
	gen := m.session.Generator()
	ctx := m.ctx
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			pair, err := gen.Generate(ctx, length)
			return generatedMsg{pair: pair, err: err}
		},
	)
}

func (m *Model) clear() tea.Cmd {
	if !m.session.HasValues() && m.session.Err() == nil {
		return nil
	}
	m.session.Clear()
	return m.notify("Values cleared", false)
}

// copy captures the text on the event loop and writes it in a command.
func (m *Model) copy(target session.CopyTarget) tea.Cmd {
	text, err := m.session.CopyText(target)
	if err != nil {
		return m.notify("Generate values before copying", true)
	}
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		return copiedMsg{target: target, err: sess.WriteClipboard(ctx, text)}
	}
}

func (m *Model) toggleSettings() tea.Cmd {
	m.showSettings = !m.showSettings
	if !m.showSettings && m.focus == focusLength {
		m.syncLengthInput()
		m.lengthInput.Blur()
		m.focus = focusGenerate
	}
	return nil
}

func (m *Model) toggleShortcuts() tea.Cmd {
	m.showShortcuts = !m.showShortcuts
	return nil
}

func (m *Model) focusGenerate() tea.Cmd {
	m.showShortcuts = false
	m.lengthInput.Blur()
	m.focus = focusGenerate
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.savePreferences()
	return tea.Quit
}

func (m *Model) savePreferences() {
	if m.store == nil {
		return
	}
	prefs := &config.Preferences{
		VerifierLength: m.session.Length(),
		ShowSettings:   m.showSettings,
	}
	if err := m.store.Save(prefs); err != nil {
		slog.Warn("Failed to save preferences", "path", m.store.Path(), "error", err)
	}
}

func (m *Model) notify(text string, isErr bool) tea.Cmd {
	m.toastSeq++
	id := m.toastSeq
	m.toast = toast{id: id, text: text, isErr: isErr}
	return tea.Tick(m.toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
