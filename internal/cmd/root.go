// Package cmd wires the pkcegen command line.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"charm.land/fang/v2"
	tea "charm.land/bubbletea/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/pkcegen/internal/clipboard"
	"github.com/charmbracelet/pkcegen/internal/config"
	"github.com/charmbracelet/pkcegen/internal/log"
	"github.com/charmbracelet/pkcegen/internal/session"
	"github.com/charmbracelet/pkcegen/internal/shortcut"
	"github.com/charmbracelet/pkcegen/internal/tui"
	"github.com/charmbracelet/pkcegen/internal/version"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// app carries the state shared by all commands after the pre-run hook.
type app struct {
	clipboard clipboard.Writer
	now       func() time.Time

	cfg    *config.Config
	store  *config.Store
	prefs  *config.Preferences
	length int
}

func newApp() *app {
	return &app{
		clipboard: clipboard.System{},
		now:       time.Now,
	}
}

func newRootCmd(a *app) *cobra.Command {
	var (
		length int
		debug  bool
	)

	rootCmd := &cobra.Command{
		Use:   "pkcegen",
		Short: "Generate PKCE code verifiers and challenges",
		Long: heredoc.Doc(`
			Generate OAuth 2.0 PKCE (RFC 7636) code verifier and S256 code
			challenge pairs.

			Run without arguments in a terminal for the interactive generator.
			When output is not a terminal it behaves like "pkcegen generate".
		`),
		Example: heredoc.Doc(`
			# Open the interactive generator
			pkcegen

			# Print a 64 character verifier and its challenge
			pkcegen generate --length 64

			# Print the JSON export and copy it to the clipboard
			pkcegen generate --json --copy
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			interactive := cmd.Root() == cmd && isTerminal(cmd.OutOrStdout())
			return a.setup(cmd, length, debug, interactive)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return runGenerate(cmd, a, generateOptions{})
			}
			return runTUI(cmd.Context(), a)
		},
	}

	rootCmd.PersistentFlags().IntVarP(&length, "length", "l", 0, "Code verifier length (43-128)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Debug")

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newShortcutsCmd(a),
	)
	return rootCmd
}

// setup loads configuration, logging and saved preferences.
func (a *app) setup(cmd *cobra.Command, length int, debug, interactive bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	debug = debug || cfg.Debug

	if interactive {
		log.Setup(cfg.LogFile(), debug)
	} else {
		log.SetupConsole(cmd.ErrOrStderr(), debug)
	}

	store := config.NewStore(cfg.DataDir)
	prefs, err := store.Load()
	if err != nil {
		slog.Warn("Ignoring unreadable preferences", "path", store.Path(), "error", err)
		prefs = nil
	}

	resolved, err := config.ResolveLength(length, cmd.Flags().Changed("length"), cfg, prefs)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.store = store
	a.prefs = prefs
	a.length = resolved
	slog.Debug("Configuration loaded", "data_dir", cfg.DataDir, "length", resolved)
	return nil
}

func (a *app) platform() shortcut.Platform {
	if a.cfg == nil {
		return shortcut.CurrentPlatform()
	}
	return shortcut.ParsePlatform(a.cfg.KeyGlyphs)
}

func (a *app) newSession() *session.Controller {
	return session.New(
		session.WithLength(a.length),
		session.WithClipboard(a.clipboard),
		session.WithClock(a.now),
	)
}

func runTUI(ctx context.Context, a *app) error {
	showSettings := a.prefs != nil && a.prefs.ShowSettings
	model := tui.New(ctx, tui.Options{
		Session:      a.newSession(),
		Store:        a.store,
		Platform:     a.platform(),
		ShowSettings: showSettings,
	})

	program := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run interactive generator: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Execute runs the root command.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(newApp()),
		fang.WithVersion(version.Version),
	); err != nil {
		os.Exit(1)
	}
}
