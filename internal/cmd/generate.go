package cmd

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/pkcegen/internal/pkce"
	"github.com/charmbracelet/pkcegen/internal/session"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

type generateOptions struct {
	json         bool
	copy         bool
	authorizeURL string
	clientID     string
	redirectURI  string
	scopes       []string
}

func newGenerateCmd(a *app) *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a new code verifier and challenge",
		Example: heredoc.Doc(`
			# Print a 128 character verifier and its S256 challenge
			pkcegen generate

			# Machine readable output
			pkcegen generate --length 43 --json

			# Build an authorization request for the new challenge
			pkcegen generate --authorize-url https://auth.example.com/authorize \
			  --client-id my-app --redirect-uri http://localhost:8080/callback \
			  --scope openid --scope profile
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, a, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the export document as JSON")
	cmd.Flags().BoolVarP(&opts.copy, "copy", "c", false, "Copy the export document to the clipboard")
	cmd.Flags().StringVar(&opts.authorizeURL, "authorize-url", "", "Authorization endpoint to build a request URL for")
	cmd.Flags().StringVar(&opts.clientID, "client-id", "", "OAuth client ID for the authorization URL")
	cmd.Flags().StringVar(&opts.redirectURI, "redirect-uri", "", "Redirect URI for the authorization URL")
	cmd.Flags().StringSliceVar(&opts.scopes, "scope", nil, "Scope for the authorization URL (repeatable)")
	return cmd
}

func runGenerate(cmd *cobra.Command, a *app, opts generateOptions) error {
	ctx := cmd.Context()
	sess := a.newSession()
	if err := sess.Generate(ctx); err != nil {
		return fmt.Errorf("failed to generate PKCE values: %w", err)
	}

	var authURL, state string
	if opts.authorizeURL != "" {
		var err error
		state, err = pkce.NewState()
		if err != nil {
			return err
		}
		authURL, err = pkce.AuthorizeURL(pkce.AuthorizeParams{
			AuthURL:     opts.authorizeURL,
			ClientID:    opts.clientID,
			RedirectURI: opts.redirectURI,
			Scopes:      opts.scopes,
			State:       state,
			Challenge:   sess.Challenge(),
		})
		if err != nil {
			return err
		}
	}

	if opts.copy {
		if err := sess.Copy(ctx, session.CopyAll); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), session.CopyAll.Label()+" copied to clipboard")
	}

	w := cmd.OutOrStdout()
	if !opts.json {
		return printGenerated(w, sess, authURL, state)
	}

	data, err := sess.Export()
	if err != nil {
		return err
	}
	if authURL != "" {
		data, err = withAuthorization(data, authURL, state)
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(w, strings.TrimSpace(string(data)))
	return err
}

// withAuthorization appends the authorization request to an export document.
func withAuthorization(data []byte, authURL, state string) ([]byte, error) {
	data, err := sjson.SetBytes(data, "authorize_url", authURL)
	if err != nil {
		return nil, fmt.Errorf("failed to set authorize_url: %w", err)
	}
	data, err = sjson.SetBytes(data, "state", state)
	if err != nil {
		return nil, fmt.Errorf("failed to set state: %w", err)
	}
	return []byte(gjson.GetBytes(data, "@pretty").Raw), nil
}

func printGenerated(w io.Writer, sess *session.Controller, authURL, state string) error {
	label := lipgloss.NewStyle().Width(16)
	rows := [][2]string{
		{"Code verifier:", sess.Verifier()},
		{"Code challenge:", sess.Challenge()},
		{"Method:", pkce.MethodS256},
		{"Length:", fmt.Sprintf("%d (%s)", len(sess.Verifier()), sess.Level())},
	}
	if authURL != "" {
		rows = append(rows,
			[2]string{"State:", state},
			[2]string{"Authorize URL:", authURL},
		)
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, label.Render(row[0])+row[1]); err != nil {
			return err
		}
	}
	return nil
}
