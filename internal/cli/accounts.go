package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gwork/gwork-cli/internal/accountstore"
	"github.com/gwork/gwork-cli/internal/apierr"
	"github.com/gwork/gwork-cli/internal/browseropen"
)

func newAccountsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage connected Google accounts",
	}
	cmd.AddCommand(newAccountsListCmd(app))
	cmd.AddCommand(newAccountsAddCmd(app))
	cmd.AddCommand(newAccountsRemoveCmd(app))
	cmd.AddCommand(newAccountsSwitchCmd(app))
	return cmd
}

func newAccountsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts; the active one is starred",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := accountstore.Load(app.ConfigPath)
			if err != nil {
				return err
			}
			for _, name := range st.AccountNames() {
				marker := "  "
				if name == st.ActiveAccount {
					marker = "* "
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s — %s\n", marker, name, st.Accounts[name].Label)
			}
			return nil
		},
	}
}

func newAccountsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Add an account and make it active",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := accountstore.Load(app.ConfigPath)
			if err != nil {
				st = &accountstore.Store{Accounts: map[string]accountstore.Account{}}
			}
			name, acct, err := promptAccount(cmd)
			if err != nil {
				return err
			}
			st.Add(name, acct)
			st.Switch(name)
			if err := accountstore.SaveAtomic(app.ConfigPath, st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account %q added and activated.\n", name)
			return nil
		},
	}
}

func newAccountsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := accountstore.Load(app.ConfigPath)
			if err != nil {
				return err
			}
			if len(st.Accounts) <= 1 {
				return apierr.Configf("cannot remove the only account")
			}
			if !st.Remove(args[0]) {
				return apierr.Configf("account %q not found", args[0])
			}
			if err := accountstore.SaveAtomic(app.ConfigPath, st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account %q removed.\n", args[0])
			return nil
		},
	}
}

func newAccountsSwitchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <name>",
		Short: "Make an account active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := accountstore.Load(app.ConfigPath)
			if err != nil {
				return err
			}
			if !st.Switch(args[0]) {
				return apierr.Configf("account %q not found", args[0])
			}
			if err := accountstore.SaveAtomic(app.ConfigPath, st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Switched to %q.\n", args[0])
			return nil
		},
	}
}

// promptAccount walks the manual token entry flow on the command's streams.
func promptAccount(cmd *cobra.Command) (string, accountstore.Account, error) {
	r := bufio.NewReader(cmd.InOrStdin())
	ask := func(msg string) (string, error) {
		fmt.Fprint(cmd.OutOrStdout(), msg)
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return "", &apierr.IOError{Err: err}
		}
		return strings.TrimSpace(line), nil
	}

	name, err := ask("  Account name (e.g. work, personal): ")
	if err != nil {
		return "", accountstore.Account{}, err
	}
	label, err := ask("  Display label (e.g. Work Gmail): ")
	if err != nil {
		return "", accountstore.Account{}, err
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), "  Get tokens from: https://console.cloud.google.com/apis/credentials")
	fmt.Fprintln(cmd.OutOrStdout(), "  Or use the OAuth Playground: https://developers.google.com/oauthplayground/")
	fmt.Fprintln(cmd.OutOrStdout())
	// Best effort, and only on a real terminal; token entry stays manual
	// either way.
	if isatty.IsTerminal(os.Stdout.Fd()) {
		_ = browseropen.Open("https://developers.google.com/oauthplayground/")
	}

	var creds accountstore.Credentials
	for _, p := range []struct {
		msg string
		dst *string
	}{
		{"  GOOGLE_OAUTH_CLIENT_ID: ", &creds.ClientID},
		{"  GOOGLE_OAUTH_CLIENT_SECRET: ", &creds.ClientSecret},
		{"  GOOGLE_OAUTH_ACCESS_TOKEN: ", &creds.AccessToken},
		{"  GOOGLE_OAUTH_REFRESH_TOKEN: ", &creds.RefreshToken},
	} {
		v, err := ask(p.msg)
		if err != nil {
			return "", accountstore.Account{}, err
		}
		*p.dst = v
	}
	// Expiry in the past forces a refresh on first use, which also
	// validates the pasted tokens.
	creds.TokenExpiry = time.Now()

	name = normalizeAccountName(name)
	if label == "" {
		label = name
	}
	return name, accountstore.Account{Label: label, Auth: creds}, nil
}

// normalizeAccountName lowercases and dashes the user-entered name, falling
// back to "default" when empty.
func normalizeAccountName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")
	if name == "" {
		return "default"
	}
	return name
}
