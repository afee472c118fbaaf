// Package cli wires the cobra command tree. A bare invocation opens the
// interactive console; subcommands cover account management and build info.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gwork/gwork-cli/internal/accountstore"
	"github.com/gwork/gwork-cli/internal/apierr"
	"github.com/gwork/gwork-cli/internal/session"
	"github.com/gwork/gwork-cli/internal/tui"
)

type App struct {
	ConfigPath string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "gwork",
		Short:        "Google Workspace from one terminal console",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	defaultPath, _ := accountstore.DefaultPath()
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("GWORK_CONFIG", defaultPath), "Path to the account store")

	cmd.AddCommand(newAccountsCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	st, err := loadOrInit(cmd, app)
	if err != nil {
		return err
	}
	if !st.ValidateActive() {
		return apierr.Configf("active account %q has incomplete credentials; run 'gwork accounts add'", st.ActiveAccount)
	}
	mgr, err := session.New(st, app.ConfigPath)
	if err != nil {
		return err
	}
	return tui.Run(mgr)
}

// loadOrInit loads the account store, falling into first-time setup when no
// store or no accounts exist yet.
func loadOrInit(cmd *cobra.Command, app *App) (*accountstore.Store, error) {
	st, err := accountstore.Load(app.ConfigPath)
	if err != nil {
		// A missing file means first run; Load has already tried the
		// legacy locations. Anything else is a real failure.
		if _, statErr := os.Stat(app.ConfigPath); !errors.Is(statErr, os.ErrNotExist) {
			return nil, err
		}
		st = &accountstore.Store{Accounts: map[string]accountstore.Account{}}
	}
	if len(st.Accounts) > 0 {
		return st, nil
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), "  No accounts configured. Let's add one.")
	fmt.Fprintln(cmd.OutOrStdout())
	name, acct, err := promptAccount(cmd)
	if err != nil {
		return nil, err
	}
	st.Add(name, acct)
	st.Switch(name)
	if err := accountstore.SaveAtomic(app.ConfigPath, st); err != nil {
		return nil, err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "\n  Config saved! Starting gwork...")
	return st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
