// Package cmd is the cobra surface of azsub: a flat set of commands
// over one per-invocation subscription session.
package cmd

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Azure/subscription-copilot/pkg/azure"
	"github.com/Azure/subscription-copilot/pkg/logger"
	"github.com/Azure/subscription-copilot/pkg/session"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "azsub",
	Short:         "Manage the active Azure subscription session",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(rateCardCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

// newSession wires the real Azure collaborators into a fresh session.
// The azure.Client implements both the authenticator and the lister.
// A nil writer disables prompt installation.
func newSession(out io.Writer) *session.Session {
	az := azure.NewClient()
	var installer session.PromptInstaller
	if out != nil {
		installer = consoleInstaller{out: out}
	}
	return session.New(az, az, installer)
}

// establish is the shared "connect first" step for commands that
// operate on the session cache.
func establish(cmd *cobra.Command, sess *session.Session) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return sess.Establish(cmd.Context(), cfg.Credential(), cfg.Subscription)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().String("tenant", "", "Tenant ID of the service principal")
	rootCmd.PersistentFlags().String("client-id", "", "Client ID of the service principal")
	rootCmd.PersistentFlags().String("client-secret", "", "Client secret of the service principal")
	rootCmd.PersistentFlags().String("subscription", "", "Subscription name or ID to scope the session to")
}
