package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Azure/subscription-copilot/pkg/logger"
	"github.com/Azure/subscription-copilot/pkg/session"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Establish an Azure session",
	Long:  `Log in with the configured credential (or the ambient environment) and scope the session to a subscription.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession(os.Stdout)
		if err := establish(cmd, sess); err != nil {
			return fmt.Errorf("establishing session: %w", err)
		}
		logger.Infof("Connected. Active subscription: %s", sess.ActiveName())
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active subscription",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession(nil)
		if err := establish(cmd, sess); err != nil {
			logger.Warnf("not connected: %v", err)
			return nil
		}
		login, err := sess.Active()
		if err != nil {
			logger.Warnf("%v", err)
			return nil
		}
		fmt.Printf("Name:      %s\n", login.SubscriptionName)
		fmt.Printf("ID:        %s\n", login.SubscriptionID)
		fmt.Printf("Tenant:    %s\n", login.TenantID)
		fmt.Printf("Account:   %s\n", login.Account)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available subscriptions",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession(nil)
		if err := establish(cmd, sess); err != nil {
			logger.Warnf("not connected: %v", err)
			return nil
		}

		refresh, _ := cmd.Flags().GetBool("refresh")
		subs, err := sess.Available(cmd.Context(), refresh)
		if err != nil {
			var refreshErr *session.RefreshError
			if !errors.As(err, &refreshErr) {
				return err
			}
			logger.Warnf("%v (showing cached list)", refreshErr)
		}
		for _, sub := range subs {
			marker := " "
			if sub.Name == sess.ActiveName() {
				marker = "*"
			}
			fmt.Printf("%s %-36s  %-30s  %s\n", marker, sub.ID, sub.Name, sub.State)
		}
		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select [name]",
	Short: "Switch the active subscription",
	Long:  `Switch the session to another subscription. With no argument an interactive picker is shown, populated from the current account list.`,
	Args:  cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		sess := newSession(nil)
		if err := establish(cmd, sess); err != nil {
			logger.Debugf("completion lookup failed: %v", err)
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return sess.Names(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := newSession(os.Stdout)
		if err := establish(cmd, sess); err != nil {
			return fmt.Errorf("establishing session: %w", err)
		}

		var name string
		if len(args) > 0 {
			name = args[0]
		} else {
			picked, err := pickSubscription(sess.Names(), sess.ActiveName())
			if err != nil {
				return err
			}
			name = picked
		}

		if err := sess.Select(cmd.Context(), name); err != nil {
			return err
		}
		logger.Infof("Active subscription: %s", sess.ActiveName())
		return nil
	},
}

// pickSubscription shows an interactive select built from the cached
// subscription names, so only currently valid names can be chosen.
func pickSubscription(names []string, active string) (string, error) {
	if len(names) == 0 {
		return "", errors.New("no subscriptions available to select from")
	}

	options := make([]huh.Option[string], 0, len(names))
	for _, n := range names {
		options = append(options, huh.NewOption(n, n))
	}
	picked := active

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select the active subscription").
				Options(options...).
				Value(&picked),
		),
	)
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("subscription picker: %w", err)
	}
	return picked, nil
}

func init() {
	listCmd.Flags().Bool("refresh", false, "Re-fetch the subscription list before printing")
}
