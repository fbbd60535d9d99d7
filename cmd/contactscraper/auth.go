package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"contactscraper/pkg/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage Instagram credentials",
	Long: `Store, list and remove the Instagram credentials used by the
instagram command. Credentials go to the system keychain when available,
otherwise to an encrypted file under the config directory.`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store Instagram credentials securely",
	RunE: func(cmd *cobra.Command, args []string) error {
		account, err := auth.PromptCredentials()
		if err != nil {
			return err
		}

		manager, err := auth.NewManager()
		if err != nil {
			return fmt.Errorf("opening credential store: %w", err)
		}
		if err := manager.Store(account); err != nil {
			return err
		}

		fmt.Printf("Credentials stored for %s\n", account.Username)
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout <username>",
	Short: "Remove stored credentials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := auth.NewManager()
		if err != nil {
			return fmt.Errorf("opening credential store: %w", err)
		}
		if err := manager.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Credentials removed for %s\n", args[0])
		return nil
	},
}

var authListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := auth.NewManager()
		if err != nil {
			return fmt.Errorf("opening credential store: %w", err)
		}
		accounts, err := manager.List()
		if err != nil {
			return err
		}
		if len(accounts) == 0 {
			fmt.Println("No stored accounts")
			return nil
		}
		for _, account := range accounts {
			fmt.Println(account.Username)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authListCmd)
}
