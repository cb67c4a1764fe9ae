package command

// auth.go handles authentication: login, logout and the current identity.

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate against the library API gateway. Supports login, logout and whoami.`,
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the library console",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		if password == "" {
			var err error
			password, err = promptPassword()
			if err != nil {
				return err
			}
		}

		identity, err := sessions.Login(cmd.Context(), username, password)
		if err != nil {
			// Rejection and transport failure read the same to the user.
			return errors.New("login failed: invalid username or password")
		}

		fmt.Printf("✓ Logged in as %s (%s)\n", identity.Username, identity.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessions.Logout(); err != nil {
			return err
		}
		fmt.Println("✓ Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current identity",
	Run: func(cmd *cobra.Command, args []string) {
		identity := sessions.Current()
		if identity == nil {
			fmt.Println("Not logged in.")
			return
		}
		fmt.Printf("%s <%s> (%s)\n", identity.Username, identity.Email, identity.Role)
	},
}

func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringP("username", "u", "", "Username for the account")
	loginCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")
	loginCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(authCmd)
}
