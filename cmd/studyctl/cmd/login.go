package cmd

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginEmail string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(loginEmail)
		if email == "" {
			fmt.Print("Email: ")
			if _, err := fmt.Scanln(&email); err != nil {
				return err
			}
		}

		fmt.Print("Password: ")
		pwd, err := term.ReadPassword(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}

		c, jar := newClient()
		user, err := c.Login(cmd.Context(), email, string(pwd))
		if err != nil {
			return err
		}
		persistSession(jar)

		fmt.Printf("Signed in as %s %s <%s> (%s)\n",
			user.FirstName, user.LastName, user.Email, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _ := newClient()
		// Best-effort server-side revocation; the local session is
		// removed either way.
		if err := c.Bootstrap(cmd.Context()); err == nil {
			c.Logout(cmd.Context())
		}
		removeSession()
		fmt.Println("Signed out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address (prompted when omitted)")
}
