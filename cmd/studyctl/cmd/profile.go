package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	profileFirstName string
	profileLastName  string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, jar, err := authedClient(cmd.Context())
		if err != nil {
			return err
		}
		defer persistSession(jar)

		if profileFirstName != "" || profileLastName != "" {
			user, err := c.UpdateProfile(cmd.Context(), profileFirstName, profileLastName)
			if err != nil {
				return err
			}
			fmt.Printf("Updated: %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
			return nil
		}

		user, err := c.Profile(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Name:  %s %s\n", user.FirstName, user.LastName)
		fmt.Printf("Email: %s\n", user.Email)
		fmt.Printf("Role:  %s\n", user.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVar(&profileFirstName, "first-name", "", "New first name")
	profileCmd.Flags().StringVar(&profileLastName, "last-name", "", "New last name")
}
