package command

import (
	"fmt"

	"github.com/glucodiario/diario/users"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Inspect the user directory",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(listUsers)
	},
}

func listUsers(directory *users.Directory) error {
	for _, account := range directory.Accounts() {
		user := account.Profile()
		fmt.Printf("%d %s %s <%s>\n", user.Id, user.Role, user.FullName(), user.Email)
	}
	fmt.Println(directory.Stats())
	return nil
}

var usersLoginCmd = &cobra.Command{
	Use:   "login [email] [password]",
	Short: "Check a pair of credentials against the directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, password := args[0], args[1]
		return Run(func(directory *users.Directory) error {
			account, ok := directory.Login(email, password)
			if !ok {
				return fmt.Errorf("invalid credentials for %s", email)
			}
			user := account.Profile()
			fmt.Printf("authenticated as %s (%s, id %d)\n", user.FullName(), user.Role, user.Id)
			return nil
		})
	},
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersLoginCmd)
	rootCmd.AddCommand(usersCmd)
}
