package cmd

import (
	"fmt"

	"fleetwash/core/middleware/auth"
	"fleetwash/feature/users"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var newUser users.NewUser

// usersCmd groups user management commands.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage login accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadCatalog()
		if err != nil {
			return err
		}
		list, err := a.users.List()
		if err != nil {
			return err
		}
		views := make([]users.View, 0, len(list))
		for _, u := range list {
			views = append(views, users.NewView(u))
		}
		return printJSON(views)
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an account",
	Long: `Creates an account in the users file. The password is stored as a bcrypt hash.

Example:
  users add --username mgomez --name "Miguel Gomez" --role supervisor --supervisor sup-miguel-gomez --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadCatalog()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		u, err := a.users.Add(newUser)
		if err != nil {
			return fmt.Errorf("failed to add user: %w", err)
		}
		a.logger.Info("User created", zap.String("username", u.Username), zap.String("role", string(u.Role)))
		return nil
	},
}

func init() {
	f := usersAddCmd.Flags()
	f.StringVar(&newUser.Username, "username", "", "Login name")
	f.StringVar(&newUser.Name, "name", "", "Display name")
	f.StringVar((*string)(&newUser.Role), "role", string(auth.RoleSupervisor), "Role (admin, supervisor)")
	f.StringVar(&newUser.SupervisorID, "supervisor", "", "Directory supervisor id (supervisors only)")
	f.StringVar(&newUser.Password, "password", "", "Password")
	_ = usersAddCmd.MarkFlagRequired("username")
	_ = usersAddCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(usersListCmd, usersAddCmd)
	RootCmd.AddCommand(usersCmd)
}
