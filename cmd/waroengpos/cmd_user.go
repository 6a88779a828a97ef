package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"waroengpos/app/services"
	"waroengpos/pkg/rbac"
)

var userRoleFlag string

// waroengpos user:create <name> <email> <password>
var userCreateCmd = &cobra.Command{
	Use:   "user:create <name> <email> <password>",
	Short: "Create an operator account",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}

		role := userRoleFlag
		if role != rbac.RoleAdmin && role != rbac.RoleCashier {
			return fmt.Errorf("unknown role %q (want %s or %s)", role, rbac.RoleAdmin, rbac.RoleCashier)
		}

		user, err := services.NewAuthService().RegisterUser(args[0], args[1], args[2], role)
		if err != nil {
			return err
		}

		fmt.Printf("Created user #%d %s (%s) with role %s\n", user.ID, user.Name, user.Email, user.Role)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVarP(&userRoleFlag, "role", "r", rbac.RoleCashier, "Account role (admin or cashier)")
}
