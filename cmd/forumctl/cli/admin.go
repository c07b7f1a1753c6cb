package cli

import (
	"fmt"

	"github.com/delesray/forum/internal/config"
	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/services/auth"

	"github.com/spf13/cobra"
)

var adminFlags config.AuthConfig

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin user unless the username is taken",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminFlags.AdminUsername == "" || adminFlags.AdminPassword == "" {
			return fmt.Errorf("--username and --password are required")
		}

		db, err := openDB()
		if err != nil {
			return err
		}

		authService := auth.NewAuthService(repository.NewUserRepository(db), cfg().Auth)
		if err := authService.CreateAdminUser(adminFlags); err != nil {
			return err
		}
		fmt.Printf("Admin %s is ready\n", adminFlags.AdminUsername)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminFlags.AdminUsername, "username", "", "Admin username")
	createAdminCmd.Flags().StringVar(&adminFlags.AdminPassword, "password", "", "Admin password")
	createAdminCmd.Flags().StringVar(&adminFlags.AdminEmail, "email", "", "Admin email (defaults to <username>@forum.local)")
	rootCmd.AddCommand(createAdminCmd)
}
