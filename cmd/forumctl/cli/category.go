package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/services"
	"github.com/delesray/forum/internal/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	grantWrite bool
	exportOut  string
)

func permissionService(db *gorm.DB, events services.EventPublisher) *services.CategoryPermissionService {
	return services.NewCategoryPermissionService(
		repository.NewCategoryPermissionRepository(db),
		repository.NewUserRepository(db),
		repository.NewCategoryRepository(db),
		events,
	)
}

func parseIDs(userArg, categoryArg string) (uint, uint, error) {
	userID, err := utils.ParseID(userArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid user id %q: %w", userArg, err)
	}
	categoryID, err := utils.ParseID(categoryArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid category id %q: %w", categoryArg, err)
	}
	return userID, categoryID, nil
}

var grantCmd = &cobra.Command{
	Use:   "grant <user-id> <category-id>",
	Short: "Give a user read access to a private category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, categoryID, err := parseIDs(args[0], args[1])
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		events, closeEvents := openEvents()
		defer closeEvents()

		svc := permissionService(db, events)
		ctx := context.Background()

		message, err := svc.Grant(ctx, userID, categoryID)
		if err != nil {
			return err
		}
		fmt.Println(message)

		if grantWrite {
			message, err := svc.ToggleWriteAccess(ctx, userID, categoryID)
			if err != nil {
				return err
			}
			fmt.Println(message)
		}
		return nil
	},
}

var revokeCmd = &cobra.Command{
	Use:   "revoke <user-id> <category-id>",
	Short: "Remove a user's access to a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, categoryID, err := parseIDs(args[0], args[1])
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		events, closeEvents := openEvents()
		defer closeEvents()

		return permissionService(db, events).Revoke(context.Background(), userID, categoryID)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <category-id>",
	Short: "Write the privileged users of a private category to an XLSX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		categoryID, err := utils.ParseID(args[0])
		if err != nil {
			return fmt.Errorf("invalid category id %q: %w", args[0], err)
		}

		db, err := openDB()
		if err != nil {
			return err
		}

		buf, filename, err := permissionService(db, services.NoopPublisher{}).ExportPrivilegedUsers(categoryID)
		if err != nil {
			return err
		}
		if exportOut == "" {
			exportOut = filename
		}
		if err := os.WriteFile(exportOut, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOut, err)
		}
		fmt.Printf("Wrote %s\n", exportOut)
		return nil
	},
}

func init() {
	grantCmd.Flags().BoolVar(&grantWrite, "write", false, "Also grant write access")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (defaults to a generated name)")
	rootCmd.AddCommand(grantCmd, revokeCmd, exportCmd)
}
