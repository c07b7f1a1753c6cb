package cli

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the forum schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := openDB()
		return err
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
