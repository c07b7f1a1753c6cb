package cli

import (
	"fmt"
	"os"

	"github.com/delesray/forum/internal/config"
	"github.com/delesray/forum/internal/database"
	"github.com/delesray/forum/internal/services"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "forumctl",
	Short: "Administrative tasks for the forum database",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(cfg().LogLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		logrus.SetLevel(level)
	},
}

var loadedConfig *config.Config

func cfg() *config.Config {
	if loadedConfig == nil {
		loadedConfig = config.Load()
	}
	return loadedConfig
}

// openDB connects and migrates; every command works on a migrated schema
func openDB() (*gorm.DB, error) {
	return database.InitDB(cfg().Database)
}

// openEvents returns the configured publisher so CLI changes emit the same
// events as the HTTP API
func openEvents() (services.EventPublisher, func()) {
	return services.NewEventPublisher(cfg().RabbitMQ)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
