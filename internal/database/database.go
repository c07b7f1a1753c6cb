package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/delesray/forum/internal/config"
	"github.com/delesray/forum/internal/models"
)

// InitDB opens the configured database and performs migrations
func InitDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case "sqlite":
		db, err = OpenSQLite(cfg.Path)
	case "postgres", "":
		db, err = openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func openPostgres(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// Validate required environment variables
	if cfg.Host == "" || cfg.User == "" || cfg.Password == "" || cfg.Name == "" {
		return nil, fmt.Errorf("missing required database environment variables. Please check your .env file")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// OpenSQLite opens a sqlite database at path. Tests pass a shared-cache
// in-memory DSN; the pool is pinned to one connection so every statement
// sees the same database.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func gormConfig() *gorm.Config {
	gormLogger := logger.New(
		logrus.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	return &gorm.Config{
		Logger:                                   gormLogger,
		DisableForeignKeyConstraintWhenMigrating: true, // Disable FK constraints during migration to avoid order issues
	}
}

// Migrate creates the forum schema and the soft-delete trigger
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.CategoryPermission{},
		&models.Topic{},
		&models.Reply{},
		&models.Vote{},
		&models.Message{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := createSoftDeleteTrigger(db); err != nil {
		return fmt.Errorf("failed to create soft delete trigger: %w", err)
	}

	logrus.Info("Database migration completed")
	return nil
}

// createSoftDeleteTrigger installs the trigger that removes a user's
// messages once the user row is flagged as deleted.
func createSoftDeleteTrigger(db *gorm.DB) error {
	switch db.Dialector.Name() {
	case "postgres":
		statements := []string{
			`CREATE OR REPLACE FUNCTION delete_messages_of_deleted_user() RETURNS trigger AS $$
			BEGIN
				IF NEW.is_deleted AND NOT OLD.is_deleted THEN
					DELETE FROM messages WHERE sender_id = NEW.id OR receiver_id = NEW.id;
				END IF;
				RETURN NEW;
			END;
			$$ LANGUAGE plpgsql`,
			`DROP TRIGGER IF EXISTS trg_users_soft_delete ON users`,
			`CREATE TRIGGER trg_users_soft_delete
				AFTER UPDATE OF is_deleted ON users
				FOR EACH ROW EXECUTE FUNCTION delete_messages_of_deleted_user()`,
		}
		for _, stmt := range statements {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	case "sqlite":
		return db.Exec(`CREATE TRIGGER IF NOT EXISTS trg_users_soft_delete
			AFTER UPDATE OF is_deleted ON users
			WHEN NEW.is_deleted = 1 AND OLD.is_deleted = 0
			BEGIN
				DELETE FROM messages WHERE sender_id = NEW.id OR receiver_id = NEW.id;
			END`).Error
	default:
		logrus.Warnf("Soft delete trigger not supported for dialect %s", db.Dialector.Name())
	}
	return nil
}
