package cmd

import (
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/internal/iostore"
	"github.com/huangsam/maintscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// migrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the record store or create
// tables, allowing migrations to run on a fresh database.
func migrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as NoneBackend
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.NoneBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// migrateCmd runs database migrations for the record store.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the record store.

By default, migrates to the latest version. Use --target-version for specific
versions.

Examples:
  # Migrate to latest version (default)
  maintscore migrate

  # Migrate to specific version
  maintscore migrate --target-version 1

  # Rollback to initial state
  maintscore migrate --target-version 0`,
	Args: cobra.NoArgs,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return migrateSetup()
	},
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iostore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Cannot run migrations", err)
		}
	},
}
