package cmd

import (
	"fmt"

	"github.com/huangsam/clio/internal/contract"
	"github.com/huangsam/clio/internal/datastore"
	"github.com/huangsam/clio/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeConfig reads only the store settings, so store commands work without LLM configuration.
func storeConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// storeSetup loads minimal configuration and opens the store.
func storeSetup(_ *cobra.Command, _ []string) error {
	if err := storeConfig(); err != nil {
		return err
	}
	if err := datastore.InitStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	return nil
}

// storeMigrateSetup loads configuration without creating tables, so migrations can run on a fresh database.
func storeMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := storeConfig(); err != nil {
		return err
	}
	if cfg.StoreBackend == schema.SQLiteBackend && cfg.StoreDBConnect == "" {
		cfg.StoreDBConnect = datastore.GetDBFilePath()
	}
	return nil
}

// storeCmd focused on store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup. This avoids requiring LLM settings for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage stored users, chats, analyses and marketing profiles",
	Long: `Manage the persistence store.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show row counts and connection info
  export  - Export analyses and chat messages to Parquet
  clear   - Remove all stored data
  migrate - Run database schema migrations

Examples:
  # Check store status
  clio store status

  # Export for analysis in pandas/DuckDB
  clio store export --output-file clio-data`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show the backend, connection state, row counts per table and the last stored analysis.

Examples:
  clio store status
  CLIO_STORE_BACKEND=postgresql CLIO_STORE_DB_CONNECT="host=localhost dbname=clio" clio store status`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := datastore.Manager.GetStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		datastore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored data",
	Long: `Delete every user, chat message, analysis and marketing profile.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the clio tables

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  clio store export --output-file backup
  clio store clear`,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := datastore.ClearStore(cfg.StoreBackend, datastore.GetDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear store", err)
		}
		fmt.Println("Store cleared successfully.")
	},
}

// storeExportCmd exports analyses and chat messages to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export analyses and chat messages to Parquet",
	Long: `Export stored data to Parquet for analytics tools.

Writes two files next to the --output-file prefix:
  <prefix>.analyses.parquet       one row per analysis with a score column per archetype
  <prefix>.chat_messages.parquet  one row per chat message

Requires: --output-file parameter

Examples:
  clio store export --output-file clio
  duckdb -c "SELECT dominant_archetype, count(*) FROM read_parquet('clio.analyses.parquet') GROUP BY 1"`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := datastore.ExportStore(rootCtx, datastore.Manager.GetStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export store", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage schema versions of the store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  clio store migrate

  # Migrate to specific version
  clio store migrate --target-version 2

  # Rollback to initial state
  clio store migrate --target-version 0`,
	PreRunE: storeMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := datastore.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
