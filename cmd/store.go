package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/internal/recordstore"
	"github.com/qualens/qualens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeHandle is the record store opened by storeSetup for store commands.
var storeHandle contract.RecordStore

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("store-backend")))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Open the store with the loaded config
	store, err := recordstore.NewStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}
	storeHandle = store

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This setup does NOT open the store or create tables, allowing migrations
// to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("store-backend")))
	connStr := viper.GetString("store-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup for Cobra's PreRunE.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on record store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by analysis commands. This avoids owner and time
// window processing for simple maintenance operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the evaluation record store",
	Long: `Manage the database that holds evaluation records.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (no-op)

Subcommands:
  status  - Show record counts and connection info
  migrate - Run schema migrations up or down
  seed    - Insert synthetic records for local development
  export  - Export evaluation records to a Parquet file

Examples:
  # Check store status
  qualens store status

  # Export records for offline analysis
  qualens store export --output-file records.parquet`,
}

// storeStatusCmd shows record store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display record store statistics and connection details",
	Long: `Show detailed information about the evaluation record store.

Displays:
- Backend type and location
- Total number of stored records
- Oldest and newest record timestamps

Use this to:
- Verify the store is reachable and populated
- Monitor record growth over time
- Debug ingestion issues

Examples:
  # Check store status
  qualens store status

  # Check a PostgreSQL store
  QUALENS_STORE_BACKEND=postgresql QUALENS_STORE_DB_CONNECT="..." qualens store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		defer func() { _ = storeHandle.Close() }()
		status, err := storeHandle.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		recordstore.PrintStoreStatus(status)
	},
}

// storeMigrateCmd runs schema migrations.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run record store schema migrations",
	Long: `Apply embedded schema migrations to the record store database.

Migrations are versioned and can move forward or backward. The default
target (-1) migrates to the latest version.

Examples:
  # Migrate to latest version (default)
  qualens store migrate

  # Migrate to specific version
  qualens store migrate --target-version 1

  # Rollback to initial state
  qualens store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := recordstore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}

// storeSeedCmd fills the store with synthetic records.
var storeSeedCmd = &cobra.Command{
	Use:   "seed [owner-id]",
	Short: "Insert synthetic evaluation records for local development",
	Long: `Generate and insert synthetic evaluation records.

Records are spread evenly across the trailing days with realistic
ratings, tool usage, errors and token counts. Pass --seed for a
reproducible dataset.

Examples:
  # Seed 500 records over 30 days
  qualens store seed demo-owner

  # A small, reproducible dataset
  qualens store seed demo-owner --count 100 --days 7 --seed 42`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		defer func() { _ = storeHandle.Close() }()
		ownerID := viper.GetString("owner")
		if len(args) == 1 {
			ownerID = args[0]
		}
		if strings.TrimSpace(ownerID) == "" {
			contract.LogFatal("Cannot seed records", fmt.Errorf("owner id is required"))
		}
		seed := viper.GetInt64("seed")
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		count, err := recordstore.Seed(rootCtx, storeHandle, ownerID, viper.GetInt("count"), viper.GetInt("days"), seed)
		if err != nil {
			contract.LogFatal("Failed to seed records", err)
		}
		fmt.Printf("Inserted %d synthetic evaluation records for owner %s.\n", count, ownerID)
	},
}

// storeExportCmd exports records to Parquet.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export evaluation records to a Parquet file",
	Long: `Export evaluation records from the store to a Parquet file.

Exports every record by default; pass --owner to restrict the export
to a single owner.

Use this to:
- Move records into a data warehouse
- Back up evaluation history before a migration
- Analyze records with external tooling

Examples:
  # Export everything
  qualens store export --output-file records.parquet

  # Export one owner's records
  qualens store export --owner team-answers --output-file team.parquet`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		defer func() { _ = storeHandle.Close() }()
		filter := schema.RecordFilter{OwnerID: viper.GetString("owner")}
		if err := recordstore.ExecuteExport(rootCtx, storeHandle, filter, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export records", err)
		}
	},
}
