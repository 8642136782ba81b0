// Package cmd defines the command-line interface for qualens.
package cmd

import (
	"github.com/qualens/qualens/core"
	"github.com/qualens/qualens/internal/contract"
	"github.com/qualens/qualens/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runAnalysis resolves the command name to its analysis operation and runs
// it. Every analysis command is named after its operation, so the lookup
// cannot fail for a registered command.
func runAnalysis(failMsg string) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, _ []string) {
		op, err := schema.ParseOperation(cmd.Name())
		if err != nil {
			contract.LogFatal(failMsg, err)
		}
		executor, err := core.ExecutorFor(op)
		if err != nil {
			contract.LogFatal(failMsg, err)
		}
		if err := executor(rootCtx, cfg, env); err != nil {
			contract.LogFatal(failMsg, err)
		}
	}
}

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(comparePeriodsCmd)
	rootCmd.AddCommand(compareModelsCmd)
	rootCmd.AddCommand(toolImpactCmd)
	rootCmd.AddCommand(anomaliesCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(sentimentCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(errorPatternsCmd)
	rootCmd.AddCommand(temporalCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeMigrateCmd)
	storeCmd.AddCommand(storeSeedCmd)
	storeCmd.AddCommand(storeExportCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("owner", "", "Owner id to analyze (alternative to the positional argument)")
	rootCmd.PersistentFlags().StringP("period", "p", contract.DefaultPeriod, "Analysis window as a period shorthand (24h, 7d, 4w, 3m)")
	rootCmd.PersistentFlags().String("start", "", "Start date in ISO8601 or time ago")
	rootCmd.PersistentFlags().String("end", "", "End date in ISO8601 or time ago")
	rootCmd.PersistentFlags().StringP("conversation", "c", "", "Restrict analysis to a single conversation id")
	rootCmd.PersistentFlags().StringP("model", "m", "", "Restrict analysis to a single model")
	rootCmd.PersistentFlags().Int("min-rating", 0, "Minimum rating filter (1-5, 0 = no filter)")
	rootCmd.PersistentFlags().Int("max-rating", 0, "Maximum rating filter (1-5, 0 = no filter)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("fetch-limit", contract.DefaultFetchLimit, "Maximum records fetched from the store per analysis")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-result metadata where the report supports it")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Record store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("price-table", "", "Path to a YAML price table (empty = embedded defaults)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of trendsCmd to Viper
	trendsCmd.Flags().Int("min-days", contract.DefaultTrendMinDays, "Minimum distinct days of data before a trend is reported")
	trendsCmd.Flags().Float64("threshold", contract.DefaultTrendThreshold, "Fractional change separating improving/declining from stable")
	if err := viper.BindPFlags(trendsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trends flags", err)
	}

	// Bind all flags of predictCmd to Viper
	predictCmd.Flags().String("horizons", "", "Comma-separated forecast horizons in days (default 7,14,30)")
	if err := viper.BindPFlags(predictCmd.Flags()); err != nil {
		contract.LogFatal("Error binding predict flags", err)
	}

	// Bind all flags of storeSeedCmd to Viper
	storeSeedCmd.Flags().Int("count", 500, "Number of synthetic evaluation records to insert")
	storeSeedCmd.Flags().Int("days", 30, "Number of trailing days to spread records across")
	storeSeedCmd.Flags().Int64("seed", 0, "Random seed for reproducible data (0 = time-based)")
	if err := viper.BindPFlags(storeSeedCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store seed flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
