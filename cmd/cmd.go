// Package cmd defines the command-line interface for maintscore.
package cmd

import (
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the keys subcommands to the parent keys command
	keysCmd.AddCommand(keysGenerateCmd)
	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysDeleteCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("project", "p", "", "Project name to attribute records to")
	rootCmd.PersistentFlags().StringP("user", "u", "", "User email to attribute records to")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("exclude", "", "Comma-separated list of path prefixes or patterns to ignore")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("key-file-limit", schema.DefaultKeyFileLimit, "Number of key files to keep per data point (5 or 8)")
	rootCmd.PersistentFlags().Int("max-attempts", contract.DefaultMaxAttempts, "Number of attempts per metric before recording the sentinel score")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Record store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of scanCmd to Viper
	scanCmd.Flags().String("model", contract.DefaultModel, "Chat completion model id")
	scanCmd.Flags().String("openai-key", "", "OpenAI API key (prefer MAINTSCORE_OPENAI_KEY)")
	scanCmd.Flags().String("github-token", "", "GitHub token for remote scans (prefer MAINTSCORE_GITHUB_TOKEN)")
	scanCmd.Flags().String("remote", "", "Scan a GitHub repository instead of a local path (format: owner/repo)")
	scanCmd.Flags().String("branch", "main", "Branch to scan in remote mode")
	if err := viper.BindPFlags(scanCmd.Flags()); err != nil {
		contract.LogFatal("Error binding scan flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("address", contract.DefaultServeAddress, "Listen address for the HTTP API")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of keysGenerateCmd to Viper
	keysGenerateCmd.Flags().String("key-name", "", "Human-readable name for the generated API key")
	if err := viper.BindPFlags(keysGenerateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding keys generate flags", err)
	}

	// Bind all flags of migrateCmd to Viper
	migrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}
