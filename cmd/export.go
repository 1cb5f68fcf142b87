package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/core"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/internal/parquet"
	"github.com/huangsam/maintscore/schema"
	"github.com/spf13/cobra"
)

// exportCmd dumps a project's data to Parquet for analytics tools.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a project's trend and raw observations to Parquet",
	Long: `Export two datasets for use with analytics tools:
- <output-file>.series.parquet - the per-metric daily trend, one row per key file
- <output-file>.observations.parquet - every joined observation with its file

Parquet format enables fast querying with DuckDB, Apache Spark, and pandas.

Requires: --output-file parameter

Examples:
  maintscore export --project myapp --user dev@example.com --output-file myapp

  # Inspect with DuckDB
  duckdb -c "SELECT * FROM read_parquet('myapp.series.parquet') LIMIT 10"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runExport(); err != nil {
			contract.LogFatal("Cannot run export", err)
		}
	},
}

func runExport() error {
	if err := requireIdentity(); err != nil {
		return err
	}
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required")
	}

	files, err := store.GetFiles(rootCtx, cfg.UserEmail, cfg.ProjectName)
	if err != nil {
		return fmt.Errorf("load files for %s: %w", cfg.ProjectName, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found for project %s", cfg.ProjectName)
	}

	fileIDs := make([]uuid.UUID, 0, len(files))
	for _, f := range files {
		fileIDs = append(fileIDs, f.FileID)
	}
	observations, err := store.GetObservations(rootCtx, fileIDs)
	if err != nil {
		return fmt.Errorf("load observations for %s: %w", cfg.ProjectName, err)
	}
	joined := core.JoinRecords(files, observations)

	series := core.BuildSeries(core.GroupRecords(joined), schema.DefaultCatalog(), cfg.KeyFileLimit)

	seriesPath := cfg.OutputFile + ".series.parquet"
	if err := parquet.WriteSeriesFile(series, seriesPath); err != nil {
		return err
	}
	observationsPath := cfg.OutputFile + ".observations.parquet"
	if err := parquet.WriteObservationsFile(joined, observationsPath); err != nil {
		return err
	}

	fmt.Printf("Exported %d series rows to %s\n", len(parquet.FlattenSeries(series)), seriesPath)
	fmt.Printf("Exported %d observation rows to %s\n", len(joined), observationsPath)
	return nil
}
