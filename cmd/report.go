package cmd

import (
	"os"

	"github.com/huangsam/maintscore/core"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/internal/outwriter"
	"github.com/huangsam/maintscore/schema"
	"github.com/spf13/cobra"
)

// reportCmd renders the maintainability trend for a project.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the per-metric maintainability trend for a project.",
	Long: `Join the stored observations with their file records, aggregate them by
metric and UTC calendar date, and render the resulting series.

Each data point carries a LOC-weighted composite score plus the key files that
contributed the most lines to it. Days without observations are absent from the
series, not interpolated.

Examples:
  # Print the trend tables for a project
  maintscore report --project myapp --user dev@example.com

  # Keep more key files per data point
  maintscore report --project myapp --user dev@example.com --key-file-limit 8

  # Export the series for pandas/DuckDB
  maintscore report --project myapp --user dev@example.com --output parquet --output-file trend.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runReport(); err != nil {
			contract.LogFatal("Cannot run report", err)
		}
	},
}

func runReport() error {
	if err := requireIdentity(); err != nil {
		return err
	}

	series, err := core.ProjectSeries(rootCtx, store, schema.DefaultCatalog(), cfg.UserEmail, cfg.ProjectName, cfg.KeyFileLimit)
	if err != nil {
		return err
	}

	out, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if out != os.Stdout {
		defer func() { _ = out.Close() }()
	}

	return outwriter.WriteSeries(out, series, cfg)
}
