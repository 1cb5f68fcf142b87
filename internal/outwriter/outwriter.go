// Package outwriter has output and writer logic for metric series.
package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/internal/parquet"
	"github.com/huangsam/maintscore/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteSeries outputs the metric series, dispatching based on the output
// format configured.
func WriteSeries(w io.Writer, series []schema.MetricSeries, cfg *contract.Config) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONSeries(w, series); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		if err := writeCSVSeries(csvWriter, series, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteSeries(w, series); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable tables
		return writeSeriesTables(w, series, cfg, fmtFloat)
	}
	return nil
}

// writeSeriesTables renders one table per metric.
func writeSeriesTables(w io.Writer, series []schema.MetricSeries, cfg *contract.Config, fmtFloat func(float64) string) error {
	pathWidth := GetMaxTablePathWidth(cfg)

	for _, s := range series {
		_, _ = fmt.Fprintf(w, "\n%s\n", s.Label)

		table := tablewriter.NewWriter(w)

		table.Header([]string{"Date", "Score", "Label", "Key Files"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignLeft
		})

		var data [][]string
		for _, point := range s.Points {
			var label string
			if cfg.UseColors {
				label = contract.GetColorLabel(point.Score)
			} else {
				label = contract.GetPlainLabel(point.Score)
			}

			var scoreStr string
			if point.Score < 0 {
				scoreStr = "n/a"
			} else {
				scoreStr = fmtFloat(point.Score)
			}

			data = append(data, []string{
				point.Date.Format("2006-01-02"),
				scoreStr,
				label,
				formatKeyFiles(point.KeyFiles, pathWidth, cfg.Precision),
			})
		}

		if err := table.Bulk(data); err != nil {
			_ = table.Close()
			return err
		}
		if err := table.Render(); err != nil {
			_ = table.Close()
			return err
		}
		if err := table.Close(); err != nil {
			return err
		}
	}
	return nil
}

// formatKeyFiles renders the ranked key files as "path (contrib%, score)".
func formatKeyFiles(keyFiles []schema.KeyFile, pathWidth, precision int) string {
	if len(keyFiles) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(keyFiles))
	for _, kf := range keyFiles {
		parts = append(parts, fmt.Sprintf("%s (%.*f%%, %d)",
			contract.TruncatePath(kf.FilePath, pathWidth), precision, kf.ContribPercent, kf.Score))
	}
	return strings.Join(parts, ", ")
}

// writeCSVSeries writes one row per (metric, date, key file).
func writeCSVSeries(csvWriter *csv.Writer, series []schema.MetricSeries, fmtFloat func(float64) string) error {
	header := []string{"metric", "label", "date", "score", "file_path", "contrib_percent", "file_score"}
	if err := csvWriter.Write(header); err != nil {
		return err
	}

	for _, s := range series {
		for _, point := range s.Points {
			base := []string{
				string(s.Metric),
				s.Label,
				point.Date.Format("2006-01-02"),
				fmtFloat(point.Score),
			}
			if len(point.KeyFiles) == 0 {
				if err := csvWriter.Write(append(base, "", "", "")); err != nil {
					return err
				}
				continue
			}
			for _, kf := range point.KeyFiles {
				row := append(append([]string{}, base...),
					kf.FilePath,
					fmtFloat(kf.ContribPercent),
					strconv.Itoa(kf.Score),
				)
				if err := csvWriter.Write(row); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// writeJSONSeries writes the series as an indented JSON document.
func writeJSONSeries(w io.Writer, series []schema.MetricSeries) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(series)
}

// createFormatter creates the float formatter closure shared by the writers.
func createFormatter(precision int) func(float64) string {
	if precision <= 0 {
		precision = contract.DefaultPrecision
	}
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}
