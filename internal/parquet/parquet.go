// Package parquet exports scoring data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/maintscore/schema"
	"github.com/parquet-go/parquet-go"
)

// SeriesRow is one flattened series point for columnar export. Each key file
// of a point becomes its own row so downstream tools can pivot without
// unnesting.
type SeriesRow struct {
	// Metric is the metric identifier in snake_case
	Metric string `parquet:"metric,snappy"`

	// Label is the human-readable metric label
	Label string `parquet:"label,snappy"`

	// Date is the UTC calendar day of the aggregation bucket
	Date time.Time `parquet:"date,snappy"`

	// Score is the LOC-weighted composite for the bucket
	Score float64 `parquet:"score,snappy"`

	// FilePath is the key file path (nullable when a bucket has no key files)
	FilePath *string `parquet:"file_path,optional,snappy"`

	// ContribPercent is the key file's share of the bucket's total lines
	ContribPercent *float64 `parquet:"contrib_percent,optional,snappy"`

	// FileScore is the key file's own score
	FileScore *int32 `parquet:"file_score,optional,snappy"`
}

// ObservationRow is one joined observation for columnar export.
type ObservationRow struct {
	// ObservationID is the unique identifier of the observation
	ObservationID string `parquet:"observation_id,snappy"`

	// FilePath is the relative path of the evaluated file
	FilePath string `parquet:"file_path,snappy"`

	// ProjectName is the owning project
	ProjectName string `parquet:"project_name,snappy"`

	// Metric is the metric identifier in snake_case
	Metric string `parquet:"metric,snappy"`

	// Score is the parsed score, -1 when extraction failed
	Score int32 `parquet:"score,snappy"`

	// LOC is the line count of the file
	LOC int32 `parquet:"loc,snappy"`

	// Timestamp is when the observation was recorded
	Timestamp time.Time `parquet:"timestamp,snappy"`
}

// FlattenSeries converts metric series into parquet rows.
func FlattenSeries(series []schema.MetricSeries) []SeriesRow {
	var rows []SeriesRow
	for _, s := range series {
		for _, point := range s.Points {
			if len(point.KeyFiles) == 0 {
				rows = append(rows, SeriesRow{
					Metric: string(s.Metric),
					Label:  s.Label,
					Date:   point.Date,
					Score:  point.Score,
				})
				continue
			}
			for _, kf := range point.KeyFiles {
				path := kf.FilePath
				contrib := kf.ContribPercent
				fileScore := int32(kf.Score)
				rows = append(rows, SeriesRow{
					Metric:         string(s.Metric),
					Label:          s.Label,
					Date:           point.Date,
					Score:          point.Score,
					FilePath:       &path,
					ContribPercent: &contrib,
					FileScore:      &fileScore,
				})
			}
		}
	}
	return rows
}

// ConvertJoinedRecords converts joined records into parquet rows.
func ConvertJoinedRecords(records []schema.JoinedRecord) []ObservationRow {
	rows := make([]ObservationRow, len(records))
	for i, rec := range records {
		rows[i] = ObservationRow{
			ObservationID: rec.ObservationID.String(),
			FilePath:      rec.FilePath,
			ProjectName:   rec.ProjectName,
			Metric:        string(rec.Metric),
			Score:         int32(rec.Score),
			LOC:           int32(rec.LOC),
			Timestamp:     rec.Timestamp,
		}
	}
	return rows
}

// WriteSeries writes flattened series rows to the given writer.
func WriteSeries(w io.Writer, series []schema.MetricSeries) error {
	writer := parquet.NewGenericWriter[SeriesRow](w)
	if _, err := writer.Write(FlattenSeries(series)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write series rows: %w", err)
	}
	return writer.Close()
}

// WriteSeriesFile writes flattened series rows to a Parquet file.
func WriteSeriesFile(series []schema.MetricSeries, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return WriteSeries(file, series)
}

// WriteObservationsFile writes joined observation rows to a Parquet file.
func WriteObservationsFile(records []schema.JoinedRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[ObservationRow](file)
	if _, err := writer.Write(ConvertJoinedRecords(records)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write observation rows: %w", err)
	}
	return writer.Close()
}
