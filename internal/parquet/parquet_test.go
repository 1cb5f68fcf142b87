package parquet

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSeries() []schema.MetricSeries {
	return []schema.MetricSeries{
		{
			Metric: schema.IntuitiveDesign,
			Label:  "Intuitive Design",
			Points: []schema.SeriesPoint{
				{
					Date:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
					Score: 7.5,
					KeyFiles: []schema.KeyFile{
						{FilePath: "a.go", ContribPercent: 70, Score: 9},
						{FilePath: "b.go", ContribPercent: 30, Score: 4},
					},
				},
				{
					Date:     time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
					Score:    -1,
					KeyFiles: nil,
				},
			},
		},
	}
}

func TestSeriesRowStructTags(t *testing.T) {
	schemaOf := parquet.SchemaOf(new(SeriesRow))
	require.NotNil(t, schemaOf)

	for _, colName := range []string{"metric", "label", "date", "score", "file_path", "contrib_percent", "file_score"} {
		_, ok := schemaOf.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestFlattenSeries(t *testing.T) {
	rows := FlattenSeries(sampleSeries())
	require.Len(t, rows, 3)

	assert.Equal(t, "a.go", *rows[0].FilePath)
	assert.InDelta(t, 70.0, *rows[0].ContribPercent, 1e-9)
	assert.Equal(t, int32(9), *rows[0].FileScore)

	// Sentinel point keeps one row with null file columns
	assert.Nil(t, rows[2].FilePath)
	assert.InDelta(t, -1.0, rows[2].Score, 1e-9)
}

func TestWriteSeriesFileRoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "series.parquet")
	require.NoError(t, WriteSeriesFile(sampleSeries(), outputPath))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	rows, err := parquet.Read[SeriesRow](bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, string(schema.IntuitiveDesign), rows[0].Metric)
}

func TestWriteObservationsFile(t *testing.T) {
	records := []schema.JoinedRecord{
		{
			MetricObservation: schema.MetricObservation{
				ObservationID: uuid.New(),
				Metric:        schema.CodeEfficiency,
				Score:         6,
				Timestamp:     time.Now().UTC(),
			},
			FilePath:    "svc/handler.go",
			ProjectName: "demo",
			LOC:         120,
		},
	}

	outputPath := filepath.Join(t.TempDir(), "observations.parquet")
	require.NoError(t, WriteObservationsFile(records, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
