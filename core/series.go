package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
)

// BuildSeries turns grouped records into one chart-ready series per metric.
// Points within a series are sorted by ascending date; series are sorted by
// metric name so output is deterministic across runs.
func BuildSeries(groups map[GroupKey][]schema.JoinedRecord, catalog schema.Catalog, keyFileLimit int) []schema.MetricSeries {
	pointsByMetric := make(map[schema.MetricName][]schema.SeriesPoint)
	for key, records := range groups {
		agg := AggregateGroup(records, keyFileLimit)
		pointsByMetric[key.Metric] = append(pointsByMetric[key.Metric], schema.SeriesPoint{
			Date:     key.Date,
			Score:    agg.Score,
			KeyFiles: agg.KeyFiles,
		})
	}

	series := make([]schema.MetricSeries, 0, len(pointsByMetric))
	for metric, points := range pointsByMetric {
		sort.Slice(points, func(i, j int) bool {
			return points[i].Date.Before(points[j].Date)
		})
		series = append(series, schema.MetricSeries{
			Metric:      metric,
			Label:       metric.Label(),
			Description: catalog[metric],
			Points:      points,
		})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Metric < series[j].Metric
	})
	return series
}

// ProjectSeries runs the full reporting pipeline for one (user, project) pair:
// load records from the store, join, group by metric and day, and aggregate.
// A project with no file records is a hard error; orphan observations are not.
func ProjectSeries(ctx context.Context, store contract.RecordStore, catalog schema.Catalog, userEmail, projectName string, keyFileLimit int) ([]schema.MetricSeries, error) {
	files, err := store.GetFiles(ctx, userEmail, projectName)
	if err != nil {
		return nil, fmt.Errorf("load files for %s/%s: %w", userEmail, projectName, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found for project %s", projectName)
	}

	fileIDs := make([]uuid.UUID, 0, len(files))
	for _, f := range files {
		fileIDs = append(fileIDs, f.FileID)
	}

	observations, err := store.GetObservations(ctx, fileIDs)
	if err != nil {
		return nil, fmt.Errorf("load observations for %s: %w", projectName, err)
	}

	joined := JoinRecords(files, observations)
	groups := GroupRecords(joined)
	return BuildSeries(groups, catalog, keyFileLimit), nil
}
