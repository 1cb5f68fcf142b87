package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
)

// Extractor runs model-based metric extraction for file records and persists
// every observation, including the sentinel ones from exhausted retries.
type Extractor struct {
	Generator   contract.TextGenerator
	Store       contract.RecordStore
	Catalog     schema.Catalog
	MaxAttempts int
	Workers     int
}

// NewExtractor builds an extractor with sane fallbacks for attempts and workers.
func NewExtractor(gen contract.TextGenerator, store contract.RecordStore, catalog schema.Catalog, maxAttempts, workers int) *Extractor {
	if maxAttempts <= 0 {
		maxAttempts = contract.DefaultMaxAttempts
	}
	if workers <= 0 {
		workers = contract.DefaultWorkers
	}
	return &Extractor{
		Generator:   gen,
		Store:       store,
		Catalog:     catalog,
		MaxAttempts: maxAttempts,
		Workers:     workers,
	}
}

// ExtractMetric evaluates one (file, metric) pair. Each attempt sends a fresh
// prompt; a reply that parses cleanly wins. When every attempt fails to yield
// a score, the observation is persisted with the sentinel score so that the
// failure stays visible downstream instead of silently shrinking the dataset.
func (e *Extractor) ExtractMetric(ctx context.Context, file schema.FileRecord, metric schema.MetricName) (schema.MetricObservation, error) {
	description, ok := e.Catalog[metric]
	if !ok {
		return schema.MetricObservation{}, fmt.Errorf("unknown metric %q", metric)
	}

	obs := schema.MetricObservation{
		ObservationID: uuid.New(),
		FileID:        file.FileID,
		SessionID:     file.SessionID,
		Timestamp:     time.Now().UTC(),
		Metric:        metric,
		Score:         schema.SentinelScore,
	}

	prompt := RenderPrompt(file.FilePath, metric, description, file.Content)
	for attempt := 1; attempt <= e.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return obs, err
		}

		reply, err := e.Generator.Generate(ctx, prompt)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Generation attempt %d/%d failed for %s on %s", attempt, e.MaxAttempts, metric, file.FilePath), err)
			continue
		}

		score, err := ParseScore(reply)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Score parsing attempt %d/%d failed for %s on %s", attempt, e.MaxAttempts, metric, file.FilePath), err)
			continue
		}

		obs.Score = score
		obs.Reasoning = reply
		break
	}

	if err := e.Store.InsertObservation(ctx, obs); err != nil {
		return obs, fmt.Errorf("persist observation for %s on %s: %w", metric, file.FilePath, err)
	}
	return obs, nil
}

// ExtractFile evaluates every catalog metric for one file, in catalog order.
func (e *Extractor) ExtractFile(ctx context.Context, file schema.FileRecord) ([]schema.MetricObservation, error) {
	metrics := e.Catalog.Metrics()
	observations := make([]schema.MetricObservation, 0, len(metrics))
	for _, metric := range metrics {
		obs, err := e.ExtractMetric(ctx, file, metric)
		if err != nil {
			return observations, err
		}
		observations = append(observations, obs)
	}
	return observations, nil
}

// extractUnit is one (file, metric) pair of work for the pool.
type extractUnit struct {
	file   schema.FileRecord
	metric schema.MetricName
}

// ExtractBatch evaluates every catalog metric for every file using a worker
// pool. Failed units are logged and skipped so one bad file cannot sink the
// rest of the batch.
func (e *Extractor) ExtractBatch(ctx context.Context, files []schema.FileRecord) []schema.MetricObservation {
	metrics := e.Catalog.Metrics()

	unitCh := make(chan extractUnit, len(files)*len(metrics))
	obsCh := make(chan schema.MetricObservation, len(files)*len(metrics))
	var wg sync.WaitGroup

	// Start worker pool
	for range e.Workers {
		wg.Go(func() {
			for unit := range unitCh {
				obs, err := e.ExtractMetric(ctx, unit.file, unit.metric)
				if err != nil {
					contract.LogWarn(fmt.Sprintf("Extraction failed for %s on %s", unit.metric, unit.file.FilePath), err)
					continue
				}
				obsCh <- obs
			}
		})
	}

	// Send units to worker channel
	for _, f := range files {
		for _, m := range metrics {
			unitCh <- extractUnit{file: f, metric: m}
		}
	}
	close(unitCh)

	// Wait for all workers to finish processing
	wg.Wait()
	close(obsCh)

	observations := make([]schema.MetricObservation, 0, len(files)*len(metrics))
	for obs := range obsCh {
		observations = append(observations, obs)
	}
	return observations
}
