package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/internal/iostore"
	"github.com/huangsam/maintscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGenerator replays canned replies and errors in order, then repeats
// the final entry.
type scriptedGenerator struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   int
}

func (g *scriptedGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	idx := min(g.calls, len(g.replies)-1)
	g.calls++
	return g.replies[idx], g.errs[idx]
}

func testFile() schema.FileRecord {
	return schema.NewFileRecord("pkg/util/util.go", "package util\n\nfunc Do() {}\n", "demo", "dev@example.com", uuid.New())
}

func TestExtractMetricFirstAttempt(t *testing.T) {
	store := iostore.NewMemoryStore()
	gen := &scriptedGenerator{
		replies: []string{"Solid structure overall. (8/10)"},
		errs:    []error{nil},
	}
	extractor := NewExtractor(gen, store, schema.DefaultCatalog(), 3, 1)
	file := testFile()

	obs, err := extractor.ExtractMetric(context.Background(), file, schema.IntuitiveDesign)
	require.NoError(t, err)
	assert.Equal(t, 8, obs.Score)
	assert.Equal(t, file.FileID, obs.FileID)
	assert.Equal(t, 1, gen.calls)

	// The observation must land in the store
	stored, err := store.GetObservations(context.Background(), []uuid.UUID{file.FileID})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 8, stored[0].Score)
}

func TestExtractMetricRecoversOnThirdAttempt(t *testing.T) {
	store := iostore.NewMemoryStore()
	gen := &scriptedGenerator{
		replies: []string{"", "No verdict here.", "After review, 6/10."},
		errs:    []error{errors.New("transient"), nil, nil},
	}
	extractor := NewExtractor(gen, store, schema.DefaultCatalog(), 3, 1)

	obs, err := extractor.ExtractMetric(context.Background(), testFile(), schema.FunctionalCohesion)
	require.NoError(t, err)
	assert.Equal(t, 6, obs.Score)
	assert.Equal(t, 3, gen.calls)
}

func TestExtractMetricExhaustedPersistsSentinel(t *testing.T) {
	store := iostore.NewMemoryStore()
	gen := &scriptedGenerator{
		replies: []string{"No number at all."},
		errs:    []error{nil},
	}
	extractor := NewExtractor(gen, store, schema.DefaultCatalog(), 3, 1)
	file := testFile()

	obs, err := extractor.ExtractMetric(context.Background(), file, schema.CodeEfficiency)
	require.NoError(t, err)
	assert.Equal(t, schema.SentinelScore, obs.Score)
	assert.Equal(t, 3, gen.calls)

	// Sentinel observations are persisted, not discarded
	stored, err := store.GetObservations(context.Background(), []uuid.UUID{file.FileID})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, schema.SentinelScore, stored[0].Score)
}

func TestExtractMetricUnknownMetric(t *testing.T) {
	extractor := NewExtractor(&scriptedGenerator{replies: []string{""}, errs: []error{nil}}, iostore.NewMemoryStore(), schema.DefaultCatalog(), 3, 1)

	_, err := extractor.ExtractMetric(context.Background(), testFile(), "made_up_metric")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown metric")
}

func TestExtractMetricCanceledContext(t *testing.T) {
	extractor := NewExtractor(&scriptedGenerator{replies: []string{"9/10"}, errs: []error{nil}}, iostore.NewMemoryStore(), schema.DefaultCatalog(), 3, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.ExtractMetric(ctx, testFile(), schema.IntuitiveDesign)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractFileCoversCatalog(t *testing.T) {
	store := iostore.NewMemoryStore()
	gen := &scriptedGenerator{replies: []string{"Fine work. 7/10"}, errs: []error{nil}}
	catalog := schema.DefaultCatalog()
	extractor := NewExtractor(gen, store, catalog, 3, 1)

	observations, err := extractor.ExtractFile(context.Background(), testFile())
	require.NoError(t, err)
	require.Len(t, observations, len(catalog))

	seen := make(map[schema.MetricName]bool)
	for _, obs := range observations {
		seen[obs.Metric] = true
	}
	for _, metric := range catalog.Metrics() {
		assert.True(t, seen[metric], "missing metric %s", metric)
	}
}

func TestExtractBatchParallel(t *testing.T) {
	store := iostore.NewMemoryStore()
	gen := &scriptedGenerator{replies: []string{"Fair enough. 5/10"}, errs: []error{nil}}
	catalog := schema.DefaultCatalog()
	extractor := NewExtractor(gen, store, catalog, 3, 4)

	files := []schema.FileRecord{testFile(), testFile(), testFile()}
	observations := extractor.ExtractBatch(context.Background(), files)

	assert.Len(t, observations, len(files)*len(catalog))
	assert.Equal(t, len(files)*len(catalog), gen.calls)
}
