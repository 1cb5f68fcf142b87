package iostore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	file := sampleFile("demo", "dev@example.com")
	require.NoError(t, store.InsertFile(ctx, file))

	obs := schema.MetricObservation{
		ObservationID: uuid.New(),
		FileID:        file.FileID,
		SessionID:     file.SessionID,
		Timestamp:     time.Now().UTC(),
		Metric:        schema.CodeEfficiency,
		Score:         8,
	}
	require.NoError(t, store.InsertObservation(ctx, obs))

	files, err := store.GetFiles(ctx, "dev@example.com", "demo")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	observations, err := store.GetObservations(ctx, []uuid.UUID{file.FileID})
	require.NoError(t, err)
	assert.Len(t, observations, 1)

	observations, err = store.GetObservations(ctx, []uuid.UUID{uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, observations)
}

func TestMemoryStoreAPIKeys(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	key := schema.APIKey{
		Key:       "k1",
		UserEmail: "dev@example.com",
		Name:      "local",
		Status:    schema.ActiveKey,
	}
	require.NoError(t, store.InsertAPIKey(ctx, key))

	userEmail, err := store.GetAPIKeyUser(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", userEmail)

	require.NoError(t, store.DeleteAPIKey(ctx, "k1"))
	_, err = store.GetAPIKeyUser(ctx, "k1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.DeleteAPIKey(ctx, "missing"), ErrNotFound)
}

func TestMemoryStoreProjects(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	project := schema.Project{Name: "demo", UserEmail: "dev@example.com"}
	require.NoError(t, store.UpsertProject(ctx, project))
	require.NoError(t, store.UpsertProject(ctx, project))

	projects, err := store.ListProjects(ctx, "dev@example.com")
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	projects, err = store.ListProjects(ctx, "other@example.com")
	require.NoError(t, err)
	assert.Empty(t, projects)
}
