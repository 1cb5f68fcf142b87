//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/internal/iostore"
	"github.com/huangsam/maintscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRecordStoreWithMySQL exercises the record store against a MySQL backend.
func TestRecordStoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "maintscore",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/maintscore?parseTime=true", host, port.Port())
	runStoreRoundTrip(t, schema.MySQLBackend, connStr)
}

// TestRecordStoreWithPostgres exercises the record store against a PostgreSQL backend.
func TestRecordStoreWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runStoreRoundTrip(t, schema.PostgreSQLBackend, connStr)
}

// runStoreRoundTrip writes and reads back every record type the store handles.
func runStoreRoundTrip(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	ctx := context.Background()

	store, err := iostore.NewRecordStore(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	sessionID := uuid.New()
	file := schema.NewFileRecord("internal/server.go", "package server\n\nfunc Run() {}\n", "demo", "dev@example.com", sessionID)
	require.NoError(t, store.InsertFile(ctx, file))

	obs := schema.MetricObservation{
		ObservationID: uuid.New(),
		FileID:        file.FileID,
		SessionID:     sessionID,
		Timestamp:     time.Now().UTC(),
		Metric:        schema.IntuitiveDesign,
		Score:         7,
		Reasoning:     "Readable and well organized. (7/10)",
	}
	require.NoError(t, store.InsertObservation(ctx, obs))

	files, err := store.GetFiles(ctx, "dev@example.com", "demo")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, file.FileID, files[0].FileID)
	assert.Equal(t, file.LOC, files[0].LOC)
	assert.WithinDuration(t, file.Timestamp, files[0].Timestamp, time.Second)

	observations, err := store.GetObservations(ctx, []uuid.UUID{file.FileID})
	require.NoError(t, err)
	require.Len(t, observations, 1)
	assert.Equal(t, obs.ObservationID, observations[0].ObservationID)
	assert.Equal(t, schema.IntuitiveDesign, observations[0].Metric)
	assert.Equal(t, 7, observations[0].Score)

	// API key lifecycle
	key := schema.APIKey{
		Key:          uuid.NewString(),
		UserEmail:    "dev@example.com",
		Name:         "integration",
		CreationDate: time.Now().UTC(),
		Status:       schema.ActiveKey,
	}
	require.NoError(t, store.InsertAPIKey(ctx, key))

	user, err := store.GetAPIKeyUser(ctx, key.Key)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", user)

	require.NoError(t, store.DeleteAPIKey(ctx, key.Key))
	_, err = store.GetAPIKeyUser(ctx, key.Key)
	assert.ErrorIs(t, err, iostore.ErrNotFound)

	// Project upsert is idempotent
	project := schema.Project{
		PrimaryID:      uuid.New(),
		UserEmail:      "dev@example.com",
		GithubUsername: "octocat",
		Name:           "demo",
		CreatedAt:      time.Now().UTC(),
		IsActive:       true,
		Favorite:       true,
	}
	require.NoError(t, store.UpsertProject(ctx, project))
	require.NoError(t, store.UpsertProject(ctx, project))

	projects, err := store.ListProjects(ctx, "dev@example.com")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "demo", projects[0].Name)
	assert.Equal(t, "octocat", projects[0].GithubUsername)
	assert.True(t, projects[0].IsActive)
	assert.True(t, projects[0].Favorite)
}
