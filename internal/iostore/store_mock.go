package iostore

import (
	"context"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
	"github.com/stretchr/testify/mock"
)

// MockRecordStore is a mock implementation of RecordStore for testing.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{} // Compile-time check

// InsertFile implements the RecordStore interface.
func (m *MockRecordStore) InsertFile(ctx context.Context, file schema.FileRecord) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

// InsertObservation implements the RecordStore interface.
func (m *MockRecordStore) InsertObservation(ctx context.Context, obs schema.MetricObservation) error {
	args := m.Called(ctx, obs)
	return args.Error(0)
}

// GetFiles implements the RecordStore interface.
func (m *MockRecordStore) GetFiles(ctx context.Context, userEmail, projectName string) ([]schema.FileRecord, error) {
	args := m.Called(ctx, userEmail, projectName)
	files, _ := args.Get(0).([]schema.FileRecord)
	return files, args.Error(1)
}

// GetObservations implements the RecordStore interface.
func (m *MockRecordStore) GetObservations(ctx context.Context, fileIDs []uuid.UUID) ([]schema.MetricObservation, error) {
	args := m.Called(ctx, fileIDs)
	observations, _ := args.Get(0).([]schema.MetricObservation)
	return observations, args.Error(1)
}

// InsertAPIKey implements the RecordStore interface.
func (m *MockRecordStore) InsertAPIKey(ctx context.Context, key schema.APIKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// GetAPIKeyUser implements the RecordStore interface.
func (m *MockRecordStore) GetAPIKeyUser(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// ListAPIKeys implements the RecordStore interface.
func (m *MockRecordStore) ListAPIKeys(ctx context.Context, userEmail string) ([]schema.APIKey, error) {
	args := m.Called(ctx, userEmail)
	keys, _ := args.Get(0).([]schema.APIKey)
	return keys, args.Error(1)
}

// DeleteAPIKey implements the RecordStore interface.
func (m *MockRecordStore) DeleteAPIKey(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// UpsertProject implements the RecordStore interface.
func (m *MockRecordStore) UpsertProject(ctx context.Context, project schema.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

// ListProjects implements the RecordStore interface.
func (m *MockRecordStore) ListProjects(ctx context.Context, userEmail string) ([]schema.Project, error) {
	args := m.Called(ctx, userEmail)
	projects, _ := args.Get(0).([]schema.Project)
	return projects, args.Error(1)
}

// Close implements the RecordStore interface.
func (m *MockRecordStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
