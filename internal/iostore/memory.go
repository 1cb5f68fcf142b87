package iostore

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
)

// MemoryStore is an in-memory RecordStore. It backs the none backend for
// database-free runs and doubles as a fixture in tests.
type MemoryStore struct {
	mu           sync.RWMutex
	files        []schema.FileRecord
	observations []schema.MetricObservation
	apiKeys      map[string]schema.APIKey
	projects     map[string]schema.Project
}

var _ contract.RecordStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		apiKeys:  make(map[string]schema.APIKey),
		projects: make(map[string]schema.Project),
	}
}

// InsertFile implements the RecordStore interface.
func (m *MemoryStore) InsertFile(_ context.Context, file schema.FileRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, file)
	return nil
}

// InsertObservation implements the RecordStore interface.
func (m *MemoryStore) InsertObservation(_ context.Context, obs schema.MetricObservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observations = append(m.observations, obs)
	return nil
}

// GetFiles implements the RecordStore interface.
func (m *MemoryStore) GetFiles(_ context.Context, userEmail, projectName string) ([]schema.FileRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var files []schema.FileRecord
	for _, f := range m.files {
		if f.UserEmail == userEmail && f.ProjectName == projectName {
			files = append(files, f)
		}
	}
	return files, nil
}

// GetObservations implements the RecordStore interface.
func (m *MemoryStore) GetObservations(_ context.Context, fileIDs []uuid.UUID) ([]schema.MetricObservation, error) {
	wanted := make(map[uuid.UUID]struct{}, len(fileIDs))
	for _, id := range fileIDs {
		wanted[id] = struct{}{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	var observations []schema.MetricObservation
	for _, obs := range m.observations {
		if _, ok := wanted[obs.FileID]; ok {
			observations = append(observations, obs)
		}
	}
	return observations, nil
}

// InsertAPIKey implements the RecordStore interface.
func (m *MemoryStore) InsertAPIKey(_ context.Context, key schema.APIKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiKeys[key.Key] = key
	return nil
}

// GetAPIKeyUser implements the RecordStore interface.
func (m *MemoryStore) GetAPIKeyUser(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	k, ok := m.apiKeys[key]
	if !ok || k.Status != schema.ActiveKey {
		return "", ErrNotFound
	}
	return k.UserEmail, nil
}

// ListAPIKeys implements the RecordStore interface.
func (m *MemoryStore) ListAPIKeys(_ context.Context, userEmail string) ([]schema.APIKey, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []schema.APIKey
	for _, k := range m.apiKeys {
		if k.UserEmail == userEmail && k.Status == schema.ActiveKey {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// DeleteAPIKey implements the RecordStore interface.
func (m *MemoryStore) DeleteAPIKey(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, ok := m.apiKeys[key]
	if !ok {
		return ErrNotFound
	}
	k.Status = schema.DeletedKey
	m.apiKeys[key] = k
	return nil
}

// UpsertProject implements the RecordStore interface.
func (m *MemoryStore) UpsertProject(_ context.Context, project schema.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := project.UserEmail + "/" + project.Name
	if _, ok := m.projects[id]; !ok {
		m.projects[id] = project
	}
	return nil
}

// ListProjects implements the RecordStore interface.
func (m *MemoryStore) ListProjects(_ context.Context, userEmail string) ([]schema.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var projects []schema.Project
	for _, p := range m.projects {
		if p.UserEmail == userEmail {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

// Close implements the RecordStore interface.
func (m *MemoryStore) Close() error {
	return nil
}
