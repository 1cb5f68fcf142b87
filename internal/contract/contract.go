// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/schema"
)

// RecordStore defines the persistence operations for files, observations and
// the supporting account records. Each call is assumed atomic at the storage
// layer; the core never needs multi-record transactions.
type RecordStore interface {
	// --- Files / Observations ---

	// InsertFile writes a file record. Records are immutable once written.
	InsertFile(ctx context.Context, file schema.FileRecord) error

	// InsertObservation writes one metric observation. Observations are
	// immutable once written; re-runs insert new observations.
	InsertObservation(ctx context.Context, obs schema.MetricObservation) error

	// GetFiles returns every file record for the (user, project) pair.
	GetFiles(ctx context.Context, userEmail, projectName string) ([]schema.FileRecord, error)

	// GetObservations returns every observation referencing any of the
	// given file ids.
	GetObservations(ctx context.Context, fileIDs []uuid.UUID) ([]schema.MetricObservation, error)

	// --- API keys ---

	InsertAPIKey(ctx context.Context, key schema.APIKey) error
	GetAPIKeyUser(ctx context.Context, key string) (string, error)
	ListAPIKeys(ctx context.Context, userEmail string) ([]schema.APIKey, error)
	DeleteAPIKey(ctx context.Context, key string) error

	// --- Projects ---

	UpsertProject(ctx context.Context, project schema.Project) error
	ListProjects(ctx context.Context, userEmail string) ([]schema.Project, error)

	// Close closes the underlying connection.
	Close() error
}

// TextGenerator defines the external text-generation collaborator. The model
// identifier and temperature are fixed by the implementation; the core only
// supplies the rendered prompt.
type TextGenerator interface {
	// Generate sends the prompt and returns the model's free-text reply.
	Generate(ctx context.Context, prompt string) (string, error)
}

// SourceHost defines the read-only source-hosting collaborator.
type SourceHost interface {
	// ListFiles returns the blob paths of the repository tree at the given
	// branch, filtered by the extension allow-list.
	ListFiles(ctx context.Context, owner, repo, branch string) ([]string, error)

	// GetFileContent returns the decoded text content of one blob.
	GetFileContent(ctx context.Context, owner, repo, path string) (string, error)
}
