// Package schema has configs, models and global variables for all parts of maintscore.
package schema

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// FileRecord holds the metadata and content of one analyzed file.
// Size, line count and extension are derived from the content once, at
// creation time, and are never recomputed afterward.
type FileRecord struct {
	FileID      uuid.UUID `json:"file_id"`
	FilePath    string    `json:"file_path"`    // Project-relative or absolute, depending on caller
	ProjectName string    `json:"project_name"` // Project the file belongs to
	UserEmail   string    `json:"user_email"`   // Owning user
	FileSize    int64     `json:"file_size"`    // Content size in bytes
	LOC         int       `json:"loc"`          // Content line count
	Extension   string    `json:"extension"`    // File extension without the leading dot
	Content     string    `json:"content"`      // Full text content
	SessionID   uuid.UUID `json:"session_id"`   // Analysis run the file was captured in
	Timestamp   time.Time `json:"timestamp"`    // When the record was created (UTC)
}

// NewFileRecord builds a FileRecord for the given content, deriving the
// size, line count and extension.
func NewFileRecord(path, content, project, userEmail string, sessionID uuid.UUID) FileRecord {
	ext := ""
	if idx := strings.LastIndex(path, "."); idx >= 0 && idx < len(path)-1 {
		ext = path[idx+1:]
	}
	return FileRecord{
		FileID:      uuid.New(),
		FilePath:    path,
		ProjectName: project,
		UserEmail:   userEmail,
		FileSize:    int64(len(content)),
		LOC:         CountLines(content),
		Extension:   ext,
		Content:     content,
		SessionID:   sessionID,
		Timestamp:   time.Now().UTC(),
	}
}

// CountLines counts the lines of a file body the same way for every caller.
// An empty body has zero lines; a trailing newline does not add a line.
func CountLines(content string) int {
	if content == "" {
		return 0
	}
	n := strings.Count(content, "\n")
	if !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

// MetricObservation is one scored evaluation of one file on one
// maintainability dimension. Observations are immutable once persisted; a
// re-run produces a new observation with a new id rather than an update.
type MetricObservation struct {
	ObservationID uuid.UUID  `json:"observation_id"`
	FileID        uuid.UUID  `json:"file_id"`
	SessionID     uuid.UUID  `json:"session_id"`
	Timestamp     time.Time  `json:"timestamp"`
	Metric        MetricName `json:"metric"`
	Score         int        `json:"score"`     // 0..10, or SentinelScore when unscorable
	Reasoning     string     `json:"reasoning"` // Raw model reply, possibly empty
}

// Valid reports whether the observation's score is inside the documented
// range or equal to the sentinel.
func (o MetricObservation) Valid() bool {
	return o.Score == SentinelScore || (o.Score >= ScoreMin && o.Score <= ScoreMax)
}

// JoinedRecord is one observation flattened together with the file it
// references. The embedded observation's session id and timestamp win over
// the file's on the name collision. Ephemeral: built in memory for a single
// analytics pass and never persisted.
type JoinedRecord struct {
	MetricObservation

	FilePath    string `json:"file_path"`
	ProjectName string `json:"project_name"`
	UserEmail   string `json:"user_email"`
	FileSize    int64  `json:"file_size"`
	LOC         int    `json:"loc"`
	Extension   string `json:"extension"`
}

// KeyFile is a file retained in an aggregated group's ranked list because of
// its outsized share of the group's lines of code.
type KeyFile struct {
	FilePath       string  `json:"file_path"`
	ContribPercent float64 `json:"contrib_percent"` // loc / group total loc, as a percentage
	Score          int     `json:"score"`
}

// AggregatedGroup is the output of the weighted aggregator for one
// (metric, date) pair.
type AggregatedGroup struct {
	Score    float64   `json:"score"` // LOC-weighted composite score
	KeyFiles []KeyFile `json:"key_files"`
}

// SeriesPoint is one dated entry in a metric's trend series.
type SeriesPoint struct {
	Date     time.Time `json:"date"`
	Score    float64   `json:"score"`
	KeyFiles []KeyFile `json:"key_files"`
}

// MetricSeries is an ordered-by-date trend for a single metric, ready for an
// external presentation layer. Dates are strictly ascending; missing dates
// are absent, not interpolated.
type MetricSeries struct {
	Metric      MetricName    `json:"metric"`
	Label       string        `json:"label"`       // Display label derived from the metric name
	Description string        `json:"description"` // Rubric description from the catalog
	Points      []SeriesPoint `json:"points"`
}

// Project is an analyzed repository registered for a user.
type Project struct {
	PrimaryID      uuid.UUID `json:"primary_id"`
	UserEmail      string    `json:"user"`
	GithubUsername string    `json:"github_username"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	IsActive       bool      `json:"is_active"`
	Favorite       bool      `json:"favorite"`
}

// APIKey is a transport credential for the HTTP surface.
type APIKey struct {
	Key          string       `json:"api_key"`
	UserEmail    string       `json:"user"`
	Name         string       `json:"name"`
	CreationDate time.Time    `json:"creation_date"`
	Status       APIKeyStatus `json:"status"`
}
