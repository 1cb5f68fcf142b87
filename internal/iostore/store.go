// Package iostore persists file records, metric observations and account
// data across SQLite, MySQL and PostgreSQL backends.
package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for record storage.
const (
	filesTable    = "maintscore_files"
	metricsTable  = "maintscore_metrics"
	apiKeysTable  = "maintscore_api_keys"
	projectsTable = "maintscore_projects"
)

// ErrNotFound indicates that a lookup matched no rows.
var ErrNotFound = errors.New("record not found")

// SQLStore implements the RecordStore interface on top of database/sql.
type SQLStore struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RecordStore = &SQLStore{} // Compile-time check

// NewRecordStore initializes and returns a new RecordStore based on the
// backend type. The none backend gets an in-memory store so that scans and
// reports still work without a database.
func NewRecordStore(backend schema.DatabaseBackend, connStr string) (contract.RecordStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Check that the server is running and connection parameters are valid", backend, err)
	}

	// Create the table schemas
	if err := createRecordTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create record tables: %w", err)
	}

	return &SQLStore{db: db, backend: backend}, nil
}

// createRecordTables creates the record storage tables.
func createRecordTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{filesTable, getCreateFilesQuery(backend)},
		{metricsTable, getCreateMetricsQuery(backend)},
		{apiKeysTable, getCreateAPIKeysQuery(backend)},
		{projectsTable, getCreateProjectsQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// InsertFile writes a file record.
func (s *SQLStore) InsertFile(ctx context.Context, file schema.FileRecord) error {
	query := fmt.Sprintf(`INSERT INTO %s
		(file_id, file_path, project_name, user_email, file_size, loc, extension, content, session_id, created_at)
		VALUES (%s)`, filesTable, s.placeholders(10))
	_, err := s.db.ExecContext(ctx, query,
		file.FileID.String(), file.FilePath, file.ProjectName, file.UserEmail,
		file.FileSize, file.LOC, file.Extension, file.Content,
		file.SessionID.String(), formatTime(file.Timestamp, s.backend))
	if err != nil {
		return fmt.Errorf("insert file %s: %w", file.FilePath, err)
	}
	return nil
}

// InsertObservation writes one metric observation.
func (s *SQLStore) InsertObservation(ctx context.Context, obs schema.MetricObservation) error {
	query := fmt.Sprintf(`INSERT INTO %s
		(observation_id, file_id, session_id, created_at, metric, score, reasoning)
		VALUES (%s)`, metricsTable, s.placeholders(7))
	_, err := s.db.ExecContext(ctx, query,
		obs.ObservationID.String(), obs.FileID.String(), obs.SessionID.String(),
		formatTime(obs.Timestamp, s.backend), string(obs.Metric), obs.Score, obs.Reasoning)
	if err != nil {
		return fmt.Errorf("insert observation %s: %w", obs.ObservationID, err)
	}
	return nil
}

// GetFiles returns every file record for the (user, project) pair.
func (s *SQLStore) GetFiles(ctx context.Context, userEmail, projectName string) ([]schema.FileRecord, error) {
	query := fmt.Sprintf(`SELECT file_id, file_path, project_name, user_email, file_size, loc, extension, content, session_id, created_at
		FROM %s WHERE user_email = %s AND project_name = %s`,
		filesTable, s.placeholder(1), s.placeholder(2))
	rows, err := s.db.QueryContext(ctx, query, userEmail, projectName)
	if err != nil {
		return nil, fmt.Errorf("query files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []schema.FileRecord
	for rows.Next() {
		var f schema.FileRecord
		var fileID, sessionID string
		var createdAt storeTime
		if err := rows.Scan(&fileID, &f.FilePath, &f.ProjectName, &f.UserEmail,
			&f.FileSize, &f.LOC, &f.Extension, &f.Content, &sessionID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan file row: %w", err)
		}
		if f.FileID, err = uuid.Parse(fileID); err != nil {
			return nil, fmt.Errorf("parse file id %q: %w", fileID, err)
		}
		if f.SessionID, err = uuid.Parse(sessionID); err != nil {
			return nil, fmt.Errorf("parse session id %q: %w", sessionID, err)
		}
		f.Timestamp = createdAt.t
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file rows: %w", err)
	}
	return files, nil
}

// GetObservations returns every observation referencing any of the given file ids.
func (s *SQLStore) GetObservations(ctx context.Context, fileIDs []uuid.UUID) ([]schema.MetricObservation, error) {
	if len(fileIDs) == 0 {
		return []schema.MetricObservation{}, nil
	}

	args := make([]any, 0, len(fileIDs))
	marks := make([]string, 0, len(fileIDs))
	for i, id := range fileIDs {
		args = append(args, id.String())
		marks = append(marks, s.placeholder(i+1))
	}

	query := fmt.Sprintf(`SELECT observation_id, file_id, session_id, created_at, metric, score, reasoning
		FROM %s WHERE file_id IN (%s)`, metricsTable, strings.Join(marks, ", "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var observations []schema.MetricObservation
	for rows.Next() {
		var obs schema.MetricObservation
		var obsID, fileID, sessionID, metric string
		var createdAt storeTime
		if err := rows.Scan(&obsID, &fileID, &sessionID, &createdAt, &metric, &obs.Score, &obs.Reasoning); err != nil {
			return nil, fmt.Errorf("scan observation row: %w", err)
		}
		if obs.ObservationID, err = uuid.Parse(obsID); err != nil {
			return nil, fmt.Errorf("parse observation id %q: %w", obsID, err)
		}
		if obs.FileID, err = uuid.Parse(fileID); err != nil {
			return nil, fmt.Errorf("parse file id %q: %w", fileID, err)
		}
		if obs.SessionID, err = uuid.Parse(sessionID); err != nil {
			return nil, fmt.Errorf("parse session id %q: %w", sessionID, err)
		}
		obs.Timestamp = createdAt.t
		obs.Metric = schema.MetricName(metric)
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observation rows: %w", err)
	}
	return observations, nil
}

// InsertAPIKey writes a new API key.
func (s *SQLStore) InsertAPIKey(ctx context.Context, key schema.APIKey) error {
	query := fmt.Sprintf(`INSERT INTO %s (api_key, user_email, key_name, created_at, status)
		VALUES (%s)`, apiKeysTable, s.placeholders(5))
	_, err := s.db.ExecContext(ctx, query,
		key.Key, key.UserEmail, key.Name, formatTime(key.CreationDate, s.backend), string(key.Status))
	if err != nil {
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

// GetAPIKeyUser resolves an active API key to its owning user email.
// Deleted keys behave like unknown keys.
func (s *SQLStore) GetAPIKeyUser(ctx context.Context, key string) (string, error) {
	query := fmt.Sprintf(`SELECT user_email FROM %s WHERE api_key = %s AND status = %s`,
		apiKeysTable, s.placeholder(1), s.placeholder(2))
	var userEmail string
	err := s.db.QueryRowContext(ctx, query, key, string(schema.ActiveKey)).Scan(&userEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup api key: %w", err)
	}
	return userEmail, nil
}

// ListAPIKeys returns every active key owned by the user.
func (s *SQLStore) ListAPIKeys(ctx context.Context, userEmail string) ([]schema.APIKey, error) {
	query := fmt.Sprintf(`SELECT api_key, user_email, key_name, created_at, status
		FROM %s WHERE user_email = %s AND status = %s`,
		apiKeysTable, s.placeholder(1), s.placeholder(2))
	rows, err := s.db.QueryContext(ctx, query, userEmail, string(schema.ActiveKey))
	if err != nil {
		return nil, fmt.Errorf("query api keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var keys []schema.APIKey
	for rows.Next() {
		var k schema.APIKey
		var status string
		var createdAt storeTime
		if err := rows.Scan(&k.Key, &k.UserEmail, &k.Name, &createdAt, &status); err != nil {
			return nil, fmt.Errorf("scan api key row: %w", err)
		}
		k.CreationDate = createdAt.t
		k.Status = schema.APIKeyStatus(status)
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate api key rows: %w", err)
	}
	return keys, nil
}

// DeleteAPIKey soft-deletes a key so that audit history survives.
func (s *SQLStore) DeleteAPIKey(ctx context.Context, key string) error {
	query := fmt.Sprintf(`UPDATE %s SET status = %s WHERE api_key = %s`,
		apiKeysTable, s.placeholder(1), s.placeholder(2))
	result, err := s.db.ExecContext(ctx, query, string(schema.DeletedKey), key)
	if err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpsertProject records a project for the user, ignoring duplicates.
func (s *SQLStore) UpsertProject(ctx context.Context, project schema.Project) error {
	const columns = "project_id, project_name, user_email, github_username, created_at, is_active, favorite"
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE project_name = new.project_name`, projectsTable, columns)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (project_name, user_email) DO NOTHING`, projectsTable, columns)
	default: // SQLite
		query = fmt.Sprintf(`INSERT OR IGNORE INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?)`, projectsTable, columns)
	}
	_, err := s.db.ExecContext(ctx, query,
		project.PrimaryID.String(), project.Name, project.UserEmail, project.GithubUsername,
		formatTime(project.CreatedAt, s.backend), project.IsActive, project.Favorite)
	if err != nil {
		return fmt.Errorf("upsert project %s: %w", project.Name, err)
	}
	return nil
}

// ListProjects returns every project recorded for the user.
func (s *SQLStore) ListProjects(ctx context.Context, userEmail string) ([]schema.Project, error) {
	query := fmt.Sprintf(`SELECT project_id, project_name, user_email, github_username, created_at, is_active, favorite
		FROM %s WHERE user_email = %s ORDER BY project_name`,
		projectsTable, s.placeholder(1))
	rows, err := s.db.QueryContext(ctx, query, userEmail)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var projects []schema.Project
	for rows.Next() {
		var p schema.Project
		var projectID string
		var createdAt storeTime
		if err := rows.Scan(&projectID, &p.Name, &p.UserEmail, &p.GithubUsername,
			&createdAt, &p.IsActive, &p.Favorite); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		if p.PrimaryID, err = uuid.Parse(projectID); err != nil {
			return nil, fmt.Errorf("parse project id %q: %w", projectID, err)
		}
		p.CreatedAt = createdAt.t
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}
	return projects, nil
}

// Close closes the underlying DB connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// placeholder returns the parameter placeholder at position n for the backend.
func (s *SQLStore) placeholder(n int) string {
	switch s.backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("$%d", n)
	default: // SQLite and MySQL
		return "?"
	}
}

// placeholders returns a comma-separated list of n placeholders.
func (s *SQLStore) placeholders(n int) string {
	marks := make([]string, n)
	for i := range n {
		marks[i] = s.placeholder(i + 1)
	}
	return strings.Join(marks, ", ")
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t.UTC()
	}
}

// storeTime scans timestamps across backends: SQLite hands back strings,
// MySQL raw bytes, PostgreSQL a time.Time.
type storeTime struct {
	t time.Time
}

func (st *storeTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		st.t = v
		return nil
	case string:
		return st.parse(v)
	case []byte:
		return st.parse(string(v))
	case nil:
		st.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (st *storeTime) parse(s string) error {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			st.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q", s)
}
