package iostore

import (
	"fmt"

	"github.com/huangsam/maintscore/schema"
)

// getCreateFilesQuery returns the CREATE TABLE query for file records.
func getCreateFilesQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				file_id VARCHAR(36) PRIMARY KEY,
				file_path VARCHAR(512) NOT NULL,
				project_name VARCHAR(255) NOT NULL,
				user_email VARCHAR(255) NOT NULL,
				file_size BIGINT NOT NULL,
				loc INT NOT NULL,
				extension VARCHAR(32) NOT NULL,
				content MEDIUMTEXT NOT NULL,
				session_id VARCHAR(36) NOT NULL,
				created_at DATETIME(6) NOT NULL,
				INDEX idx_files_user_project (user_email, project_name)
			);
		`, filesTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				file_id VARCHAR(36) PRIMARY KEY,
				file_path TEXT NOT NULL,
				project_name TEXT NOT NULL,
				user_email TEXT NOT NULL,
				file_size BIGINT NOT NULL,
				loc INTEGER NOT NULL,
				extension TEXT NOT NULL,
				content TEXT NOT NULL,
				session_id VARCHAR(36) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);
		`, filesTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				file_id TEXT PRIMARY KEY,
				file_path TEXT NOT NULL,
				project_name TEXT NOT NULL,
				user_email TEXT NOT NULL,
				file_size INTEGER NOT NULL,
				loc INTEGER NOT NULL,
				extension TEXT NOT NULL,
				content TEXT NOT NULL,
				session_id TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
		`, filesTable)
	}
}

// getCreateMetricsQuery returns the CREATE TABLE query for metric observations.
func getCreateMetricsQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				observation_id VARCHAR(36) PRIMARY KEY,
				file_id VARCHAR(36) NOT NULL,
				session_id VARCHAR(36) NOT NULL,
				created_at DATETIME(6) NOT NULL,
				metric VARCHAR(64) NOT NULL,
				score INT NOT NULL,
				reasoning TEXT NOT NULL,
				INDEX idx_metrics_file (file_id)
			);
		`, metricsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				observation_id VARCHAR(36) PRIMARY KEY,
				file_id VARCHAR(36) NOT NULL,
				session_id VARCHAR(36) NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				metric TEXT NOT NULL,
				score INTEGER NOT NULL,
				reasoning TEXT NOT NULL
			);
		`, metricsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				observation_id TEXT PRIMARY KEY,
				file_id TEXT NOT NULL,
				session_id TEXT NOT NULL,
				created_at TEXT NOT NULL,
				metric TEXT NOT NULL,
				score INTEGER NOT NULL,
				reasoning TEXT NOT NULL
			);
		`, metricsTable)
	}
}

// getCreateAPIKeysQuery returns the CREATE TABLE query for API keys.
func getCreateAPIKeysQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				api_key VARCHAR(64) PRIMARY KEY,
				user_email VARCHAR(255) NOT NULL,
				key_name VARCHAR(255) NOT NULL,
				created_at DATETIME(6) NOT NULL,
				status VARCHAR(16) NOT NULL
			);
		`, apiKeysTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				api_key VARCHAR(64) PRIMARY KEY,
				user_email TEXT NOT NULL,
				key_name TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				status TEXT NOT NULL
			);
		`, apiKeysTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				api_key TEXT PRIMARY KEY,
				user_email TEXT NOT NULL,
				key_name TEXT NOT NULL,
				created_at TEXT NOT NULL,
				status TEXT NOT NULL
			);
		`, apiKeysTable)
	}
}

// getCreateProjectsQuery returns the CREATE TABLE query for projects.
func getCreateProjectsQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				project_id VARCHAR(36) NOT NULL,
				project_name VARCHAR(255) NOT NULL,
				user_email VARCHAR(255) NOT NULL,
				github_username VARCHAR(255) NOT NULL,
				created_at DATETIME(6) NOT NULL,
				is_active BOOLEAN NOT NULL,
				favorite BOOLEAN NOT NULL,
				PRIMARY KEY (project_name, user_email)
			);
		`, projectsTable)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				project_id VARCHAR(36) NOT NULL,
				project_name TEXT NOT NULL,
				user_email TEXT NOT NULL,
				github_username TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				is_active BOOLEAN NOT NULL,
				favorite BOOLEAN NOT NULL,
				PRIMARY KEY (project_name, user_email)
			);
		`, projectsTable)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				project_id TEXT NOT NULL,
				project_name TEXT NOT NULL,
				user_email TEXT NOT NULL,
				github_username TEXT NOT NULL,
				created_at TEXT NOT NULL,
				is_active BOOLEAN NOT NULL,
				favorite BOOLEAN NOT NULL,
				PRIMARY KEY (project_name, user_email)
			);
		`, projectsTable)
	}
}
