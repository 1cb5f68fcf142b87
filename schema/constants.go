package schema

// Custom string types for type safety.
type (
	// MetricName identifies one maintainability dimension.
	MetricName string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the record store.
	DatabaseBackend string

	// APIKeyStatus represents the lifecycle state of an API key.
	APIKeyStatus string
)

// Score bounds and the out-of-range sentinel for "could not be scored".
const (
	ScoreMin      = 0
	ScoreMax      = 10
	SentinelScore = -1
)

// Key-file retention limits. Truncation happens after ranking, so every
// record still contributes to the group total regardless of the limit.
const (
	DefaultKeyFileLimit = 5
	WideKeyFileLimit    = 8
)

// All maintainability metrics scored per file.
const (
	IntuitiveDesign    MetricName = "intuitive_design"
	FunctionalCohesion MetricName = "functional_cohesion"
	AdaptiveResilience MetricName = "adaptive_resilience"
	CodeEfficiency     MetricName = "code_efficiency"
	DataSecurity       MetricName = "data_security_and_integrity"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All record store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All API key states supported.
const (
	ActiveKey  APIKeyStatus = "active"
	DeletedKey APIKeyStatus = "deleted"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid record store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidKeyFileLimits lists the supported key-file retention sizes.
var ValidKeyFileLimits = map[int]struct{}{
	DefaultKeyFileLimit: {},
	WideKeyFileLimit:    {},
}
