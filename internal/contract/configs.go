package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/huangsam/maintscore/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 1
	DefaultMaxAttempts  = 3
	DefaultServeAddress = ":8080"
	DefaultModel        = "gpt-4o-mini"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for scoring and reporting.
// This struct remains the "final, validated" config.
type Config struct {
	ScanPath     string
	ProjectName  string
	UserEmail    string
	Workers      int
	Excludes     []string
	Precision    int
	Output       schema.OutputMode
	OutputFile   string
	KeyFileLimit int
	MaxAttempts  int
	Width        int // Terminal width override (0 = auto-detect)

	Model       string
	OpenAIKey   string // Please use env var as this is plaintext
	GitHubToken string // Please use env var as this is plaintext

	ServeAddress string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ScanPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Project        string `mapstructure:"project"`
	User           string `mapstructure:"user"`
	Workers        int    `mapstructure:"workers"`
	Exclude        string `mapstructure:"exclude"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	KeyFileLimit   int    `mapstructure:"key-file-limit"`
	MaxAttempts    int    `mapstructure:"max-attempts"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Color          string `mapstructure:"color"`

	// --- Fields from scanCmd.Flags() ---
	Model     string `mapstructure:"model"`
	OpenAIKey string `mapstructure:"openai-key"`

	// --- Fields from serveCmd.Flags() ---
	Address string `mapstructure:"address"`

	// --- Fields from scanCmd remote mode ---
	GitHubToken string `mapstructure:"github-token"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := resolveScanPath(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ProjectName = strings.TrimSpace(input.Project)
	cfg.UserEmail = strings.TrimSpace(input.User)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.OpenAIKey = input.OpenAIKey
	cfg.GitHubToken = input.GitHubToken

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 2. KeyFileLimit Validation ---
	if _, ok := schema.ValidKeyFileLimits[input.KeyFileLimit]; !ok {
		return fmt.Errorf("key-file-limit must be %d or %d (received %d)",
			schema.DefaultKeyFileLimit, schema.WideKeyFileLimit, input.KeyFileLimit)
	}
	cfg.KeyFileLimit = input.KeyFileLimit

	// --- 3. MaxAttempts Validation ---
	if input.MaxAttempts <= 0 {
		return fmt.Errorf("max-attempts must be greater than 0 (received %d)", input.MaxAttempts)
	}
	cfg.MaxAttempts = input.MaxAttempts

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 5. Model and Address ---
	cfg.Model = strings.TrimSpace(input.Model)
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	cfg.ServeAddress = strings.TrimSpace(input.Address)
	if cfg.ServeAddress == "" {
		cfg.ServeAddress = DefaultServeAddress
	}

	// --- 6. Excludes Processing ---
	defaults := []string{
		"Cargo.lock", "go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "composer.lock", "uv.lock",
		".min.js", ".min.css",
		"vendor/", "node_modules/", "dist/", "build/", "out/", "target/", "bin/",
		".git/",
	}
	cfg.Excludes = defaults // Set defaults first

	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// resolveScanPath resolves the local scan path when one is given. Remote scans
// and report-only runs leave it empty.
func resolveScanPath(cfg *Config, input *ConfigRawInput) error {
	if input.ScanPathStr == "" {
		cfg.ScanPath = ""
		return nil
	}

	absPath, err := filepath.Abs(input.ScanPathStr)
	if err != nil {
		return err
	}
	absPath = filepath.Clean(absPath)

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("cannot access scan path %s: %w", absPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("scan path %s is not a directory", absPath)
	}

	cfg.ScanPath = absPath
	return nil
}
