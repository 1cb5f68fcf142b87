package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Maintainability label constants.
const (
	StrongValue  = "Strong"  // Strong maintainability
	SteadyValue  = "Steady"  // Steady maintainability
	FragileValue = "Fragile" // Fragile maintainability
	UnknownValue = "Unknown" // No scoreable data
)

// Color variables for console output.
var (
	StrongColor  = color.New(color.FgGreen, color.Bold) // strongColor represents a healthy codebase.
	SteadyColor  = color.New(color.FgYellow)            // steadyColor represents standard caution, not bold.
	FragileColor = color.New(color.FgRed, color.Bold)   // fragileColor represents standard danger.
	UnknownColor = color.New(color.FgWhite)             // unknownColor represents missing data.
)

// GetPlainLabel returns a plain text label indicating the maintainability level
// based on a composite score. This is the core logic used for CSV, JSON, and
// table printing. Negative scores come from groups dominated by failed
// extractions.
func GetPlainLabel(score float64) string {
	switch {
	case score < 0:
		return UnknownValue
	case score >= 7.5:
		return StrongValue
	case score >= 5:
		return SteadyValue
	default:
		return FragileValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := GetPlainLabel(score)

	switch text {
	case StrongValue:
		return StrongColor.Sprint(text)
	case SteadyValue:
		return SteadyColor.Sprint(text)
	case FragileValue:
		return FragileColor.Sprint(text)
	default: // "Unknown"
		return UnknownColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. It returns os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the given path matches any of the exclude patterns.
// It supports simple glob patterns (using filepath.Match) when the pattern
// contains wildcard characters (*, ?, [ ]). Patterns ending with '/' are treated
// as prefixes. Patterns starting with '.' are treated as suffix (extension) matches.
// A user can provide patterns like "vendor/", "node_modules/", "*.min.js".
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		// If the pattern contains glob characters, try filepath.Match.
		if strings.ContainsAny(ex, "*?[") || strings.Contains(ex, "**") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.min.js)
			if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		// Handle prefix, suffix, or substring matches
		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// IsTestOrConfigFile reports whether the file name marks a test or
// configuration file. Test files carry a "test" prefix or a stem ending in
// "test" (test_app.py, app_test.go); config files start with "config.".
func IsTestOrConfigFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	if strings.HasPrefix(name, "test") || strings.HasSuffix(stem, "test") {
		return true
	}
	return strings.HasPrefix(name, "config.")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr. The error is optional.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintln(os.Stderr, warnLine(msg, err))
}

func warnLine(msg string, err error) string {
	if err == nil {
		return fmt.Sprintf("Warn %s", msg)
	}
	return fmt.Sprintf("Warn %s: %v", msg, err)
}

// GetStoreDBFilePath returns the path to the default SQLite DB file.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".maintscore.db"
	}
	return filepath.Join(homeDir, ".maintscore.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and
// at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
