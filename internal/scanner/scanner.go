// Package scanner walks a local directory tree and builds file records for
// the files worth scoring.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
)

// Scanner collects source files under a root directory. Files are kept when
// their extension is on the allow-list, they are not test or config files,
// they meet the minimum line count and no exclude pattern matches.
type Scanner struct {
	Root         string
	ProjectName  string
	UserEmail    string
	Excludes     []string
	MinLineCount int
}

// NewScanner builds a scanner rooted at the given directory.
func NewScanner(root, projectName, userEmail string, excludes []string) *Scanner {
	return &Scanner{
		Root:         root,
		ProjectName:  projectName,
		UserEmail:    userEmail,
		Excludes:     excludes,
		MinLineCount: schema.MinLineCount,
	}
}

// Scan walks the tree and returns one file record per kept file. All records
// of a single scan share the session id. Unreadable files are logged and
// skipped so one bad file cannot sink the scan.
func (s *Scanner) Scan(sessionID uuid.UUID) ([]schema.FileRecord, error) {
	var records []schema.FileRecord

	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(s.Root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && contract.ShouldIgnore(rel+"/", s.Excludes) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.keep(rel) {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			contract.LogWarn(fmt.Sprintf("Skipping unreadable file %s", rel), readErr)
			return nil
		}

		record := schema.NewFileRecord(rel, string(content), s.ProjectName, s.UserEmail, sessionID)
		if record.LOC < s.MinLineCount {
			return nil
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.Root, err)
	}
	return records, nil
}

// keep applies the extension allow-list, the test/config-file rule and the
// exclude patterns.
func (s *Scanner) keep(rel string) bool {
	ext := strings.ToLower(filepath.Ext(rel))
	if _, ok := schema.AllowedExtensions[ext]; !ok {
		return false
	}
	if contract.IsTestOrConfigFile(rel) {
		return false
	}
	return !contract.ShouldIgnore(rel, s.Excludes)
}
