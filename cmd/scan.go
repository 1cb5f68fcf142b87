package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/core"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/internal/githost"
	"github.com/huangsam/maintscore/internal/llm"
	"github.com/huangsam/maintscore/internal/scanner"
	"github.com/huangsam/maintscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// scanCmd collects source files and scores each one on every metric.
var scanCmd = &cobra.Command{
	Use:   "scan [scan-path]",
	Short: "Score the files of a local path or GitHub repository.",
	Long: `Collect scoreable source files, send each one to the model with every
rubric prompt, and persist one observation per (file, metric).

Files are filtered by the extension allow-list, the exclude patterns, and a
minimum line count before any model call is spent on them. Failures local to
one file or metric record the sentinel score instead of aborting the run.

Examples:
  # Score the current directory
  maintscore scan --project myapp --user dev@example.com

  # Score a specific path with extra excludes
  maintscore scan ./services --project myapp --user dev@example.com --exclude "testdata/,generated/"

  # Score a GitHub repository without cloning it
  maintscore scan --remote acme/billing --branch main --project billing --user dev@example.com`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runScan(); err != nil {
			contract.LogFatal("Cannot run scan", err)
		}
	},
}

func runScan() error {
	if err := requireIdentity(); err != nil {
		return err
	}

	generator, err := llm.NewOpenAIGenerator(llm.Config{APIKey: cfg.OpenAIKey, Model: cfg.Model})
	if err != nil {
		return err
	}

	sessionID := uuid.New()
	var files []schema.FileRecord
	if remote := viper.GetString("remote"); remote != "" {
		files, err = fetchRemoteFiles(remote, viper.GetString("branch"), sessionID)
	} else {
		scanPath := cfg.ScanPath
		if scanPath == "" {
			scanPath = "."
		}
		sc := scanner.NewScanner(scanPath, cfg.ProjectName, cfg.UserEmail, cfg.Excludes)
		files, err = sc.Scan(sessionID)
	}
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No scoreable files found.")
		return nil
	}

	project := schema.Project{
		PrimaryID: uuid.New(),
		UserEmail: cfg.UserEmail,
		Name:      cfg.ProjectName,
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
	if err := store.UpsertProject(rootCtx, project); err != nil {
		return fmt.Errorf("failed to register project: %w", err)
	}
	for _, f := range files {
		if err := store.InsertFile(rootCtx, f); err != nil {
			return fmt.Errorf("failed to insert file %s: %w", f.FilePath, err)
		}
	}

	catalog := schema.DefaultCatalog()
	fmt.Printf("Scoring %d files across %d metrics with %d workers...\n", len(files), len(catalog), cfg.Workers)

	extractor := core.NewExtractor(generator, store, catalog, cfg.MaxAttempts, cfg.Workers)
	observations := extractor.ExtractBatch(rootCtx, files)
	fmt.Printf("Recorded %d observations for session %s.\n", len(observations), sessionID)
	return nil
}

// fetchRemoteFiles builds file records from a GitHub repository tree.
func fetchRemoteFiles(remote, branch string, sessionID uuid.UUID) ([]schema.FileRecord, error) {
	owner, repo, ok := strings.Cut(remote, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("remote must be in owner/repo form (received %q)", remote)
	}

	host := githost.NewGitHubHost(cfg.GitHubToken)
	paths, err := host.ListFiles(rootCtx, owner, repo, branch)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s files: %w", remote, err)
	}

	var files []schema.FileRecord
	for _, p := range paths {
		if contract.IsTestOrConfigFile(p) || contract.ShouldIgnore(p, cfg.Excludes) {
			continue
		}
		content, err := host.GetFileContent(rootCtx, owner, repo, p)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping %s", p), err)
			continue
		}
		rec := schema.NewFileRecord(p, content, cfg.ProjectName, cfg.UserEmail, sessionID)
		if rec.LOC < schema.MinLineCount {
			continue
		}
		files = append(files, rec)
	}
	return files, nil
}
