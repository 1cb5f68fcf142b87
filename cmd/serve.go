package cmd

import (
	"fmt"

	"github.com/huangsam/maintscore/core"
	"github.com/huangsam/maintscore/internal/api"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/internal/githost"
	"github.com/huangsam/maintscore/internal/llm"
	"github.com/huangsam/maintscore/schema"
	"github.com/spf13/cobra"
)

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the maintscore HTTP API.",
	Long: `Expose file ingestion, metric extraction, and analytics over HTTP.

All routes except /health and /generate_key require an X-API-KEY header.
Extraction routes are enabled only when an OpenAI key is configured; the
GitHub routes are enabled only when a token is configured.

Examples:
  # Serve on the default address
  maintscore serve

  # Serve behind a reverse proxy port
  maintscore serve --address 127.0.0.1:9090`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runServe(); err != nil {
			contract.LogFatal("Cannot run server", err)
		}
	},
}

func runServe() error {
	catalog := schema.DefaultCatalog()

	// Extraction routes stay disabled without a model key.
	var extractor *core.Extractor
	if generator, err := llm.NewOpenAIGenerator(llm.Config{APIKey: cfg.OpenAIKey, Model: cfg.Model}); err == nil {
		extractor = core.NewExtractor(generator, store, catalog, cfg.MaxAttempts, cfg.Workers)
	} else {
		contract.LogWarn("Extraction routes disabled", err)
	}

	var host contract.SourceHost
	if cfg.GitHubToken != "" {
		host = githost.NewGitHubHost(cfg.GitHubToken)
	}

	server := api.NewServer(store, extractor, host, catalog, cfg.KeyFileLimit)
	fmt.Printf("Listening on %s\n", cfg.ServeAddress)
	return server.Run(cfg.ServeAddress)
}
