package cmd

import (
	"fmt"
	"time"

	"github.com/huangsam/maintscore/internal/contract"
	"github.com/spf13/cobra"
)

// projectsCmd lists the projects registered for a user.
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List the projects registered for a user.",
	Long: `Show every project a user has scanned, newest first.

Examples:
  maintscore projects --user dev@example.com`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.UserEmail == "" {
			contract.LogFatal("Cannot list projects", fmt.Errorf("--user is required"))
		}
		projects, err := store.ListProjects(rootCtx, cfg.UserEmail)
		if err != nil {
			contract.LogFatal("Cannot list projects", err)
		}
		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return
		}
		for _, p := range projects {
			state := "active"
			if !p.IsActive {
				state = "inactive"
			}
			marker := " "
			if p.Favorite {
				marker = "*"
			}
			fmt.Printf("%s %-30s  %-8s  %s\n", marker, p.Name, state, p.CreatedAt.Format(time.RFC3339))
		}
	},
}
