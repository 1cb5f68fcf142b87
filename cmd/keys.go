package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/maintscore/internal/contract"
	"github.com/huangsam/maintscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// keysCmd manages API keys for the HTTP surface.
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage API keys for the HTTP API",
	Long: `Create, list, and revoke the API keys accepted by the serve command.

Keys are attributed to a user email and soft-deleted on revocation, so a
revoked key stops authenticating but its audit trail survives.

Subcommands:
  generate - Create a new active key for a user
  list     - Show a user's keys and their status
  delete   - Revoke a key

Examples:
  maintscore keys generate --user dev@example.com --key-name laptop
  maintscore keys list --user dev@example.com
  maintscore keys delete 3f1c9b2a-...`,
}

// keysGenerateCmd creates a new API key.
var keysGenerateCmd = &cobra.Command{
	Use:     "generate",
	Short:   "Create a new active API key for a user",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.UserEmail == "" {
			contract.LogFatal("Cannot generate key", fmt.Errorf("--user is required"))
		}
		key := schema.APIKey{
			Key:          uuid.NewString(),
			UserEmail:    cfg.UserEmail,
			Name:         viper.GetString("key-name"),
			CreationDate: time.Now().UTC(),
			Status:       schema.ActiveKey,
		}
		if err := store.InsertAPIKey(rootCtx, key); err != nil {
			contract.LogFatal("Cannot generate key", err)
		}
		fmt.Println(key.Key)
	},
}

// keysListCmd lists a user's API keys.
var keysListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show a user's API keys and their status",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.UserEmail == "" {
			contract.LogFatal("Cannot list keys", fmt.Errorf("--user is required"))
		}
		keys, err := store.ListAPIKeys(rootCtx, cfg.UserEmail)
		if err != nil {
			contract.LogFatal("Cannot list keys", err)
		}
		if len(keys) == 0 {
			fmt.Println("No API keys found.")
			return
		}
		for _, k := range keys {
			fmt.Printf("%s  %-8s  %s  %s\n", k.Key, k.Status, k.CreationDate.Format(time.RFC3339), k.Name)
		}
	},
}

// keysDeleteCmd revokes an API key.
var keysDeleteCmd = &cobra.Command{
	Use:   "delete [key]",
	Short: "Revoke an API key",
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional argument is a key, not a scan path.
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := store.DeleteAPIKey(rootCtx, args[0]); err != nil {
			contract.LogFatal("Cannot delete key", err)
		}
		fmt.Println("API key revoked.")
	},
}
