package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AzadNikarthil/rollscan/internal/storage"
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the voters table and indexes",
	RunE:  runInitDB,
}

func init() {
	rootCmd.AddCommand(initdbCmd)
}

func runInitDB(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	store, err := storage.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	log.Info().Str("driver", store.Driver()).Msg("schema ready")
	return nil
}
