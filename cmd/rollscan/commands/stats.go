package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/AzadNikarthil/rollscan/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored voter record counts",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := storage.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	total, err := store.CountVoters(ctx)
	if err != nil {
		return fmt.Errorf("count voters: %w", err)
	}

	byDistrict, err := store.CountByDistrict(ctx)
	if err != nil {
		return fmt.Errorf("count by district: %w", err)
	}

	color.Cyan("total voter records: %d", total)
	for _, dc := range byDistrict {
		name := dc.District
		if name == "" {
			name = "(district unknown)"
		}
		fmt.Printf("  %-40s %d\n", name, dc.Count)
	}
	return nil
}
