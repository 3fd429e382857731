package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tavernworks/shopkeep/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "shopkeep",
	Short: "Inventory backend for a tabletop shop tool",
	Long:  "Manages the item inventory behind a game master's shop tool: enriches items with stats from external catalogs and serves the item CRUD API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
