package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tavernworks/shopkeep/internal/catalog"
	"github.com/tavernworks/shopkeep/internal/enrich"
	"github.com/tavernworks/shopkeep/internal/store"
)

var enrichAliasesPath string

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fetch catalogs and attach stats to every item",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		aliasesPath := enrichAliasesPath
		if aliasesPath == "" {
			aliasesPath = cfg.Enrich.AliasesPath
		}
		aliases, err := enrich.LoadAliases(aliasesPath)
		if err != nil {
			return err
		}

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		client := catalog.NewClient(cfg.Catalog, catalog.WithProgress(func(_, _ int) {
			fmt.Fprint(os.Stderr, ".")
		}))

		summary, err := enrich.New(client, st, aliases, cfg.Catalog).Run(ctx)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}

		fmt.Printf("Lookups: items=%d, weapons=%d, armor=%d\n",
			summary.ItemRecords, summary.WeaponRecords, summary.ArmorRecords)
		fmt.Printf("Matched: %d/%d\n", summary.Matched, summary.Total)
		if len(summary.Unmatched) > 0 {
			fmt.Printf("Unmatched: %s\n", strings.Join(summary.Unmatched, ", "))
		}

		zap.L().Info("enrich run finished",
			zap.Int("matched", summary.Matched),
			zap.Int("total", summary.Total),
		)
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichAliasesPath, "aliases", "", "path to extra alias YAML (default from config)")
	rootCmd.AddCommand(enrichCmd)
}
