package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/tavernworks/shopkeep/internal/catalog"
)

var searchSource string

// searchCmd lists catalog names containing the given terms. It exists to
// support alias-table curation: after an enrich run reports unmatched
// items, search the catalog for what the source actually calls them.
var searchCmd = &cobra.Command{
	Use:   "search <term> [term...]",
	Short: "Search a catalog source for item names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		src := searchSource
		if src == "" {
			if len(cfg.Catalog.ItemSources) == 0 {
				return eris.New("search: no catalog item sources configured")
			}
			src = cfg.Catalog.ItemSources[len(cfg.Catalog.ItemSources)-1]
		}

		client := catalog.NewClient(cfg.Catalog, catalog.WithProgress(func(_, _ int) {
			fmt.Fprint(os.Stderr, ".")
		}))

		fmt.Fprint(os.Stderr, "Fetching")
		records, err := catalog.FetchAll[catalog.ItemRecord](ctx, client, src)
		fmt.Fprintf(os.Stderr, " (%d)\n", len(records))
		if err != nil {
			return err
		}

		terms := make([]string, len(args))
		for i, a := range args {
			terms[i] = strings.ToLower(a)
		}

		for _, rec := range records {
			lower := strings.ToLower(rec.Name)
			for _, term := range terms {
				if strings.Contains(lower, term) {
					fmt.Printf("%q\n", rec.Name)
					break
				}
			}
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchSource, "source", "", "catalog source URL (default: last configured item source)")
	rootCmd.AddCommand(searchCmd)
}
