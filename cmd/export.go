package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tavernworks/shopkeep/internal/model"
	"github.com/tavernworks/shopkeep/internal/store"
)

var exportOutPath string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a db.json snapshot of the item store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		items, err := st.List(ctx)
		if err != nil {
			return err
		}

		db := struct {
			Items []model.Item `json:"items"`
		}{Items: items}

		data, err := json.MarshalIndent(db, "", "  ")
		if err != nil {
			return eris.Wrap(err, "export: marshal")
		}
		data = append(data, '\n')

		if err := os.WriteFile(exportOutPath, data, 0o644); err != nil {
			return eris.Wrapf(err, "export: write %s", exportOutPath)
		}

		zap.L().Info("export complete",
			zap.Int("items", len(items)),
			zap.String("path", exportOutPath),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutPath, "out", "db.json", "output path")
	rootCmd.AddCommand(exportCmd)
}
