package main

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cities-cli/internal/cities"
	"github.com/sells-group/cities-cli/internal/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export built records to a local SQLite database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportOut != "" {
			cfg.SQLite.Path = exportOut
		}
		if err := cfg.Validate("export"); err != nil {
			return err
		}
		ctx := cmd.Context()

		records, err := cities.ReadRecords(layout())
		if err != nil {
			return err
		}

		st, err := store.NewSQLite(cfg.SQLite.Path)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		n, err := st.ReplaceCities(ctx, uuid.New().String(), records)
		if err != nil {
			return eris.Wrap(err, "export")
		}

		total, err := st.CountCities(ctx)
		if err != nil {
			return err
		}
		runID, _, _, err := st.LastExport(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printer.Fprintf(out, "Exported %d rows to %s\n", n, cfg.SQLite.Path)
		printer.Fprintf(out, "Table holds %d rows, last export run %s\n", total, runID)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "SQLite database path (default from config)")
	rootCmd.AddCommand(exportCmd)
}
