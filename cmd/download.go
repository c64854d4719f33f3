package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cities-cli/internal/cities"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download and extract the cities500 archive",
	Long:  "Fetches " + cities.SourceURL + " and extracts it into ./data/cities.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("download"); err != nil {
			return err
		}

		d := cities.NewDownloader(newFetcher(), layout())
		if err := d.Download(cmd.Context()); err != nil {
			return eris.Wrap(err, "download")
		}

		printer.Fprintf(cmd.OutOrStdout(), "Extracted archive to %s\n", layout().ExtractDir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}
