package main

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cities-cli/internal/cities"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the JSON artifacts from the extracted dump",
	Long:  "Parses ./data/cities/cities500.txt and writes ./data/cities-data.json and ./data/cities.json.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("build"); err != nil {
			return err
		}

		res, err := cities.NewBuilder(layout()).Build(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "build")
		}

		printBuild(cmd.OutOrStdout(), res)
		return nil
	},
}

func printBuild(w io.Writer, res cities.BuildResult) {
	if res.Empty {
		printer.Fprintf(w, "No source data found; nothing written\n")
		return
	}
	printer.Fprintf(w, "Wrote %d records (%d with invalid coordinates)\n", res.Records, res.Invalid)
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
