package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cities-cli/internal/cities"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Download the archive and build the artifacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("run"); err != nil {
			return err
		}

		res, err := cities.NewPipeline(newFetcher(), layout()).Run(cmd.Context())
		if err != nil {
			return eris.Wrap(err, "run")
		}

		printBuild(cmd.OutOrStdout(), res.Build)
		printer.Fprintf(cmd.OutOrStdout(), "Run %s finished in %v\n", res.RunID, res.Duration.Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
