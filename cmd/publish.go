package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/cities-cli/internal/storage"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Upload the JSON artifacts to object storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("publish"); err != nil {
			return err
		}
		ctx := cmd.Context()

		p, err := storage.NewPublisher(cfg.Storage)
		if err != nil {
			return err
		}

		if err := p.EnsureBucket(ctx); err != nil {
			return err
		}

		l := layout()
		uploads, err := p.Publish(ctx, l.RecordsFile(), l.CitiesFile())
		if err != nil {
			return eris.Wrap(err, "publish")
		}

		for _, u := range uploads {
			printer.Fprintf(cmd.OutOrStdout(), "s3://%s/%s (%d bytes)\n", cfg.Storage.Bucket, u.Key, u.Size)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
}
