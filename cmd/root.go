package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/time/rate"

	"github.com/sells-group/cities-cli/internal/cities"
	"github.com/sells-group/cities-cli/internal/config"
	"github.com/sells-group/cities-cli/internal/fetcher"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "cities-cli",
	Short: "GeoNames cities gazetteer builder",
	Long:  "Downloads the GeoNames cities500 dump, converts it to JSON gazetteer artifacts, and loads or publishes them.",
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

// layout is the fixed on-disk contract shared by every command.
func layout() cities.Layout {
	return cities.DefaultLayout()
}

// newFetcher builds the HTTP fetcher from config.
var newFetcher = func() fetcher.Fetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    cfg.HTTP.UserAgent,
		RateLimit:    rate.Limit(cfg.HTTP.RateLimit),
		RateLimiters: fetcher.DefaultRateLimiters(),
	})
}

// printer formats counts for command summaries.
var printer = message.NewPrinter(language.English)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
