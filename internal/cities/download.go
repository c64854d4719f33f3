package cities

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cities-cli/internal/fetcher"
)

// Downloader fetches the cities archive and unpacks it into the layout's
// extraction directory.
type Downloader struct {
	fetcher fetcher.Fetcher
	layout  Layout
	url     string
}

// NewDownloader creates a Downloader for SourceURL.
func NewDownloader(f fetcher.Fetcher, layout Layout) *Downloader {
	return &Downloader{fetcher: f, layout: layout, url: SourceURL}
}

// Download streams the archive into the extractor. It is attempted once. A
// stream error writes nothing; an extraction error may leave partial files.
func (d *Downloader) Download(ctx context.Context) error {
	log := zap.L().With(
		zap.String("component", "cities.download"),
		zap.String("url", d.url),
		zap.String("dest", d.layout.ExtractDir()),
	)

	if err := os.MkdirAll(d.layout.ExtractDir(), 0o755); err != nil {
		return eris.Wrap(err, "cities: create extract dir")
	}

	log.Info("downloading cities archive")

	body, err := d.fetcher.Download(ctx, d.url)
	if err != nil {
		return eris.Wrap(err, "cities: download archive")
	}
	defer body.Close() //nolint:errcheck

	files, err := fetcher.ExtractZIPStream(body, d.layout.ExtractDir())
	if err != nil {
		return eris.Wrap(err, "cities: extract archive")
	}

	log.Info("cities archive extracted", zap.Strings("files", files))
	return nil
}
