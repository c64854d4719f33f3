package cities

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cities-cli/internal/fetcher"
	"github.com/sells-group/cities-cli/internal/geonames"
)

// BuildResult summarizes one Build.
type BuildResult struct {
	// Empty is set when the source was missing or had no content and
	// nothing was written.
	Empty   bool
	Records int
	Invalid int // rows whose coordinates did not parse
}

// Builder turns the extracted dump into the two JSON artifacts.
type Builder struct {
	layout Layout
}

// NewBuilder creates a Builder over layout.
func NewBuilder(layout Layout) *Builder {
	return &Builder{layout: layout}
}

// Build reads the whole source file, maps every row, and overwrites the
// record and city artifacts. A missing or empty source is a no-op.
func (b *Builder) Build(ctx context.Context) (BuildResult, error) {
	log := zap.L().With(
		zap.String("component", "cities.build"),
		zap.String("source", b.layout.SourceFile()),
	)

	data, err := os.ReadFile(b.layout.SourceFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return BuildResult{}, eris.Wrap(err, "cities: read source")
	}
	if len(data) == 0 {
		log.Warn("source missing or empty, nothing to build")
		return BuildResult{Empty: true}, nil
	}

	if err := ctx.Err(); err != nil {
		return BuildResult{}, eris.Wrap(err, "cities: build cancelled")
	}

	records := geonames.MapRows(fetcher.SplitTSV(string(data)))
	cities := geonames.Project(records)

	if err := writeJSON(b.layout.RecordsFile(), records); err != nil {
		return BuildResult{}, err
	}
	if err := writeJSON(b.layout.CitiesFile(), cities); err != nil {
		return BuildResult{}, err
	}

	res := BuildResult{Records: len(records)}
	for _, r := range records {
		if !r.Latitude.IsValid() || !r.Longitude.IsValid() {
			res.Invalid++
		}
	}

	log.Info("city data built",
		zap.Int("records", res.Records),
		zap.String("records_file", b.layout.RecordsFile()),
		zap.String("cities_file", b.layout.CitiesFile()),
	)
	return res, nil
}
