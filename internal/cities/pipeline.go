package cities

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/cities-cli/internal/fetcher"
)

// RunResult holds the outcome of a full pipeline run.
type RunResult struct {
	RunID    string
	Build    BuildResult
	Duration time.Duration
}

// Pipeline runs the download and build stages in order.
type Pipeline struct {
	Downloader *Downloader
	Builder    *Builder
}

// NewPipeline wires both stages over the same layout.
func NewPipeline(f fetcher.Fetcher, layout Layout) *Pipeline {
	return &Pipeline{
		Downloader: NewDownloader(f, layout),
		Builder:    NewBuilder(layout),
	}
}

// Run downloads and extracts the archive, then builds the artifacts. The
// build stage is skipped if the download fails.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	runID := uuid.New().String()
	log := zap.L().With(
		zap.String("component", "cities.pipeline"),
		zap.String("run_id", runID),
	)

	log.Info("pipeline started")

	if err := p.Downloader.Download(ctx); err != nil {
		log.Error("download stage failed", zap.Error(err))
		return nil, eris.Wrap(err, "pipeline: download")
	}

	build, err := p.Builder.Build(ctx)
	if err != nil {
		log.Error("build stage failed", zap.Error(err))
		return nil, eris.Wrap(err, "pipeline: build")
	}

	res := &RunResult{
		RunID:    runID,
		Build:    build,
		Duration: time.Since(start),
	}
	log.Info("pipeline complete",
		zap.Int("records", build.Records),
		zap.Bool("empty", build.Empty),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}
