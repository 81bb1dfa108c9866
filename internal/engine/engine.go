package engine

import (
	"context"
	"errors"
	"fmt"

	"uciconv/internal/logging"
	"uciconv/internal/pipeline"
	"uciconv/internal/spec"
	"uciconv/internal/telemetry"
)

type Engine struct {
	job     spec.Job
	runner  *pipeline.Runner
	metrics *telemetry.Metrics
}

// Job is the normalized job the engine runs.
func (e *Engine) Job() spec.Job { return e.job }

func (e *Engine) Run(ctx context.Context) (pipeline.Stats, error) {
	logging.L().Info("conversion started", "input", e.job.Input, "output", e.job.Output, "sinks", e.job.Sinks, "on_error", e.job.OnError)

	stats, err := e.runner.Run(ctx)

	if p := e.job.Metrics.Textfile; p != "" {
		if werr := e.metrics.WriteTextfile(p); werr != nil {
			logging.L().Warn("write metrics textfile", "path", p, "err", werr)
		}
	}

	if err != nil {
		var re *pipeline.RecordError
		if errors.As(err, &re) {
			return stats, fmt.Errorf("convert %w", err)
		}
		return stats, fmt.Errorf("run: %w", err)
	}
	logging.L().Info("conversion finished",
		"read", stats.Read, "converted", stats.Converted,
		"skipped", stats.Skipped,
		"elapsed", stats.Elapsed)
	return stats, nil
}
