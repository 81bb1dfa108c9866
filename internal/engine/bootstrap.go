package engine

import (
	"context"
	"fmt"

	"uciconv/internal/config"
	"uciconv/internal/pipeline"
	"uciconv/internal/spec"
	"uciconv/internal/telemetry"
)

type Config struct {
	Job spec.Job
}

func Bootstrap(ctx context.Context, cfg Config) (*Engine, error) {
	job := cfg.Job

	// 1. job defaults + validation, before any file is touched
	if err := config.Normalize(&job); err != nil {
		return nil, fmt.Errorf("args: %w", err)
	}

	// 2. pipeline runner
	runner, err := pipeline.Compile(job)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	// 3. metrics
	m := telemetry.New()
	runner.SetMetrics(m)
	if job.Metrics.Addr != "" {
		m.Expose(ctx, job.Metrics.Addr)
	}

	return &Engine{
		job:     job,
		runner:  runner,
		metrics: m,
	}, nil
}
