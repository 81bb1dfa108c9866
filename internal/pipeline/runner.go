package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"uciconv/internal/convert"
	"uciconv/internal/frame"
	"uciconv/internal/logging"
	"uciconv/internal/spec"
	"uciconv/internal/telemetry"
	"uciconv/sink"
	"uciconv/source"
)

// RecordError is a malformed input line. Line is 1-based.
type RecordError struct {
	Line int64
	Err  error
}

func (e *RecordError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *RecordError) Unwrap() error { return e.Err }

type Stats struct {
	Read      int64
	Converted int64
	Skipped   int64
	Bytes     int64
	Elapsed   time.Duration
}

type Runner struct {
	source  source.Adapter
	sinks   []sink.Adapter
	layout  convert.Layout
	onError string
	metrics *telemetry.Metrics
}

func NewRunner(layout convert.Layout, onError string) *Runner {
	if onError == "" {
		onError = spec.OnErrorAbort
	}
	return &Runner{layout: layout, onError: onError, metrics: telemetry.New()}
}

func (r *Runner) AddSink(s sink.Adapter)          { r.sinks = append(r.sinks, s) }
func (r *Runner) SetSource(s source.Adapter)      { r.source = s }
func (r *Runner) SetMetrics(m *telemetry.Metrics) { r.metrics = m }
func (r *Runner) Metrics() *telemetry.Metrics     { return r.metrics }

// Run converts every record from the source in order. Source and sinks are
// released on every path; on failure Aborter sinks discard their output
// unless the policy is "keep".
func (r *Runner) Run(ctx context.Context) (stats Stats, err error) {
	if r.source == nil {
		return stats, errors.New("runner: no source configured")
	}
	if err := r.layout.Validate(); err != nil {
		_ = r.release(err, false)
		return stats, err
	}

	start := time.Now()
	defer func() {
		stats.Elapsed = time.Since(start)
		r.metrics.RunDuration.Set(stats.Elapsed.Seconds())
		if rerr := r.release(err, r.onError == spec.OnErrorKeep); err == nil {
			err = rerr
		}
	}()

	err = r.source.Run(ctx, func(rec frame.Record) error {
		return r.handle(rec, &stats)
	})
	return stats, err
}

func (r *Runner) handle(rec frame.Record, stats *Stats) error {
	stats.Read++
	r.metrics.RecordsRead.Inc()

	out, err := convert.TransformLine(rec.Text, r.layout)
	if err != nil {
		r.metrics.RecordErrors.WithLabelValues(convert.ErrorKind(err)).Inc()
		if r.onError == spec.OnErrorSkip {
			stats.Skipped++
			r.metrics.RecordsSkipped.Inc()
			logging.L().Warn("skipping malformed record", "line", rec.Line, "err", err)
			return nil
		}
		return &RecordError{Line: rec.Line, Err: err}
	}

	f := frame.Frame{Line: rec.Line, Value: []byte(out)}
	for _, s := range r.sinks {
		if err := s.Push(f); err != nil {
			return err
		}
	}
	stats.Converted++
	stats.Bytes += int64(len(out))
	r.metrics.RecordsConverted.Inc()
	r.metrics.BytesWritten.Add(float64(len(out)))
	return nil
}

// release closes the source and finishes every sink. With a nil cause the
// sinks commit, otherwise they abort.
func (r *Runner) release(cause error, keep bool) error {
	var errs []error
	if err := r.source.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close source: %w", err))
	}
	for _, s := range r.sinks {
		var err error
		if a, ok := s.(sink.Aborter); ok && cause != nil {
			err = a.Abort(keep)
		} else {
			err = s.Close()
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	if cause != nil && keep {
		logging.L().Warn("run failed; partial output kept", "err", cause)
	}
	return errors.Join(errs...)
}

// Close releases the source and aborts the sinks without running.
func (r *Runner) Close() error {
	if r.source == nil {
		return nil
	}
	return r.release(errors.New("runner closed"), false)
}
