// Package telemetry holds the converter's prometheus metrics. They live on
// their own registry so a run can be exported to a textfile without the
// process-wide default collectors.
package telemetry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"uciconv/internal/logging"
)

const namespace = "uciconv"

type Metrics struct {
	Registry *prometheus.Registry

	RecordsRead      prometheus.Counter
	RecordsConverted prometheus.Counter
	RecordsSkipped   prometheus.Counter
	RecordErrors     *prometheus.CounterVec
	BytesWritten     prometheus.Counter
	RunDuration      prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "records_read_total",
			Help: "Input lines read.",
		}),
		RecordsConverted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "records_converted_total",
			Help: "Records written in CNTK text format.",
		}),
		RecordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "records_skipped_total",
			Help: "Malformed records skipped under the skip policy.",
		}),
		RecordErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "record_errors_total",
			Help: "Malformed records by kind.",
		}, []string{"kind"}),
		BytesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "bytes_written_total",
			Help: "Encoded bytes handed to sinks.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "run_duration_seconds",
			Help: "Wall time of the last conversion run.",
		}),
	}
	m.Registry.MustRegister(
		m.RecordsRead, m.RecordsConverted, m.RecordsSkipped,
		m.RecordErrors, m.BytesWritten, m.RunDuration,
		collectors.NewGoCollector(),
	)
	return m
}

// Expose serves /metrics on addr until ctx is done.
func (m *Metrics) Expose(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.L().Warn("metrics endpoint stopped", "addr", addr, "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
