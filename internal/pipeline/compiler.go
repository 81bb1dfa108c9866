package pipeline

import (
	"fmt"

	"uciconv/internal/config"
	"uciconv/internal/spec"
	"uciconv/sink"
	filesink "uciconv/sink/file"
	"uciconv/sink/stdout"
	"uciconv/source"
	filesource "uciconv/source/file"
)

// Compile builds a Runner from a normalized job. Anything acquired before
// a failure is released again.
func Compile(job spec.Job) (r *Runner, err error) {
	r = NewRunner(job.Layout, job.OnError)

	src, err := source.NewAdapter("file")
	if err != nil {
		return nil, err
	}
	if err = src.Configure(filesource.Config{Path: job.Input, MaxLineBytes: job.MaxLineBytes}); err != nil {
		return nil, err
	}
	r.SetSource(src)

	defer func() {
		if err != nil {
			_ = r.Close()
			r = nil
		}
	}()

	for _, name := range job.Sinks {
		var sDrv sink.Adapter
		sDrv, err = sink.NewAdapter(name)
		if err != nil {
			return r, err
		}

		switch name {
		case "file":
			err = sDrv.Configure(filesink.Config{Path: job.Output})
		case "stdout":
			err = sDrv.Configure(stdout.Config{PrintCounter: job.SinkConfigs.Stdout.PrintCounter})
		case "kafka":
			kc, kerr := config.LoadKafkaSinkConfig(job.SinkConfigs.Kafka)
			if kerr != nil {
				err = kerr
				break
			}
			err = sDrv.Configure(kc)
		default:
			err = fmt.Errorf("no config block for sink %q", name)
		}
		if err != nil {
			return r, fmt.Errorf("sink %s: %w", name, err)
		}
		r.AddSink(sDrv)
	}
	return r, nil
}
