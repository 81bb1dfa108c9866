package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uciconv/internal/config"
	"uciconv/internal/engine"
	"uciconv/internal/report"
	"uciconv/internal/spec"
)

type options struct {
	job spec.Job

	jobFile string
	summary bool
}

const example = `  uciconv -i Examples/Image/MNIST/Data/Train-28x28.txt \
    --features_start 1 --features_dim 784 --labels_start 0 --labels_dim 1 \
    --num_labels 10 -o Examples/Image/MNIST/Data/Train-28x28_cntk_text.txt`

func newRootCmd() *cobra.Command {
	var o options

	cmd := &cobra.Command{
		Use:   "uciconv",
		Short: "UCI to CNTK text format converter",
		Long: `uciconv converts whitespace-separated UCI records into CNTK text format.
Every output line carries a dense |labels vector and the verbatim |features
slice of the matching input line.

Short names of the older converter script map to these flags:
  -in  --input_file      -fs  --features_start   -fd  --features_dim
  -ls  --labels_start    -ld  --labels_dim       -out --output_file`,
		Example:       example,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := o.resolve(cmd)
			if err != nil {
				return fmt.Errorf("args: %w", err)
			}
			cmd.SilenceUsage = true
			return run(cmd, job, o.summary)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("args: %w", err)
	})

	f := cmd.Flags()
	f.StringVarP(&o.job.Input, "input_file", "i", "", "input file path (required)")
	f.IntVar(&o.job.Layout.FeaturesStart, "features_start", 0, "features start offset (required)")
	f.IntVar(&o.job.Layout.FeaturesDim, "features_dim", 0, "features input size/dimension (required)")
	f.IntVar(&o.job.Layout.LabelsStart, "labels_start", 0, "labels start offset (required)")
	f.IntVar(&o.job.Layout.NumLabels, "num_labels", 0, "number of possible labels, the labelDim of the reader config (required)")
	f.StringVarP(&o.job.Output, "output_file", "o", "", "output file path (default: input path with _cntk_text before the extension)")
	f.IntVar(&o.job.Layout.LabelsDim, "labels_dim", 1, "labels input dimension")
	f.StringVar(&o.job.OnError, "on_error", spec.OnErrorAbort, "malformed record policy: abort|keep|skip")
	f.StringSliceVar(&o.job.Sinks, "sink", []string{"file"}, "sinks to write to: file, stdout, kafka (repeatable)")
	f.StringVar(&o.job.SinkConfigs.Kafka, "kafka_config", "", "kafka sink YAML config")
	f.IntVar(&o.job.MaxLineBytes, "max_line_bytes", 0, "longest accepted input line in bytes (default 16 MiB)")
	f.StringVar(&o.job.Metrics.Addr, "metrics_addr", "", "serve prometheus /metrics on this address while running")
	f.StringVar(&o.job.Metrics.Textfile, "metrics_textfile", "", "write prometheus metrics to this file when done")
	f.StringVar(&o.jobFile, "job", "", "YAML job file; flags set explicitly override it")
	f.BoolVar(&o.summary, "summary", true, "print a summary table when done")

	return cmd
}

var requiredFlags = []string{"input_file", "features_start", "features_dim", "labels_start", "num_labels"}

// resolve merges the job file, if any, with the flags the user set.
func (o *options) resolve(cmd *cobra.Command) (spec.Job, error) {
	f := cmd.Flags()
	if o.jobFile == "" {
		for _, name := range requiredFlags {
			if !f.Changed(name) {
				return spec.Job{}, fmt.Errorf("required flag --%s not set", name)
			}
		}
		return o.job, nil
	}

	job, err := config.LoadJobSpec(o.jobFile)
	if err != nil {
		return job, err
	}
	overrides := map[string]func(){
		"input_file":       func() { job.Input = o.job.Input },
		"output_file":      func() { job.Output = o.job.Output },
		"features_start":   func() { job.Layout.FeaturesStart = o.job.Layout.FeaturesStart },
		"features_dim":     func() { job.Layout.FeaturesDim = o.job.Layout.FeaturesDim },
		"labels_start":     func() { job.Layout.LabelsStart = o.job.Layout.LabelsStart },
		"labels_dim":       func() { job.Layout.LabelsDim = o.job.Layout.LabelsDim },
		"num_labels":       func() { job.Layout.NumLabels = o.job.Layout.NumLabels },
		"on_error":         func() { job.OnError = o.job.OnError },
		"sink":             func() { job.Sinks = o.job.Sinks },
		"kafka_config":     func() { job.SinkConfigs.Kafka = o.job.SinkConfigs.Kafka },
		"max_line_bytes":   func() { job.MaxLineBytes = o.job.MaxLineBytes },
		"metrics_addr":     func() { job.Metrics.Addr = o.job.Metrics.Addr },
		"metrics_textfile": func() { job.Metrics.Textfile = o.job.Metrics.Textfile },
	}
	for name, apply := range overrides {
		if f.Changed(name) {
			apply()
		}
	}
	return job, nil
}

func run(cmd *cobra.Command, job spec.Job, summary bool) error {
	e, err := engine.Bootstrap(cmd.Context(), engine.Config{Job: job})
	if err != nil {
		return err
	}
	job = e.Job()

	// keep stdout clean when converted lines go there
	out := cmd.OutOrStdout()
	if job.HasSink("stdout") {
		out = cmd.ErrOrStderr()
	}
	fmt.Fprintf(out, "Converting from UCI format '%s'\nto CNTK text format '%s'\n", job.Input, job.Output)

	stats, err := e.Run(cmd.Context())
	if err != nil {
		return err
	}
	if summary {
		report.Summary(out, job, stats)
	}
	return nil
}
