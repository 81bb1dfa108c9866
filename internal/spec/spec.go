package spec

import "uciconv/internal/convert"

// Error policies for malformed records.
const (
	OnErrorAbort = "abort" // stop, discard partial output
	OnErrorKeep  = "keep"  // stop, keep partial output
	OnErrorSkip  = "skip"  // log, count, continue
)

type sinkConfigs struct {
	Kafka  string `yaml:"kafka"` // path to the kafka sink YAML
	Stdout struct {
		PrintCounter bool `yaml:"print_counter"`
	} `yaml:"stdout"`
}

type metricsSection struct {
	Addr     string `yaml:"addr"`     // serve /metrics while running
	Textfile string `yaml:"textfile"` // write metrics here when done
}

type Job struct {
	SchemaVersion string `yaml:"schema_version"`

	Input  string `yaml:"input"`
	Output string `yaml:"output"` // empty → derived from Input

	Layout  convert.Layout `yaml:"layout"`
	OnError string         `yaml:"on_error"`

	MaxLineBytes int `yaml:"max_line_bytes"`

	Sinks       []string       `yaml:"sinks"`
	SinkConfigs sinkConfigs    `yaml:"sink_configs"`
	Metrics     metricsSection `yaml:"metrics"`
}

// HasSink reports whether name is listed in Sinks.
func (j Job) HasSink(name string) bool {
	for _, s := range j.Sinks {
		if s == name {
			return true
		}
	}
	return false
}
