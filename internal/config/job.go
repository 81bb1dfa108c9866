package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"uciconv/internal/convert"
	"uciconv/internal/spec"
)

const SupportedSchema = "v1"

// LoadJobSpec parses a job YAML, validates schema_version and resolves the
// input, output and kafka config paths relative to the job file.
// labels_dim defaults to 1 only when the key is absent; other defaults are
// applied by Normalize.
func LoadJobSpec(path string) (spec.Job, error) {
	var job spec.Job
	job.Layout.LabelsDim = convert.DefaultLabelsDim
	raw, err := os.ReadFile(path)
	if err != nil {
		return job, err
	}
	if err := yaml.Unmarshal(raw, &job); err != nil {
		return job, fmt.Errorf("parse %s: %w", path, err)
	}
	if job.SchemaVersion == "" {
		job.SchemaVersion = SupportedSchema
	}
	if job.SchemaVersion != SupportedSchema {
		return job, fmt.Errorf("job schema_version %q not supported (want %q)", job.SchemaVersion, SupportedSchema)
	}
	base := filepath.Dir(path)
	job.Input = resolve(base, job.Input)
	job.Output = resolve(base, job.Output)
	job.SinkConfigs.Kafka = resolve(base, job.SinkConfigs.Kafka)
	return job, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Normalize fills defaults and checks that the job can run. The layout is
// taken as given: a zero labels_dim is rejected, not defaulted.
func Normalize(job *spec.Job) error {
	if job.SchemaVersion == "" {
		job.SchemaVersion = SupportedSchema
	}
	if job.Input == "" {
		return fmt.Errorf("no input file")
	}
	if job.Output == "" {
		job.Output = convert.DefaultOutputPath(job.Input)
	}
	if err := job.Layout.Validate(); err != nil {
		return err
	}
	switch job.OnError {
	case "":
		job.OnError = spec.OnErrorAbort
	case spec.OnErrorAbort, spec.OnErrorKeep, spec.OnErrorSkip:
	default:
		return fmt.Errorf("on_error %q not supported (want %s|%s|%s)", job.OnError, spec.OnErrorAbort, spec.OnErrorKeep, spec.OnErrorSkip)
	}
	if len(job.Sinks) == 0 {
		job.Sinks = []string{"file"}
	}
	if job.HasSink("file") && filepath.Clean(job.Output) == filepath.Clean(job.Input) {
		return fmt.Errorf("output %q would overwrite the input", job.Output)
	}
	return nil
}
