package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"uciconv/internal/convert"
	"uciconv/internal/spec"
)

func writeJob(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "job.yml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write job: %v", err)
	}
	return p
}

func TestLoadJobSpec_ResolvesRelativePathsAndSchema(t *testing.T) {
	dir := t.TempDir()
	p := writeJob(t, dir, `schema_version: v1
input: data/Train-28x28.txt
layout:
  features_start: 1
  features_dim: 784
  labels_start: 0
  num_labels: 10
on_error: skip
sinks: [file, kafka]
sink_configs:
  kafka: kafka_sink.yml
`)
	job, err := LoadJobSpec(p)
	if err != nil {
		t.Fatalf("LoadJobSpec: %v", err)
	}
	if job.Input != filepath.Join(dir, "data", "Train-28x28.txt") {
		t.Fatalf("input not resolved: %q", job.Input)
	}
	if job.SinkConfigs.Kafka != filepath.Join(dir, "kafka_sink.yml") {
		t.Fatalf("kafka config not resolved: %q", job.SinkConfigs.Kafka)
	}
	if job.Output != "" {
		t.Fatalf("output must stay empty until Normalize, got %q", job.Output)
	}
	if job.Layout.FeaturesDim != 784 || job.Layout.NumLabels != 10 {
		t.Fatalf("layout not parsed: %+v", job.Layout)
	}
	if job.Layout.LabelsDim != convert.DefaultLabelsDim {
		t.Fatalf("absent labels_dim should default to 1, got %d", job.Layout.LabelsDim)
	}
	if !job.HasSink("kafka") || job.HasSink("stdout") {
		t.Fatalf("unexpected sinks %v", job.Sinks)
	}
}

func TestLoadJobSpec_ExplicitZeroLabelsDimRejected(t *testing.T) {
	p := writeJob(t, t.TempDir(), `input: in.txt
layout:
  features_dim: 3
  labels_start: 3
  labels_dim: 0
  num_labels: 6
`)
	job, err := LoadJobSpec(p)
	if err != nil {
		t.Fatalf("LoadJobSpec: %v", err)
	}
	if job.Layout.LabelsDim != 0 {
		t.Fatalf("explicit labels_dim overwritten: %d", job.Layout.LabelsDim)
	}
	if err := Normalize(&job); !errors.Is(err, convert.ErrInvalidLayout) {
		t.Fatalf("want ErrInvalidLayout, got %v", err)
	}
}

func TestLoadJobSpec_InvalidSchema(t *testing.T) {
	p := writeJob(t, t.TempDir(), "schema_version: v999\ninput: x.txt\n")
	if _, err := LoadJobSpec(p); err == nil {
		t.Fatal("expected error for invalid schema_version")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	job := spec.Job{
		Input:  "a/b/Train-28x28.txt",
		Layout: convert.Layout{FeaturesStart: 1, FeaturesDim: 784, LabelsDim: 1, NumLabels: 10},
	}
	if err := Normalize(&job); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if job.Output != "a/b/Train-28x28_cntk_text.txt" {
		t.Fatalf("unexpected output %q", job.Output)
	}
	if job.OnError != spec.OnErrorAbort {
		t.Fatalf("on_error default not applied: %q", job.OnError)
	}
	if len(job.Sinks) != 1 || job.Sinks[0] != "file" {
		t.Fatalf("sinks default not applied: %v", job.Sinks)
	}
}

func TestNormalize_Rejects(t *testing.T) {
	good := convert.Layout{FeaturesDim: 3, LabelsStart: 3, LabelsDim: 1, NumLabels: 6}
	cases := map[string]spec.Job{
		"no input":    {Layout: good},
		"bad layout":  {Input: "in.txt", Layout: convert.Layout{FeaturesDim: 3}},
		"zero labels": {Input: "in.txt", Layout: convert.Layout{FeaturesDim: 3, LabelsStart: 3, NumLabels: 6}},
		"bad policy":  {Input: "in.txt", Layout: good, OnError: "retry"},
		"overwrite":   {Input: "in.txt", Output: "./in.txt", Layout: good},
	}
	for name, job := range cases {
		t.Run(name, func(t *testing.T) {
			if err := Normalize(&job); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	job := spec.Job{Input: "in.txt", Layout: convert.Layout{FeaturesDim: 3, NumLabels: -1}}
	if err := Normalize(&job); !errors.Is(err, convert.ErrInvalidLayout) {
		t.Fatalf("want ErrInvalidLayout, got %v", err)
	}
}
