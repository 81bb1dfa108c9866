package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"uciconv/internal/pipeline"
	"uciconv/internal/spec"
)

// Summary renders run statistics as a table.
func Summary(w io.Writer, job spec.Job, stats pipeline.Stats) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Conversion Summary")
	t.AppendRows([]table.Row{
		{"Input", job.Input},
		{"Output", job.Output},
		{"Layout", fmt.Sprintf("features %d+%d, labels %d+%d of %d",
			job.Layout.FeaturesStart, job.Layout.FeaturesDim,
			job.Layout.LabelsStart, job.Layout.LabelsDim, job.Layout.NumLabels)},
		{"Lines read", stats.Read},
		{"Records converted", stats.Converted},
		{"Records skipped", stats.Skipped},
		{"Bytes written", stats.Bytes},
		{"Elapsed", stats.Elapsed.Round(time.Millisecond).String()},
	})
	t.Render()
}
