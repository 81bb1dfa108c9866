package convert

import (
	"errors"
	"strings"
	"testing"
)

var mnistLike = Layout{FeaturesStart: 0, FeaturesDim: 3, LabelsStart: 3, LabelsDim: 1, NumLabels: 6}

func TestTransformLine_SingleLabel(t *testing.T) {
	got, err := TransformLine("1 2 3 0 5", mnistLike)
	if err != nil {
		t.Fatalf("TransformLine: %v", err)
	}
	want := "|labels 1 0 0 0 0 0\t|features 1 2 3\n"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestTransformLine_MultiLabel(t *testing.T) {
	l := mnistLike
	l.LabelsDim = 2
	got, err := TransformLine("1 2 3 0 2 5", l)
	if err != nil {
		t.Fatalf("TransformLine: %v", err)
	}
	want := "|labels 1 0 1 0 0 0\t|features 1 2 3\n"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestTransformLine_FeaturesVerbatim(t *testing.T) {
	l := Layout{FeaturesStart: 1, FeaturesDim: 4, LabelsStart: 0, LabelsDim: 1, NumLabels: 2}
	got, err := TransformLine("1\t0.50   -1e-3 007\t\tNaN trailing", l)
	if err != nil {
		t.Fatalf("TransformLine: %v", err)
	}
	want := "|labels 0 1\t|features 0.50 -1e-3 007 NaN\n"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestTransform_Errors(t *testing.T) {
	cases := []struct {
		name string
		line string
		want error
	}{
		{"short for labels", "1 2 3", ErrShortRecord},
		{"short for features", "1 2 0", ErrShortRecord},
		{"empty", "", ErrShortRecord},
		{"not an integer", "1 2 3 x", ErrLabelSyntax},
		{"float label", "1 2 3 1.0", ErrLabelSyntax},
		{"equal to num_labels", "1 2 3 6", ErrLabelRange},
		{"negative", "1 2 3 -1", ErrLabelRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := TransformLine(tc.line, mnistLike)
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDenseLabels(t *testing.T) {
	cases := []struct {
		tokens []string
		want   string
	}{
		{[]string{"0"}, "1 0 0 0"},
		{[]string{"3"}, "0 0 0 1"},
		{[]string{"1", "2"}, "0 1 1 0"},
		{[]string{"2", "2", "2"}, "0 0 1 0"},
		{nil, "0 0 0 0"},
	}
	for _, tc := range cases {
		got, err := DenseLabels(tc.tokens, 4)
		if err != nil {
			t.Fatalf("DenseLabels(%v): %v", tc.tokens, err)
		}
		if len(got) != 4 {
			t.Fatalf("DenseLabels(%v): length %d", tc.tokens, len(got))
		}
		if s := strings.Join(got, " "); s != tc.want {
			t.Fatalf("DenseLabels(%v): want %q, got %q", tc.tokens, tc.want, s)
		}
	}
}

func TestTransform_SectionSizes(t *testing.T) {
	l := Layout{FeaturesStart: 1, FeaturesDim: 784, LabelsStart: 0, LabelsDim: 1, NumLabels: 10}
	fields := make([]string, 785)
	fields[0] = "7"
	for i := 1; i < len(fields); i++ {
		fields[i] = "0"
	}
	got, err := Transform(fields, l)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	labels, features, ok := strings.Cut(strings.TrimSuffix(got, "\n"), "\t")
	if !ok {
		t.Fatalf("no tab separator in %q", got)
	}
	if n := len(strings.Fields(labels)) - 1; n != l.NumLabels {
		t.Fatalf("want %d labels, got %d", l.NumLabels, n)
	}
	if n := len(strings.Fields(features)) - 1; n != l.FeaturesDim {
		t.Fatalf("want %d features, got %d", l.FeaturesDim, n)
	}
}

func TestErrorKind(t *testing.T) {
	_, err := TransformLine("1 2 3 9", mnistLike)
	if k := ErrorKind(err); k != "label_range" {
		t.Fatalf("want label_range, got %s", k)
	}
	if k := ErrorKind(errors.New("boom")); k != "other" {
		t.Fatalf("want other, got %s", k)
	}
}
