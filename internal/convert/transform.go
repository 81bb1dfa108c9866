// Package convert turns UCI records into CNTK text format lines.
package convert

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	labelsTag   = "|labels"
	featuresTag = "|features"
)

var (
	ErrShortRecord = errors.New("record too short")
	ErrLabelSyntax = errors.New("label is not an integer")
	ErrLabelRange  = errors.New("label out of range")
)

// DenseLabels builds the numLabels-long indicator vector with "1" at every
// index named in tokens. Repeated indices are fine.
func DenseLabels(tokens []string, numLabels int) ([]string, error) {
	dense := make([]string, numLabels)
	for i := range dense {
		dense[i] = "0"
	}
	for _, tok := range tokens {
		idx, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrLabelSyntax, tok)
		}
		if idx < 0 || idx >= numLabels {
			return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrLabelRange, idx, numLabels)
		}
		dense[idx] = "1"
	}
	return dense, nil
}

// Transform encodes one tokenized record. The result ends with '\n'.
func Transform(fields []string, l Layout) (string, error) {
	if need := l.MinFields(); len(fields) < need {
		return "", fmt.Errorf("%w: have %d fields, need %d", ErrShortRecord, len(fields), need)
	}

	dense, err := DenseLabels(fields[l.LabelsStart:l.LabelsStart+l.LabelsDim], l.NumLabels)
	if err != nil {
		return "", err
	}
	features := fields[l.FeaturesStart : l.FeaturesStart+l.FeaturesDim]

	var b strings.Builder
	b.Grow(len(labelsTag) + 2*l.NumLabels + len(featuresTag) + 8*len(features) + 3)
	b.WriteString(labelsTag)
	b.WriteByte(' ')
	b.WriteString(strings.Join(dense, " "))
	b.WriteByte('\t')
	b.WriteString(featuresTag)
	b.WriteByte(' ')
	b.WriteString(strings.Join(features, " "))
	b.WriteByte('\n')
	return b.String(), nil
}

// TransformLine splits line on runs of whitespace and encodes it.
func TransformLine(line string, l Layout) (string, error) {
	return Transform(strings.Fields(line), l)
}

// ErrorKind maps a transform error to a short, stable name.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrShortRecord):
		return "short_record"
	case errors.Is(err, ErrLabelSyntax):
		return "label_syntax"
	case errors.Is(err, ErrLabelRange):
		return "label_range"
	default:
		return "other"
	}
}
