package convert

import (
	"errors"
	"fmt"
)

// Layout describes where labels and features sit inside a UCI record.
// It is fixed for a whole run.
type Layout struct {
	FeaturesStart int `yaml:"features_start"`
	FeaturesDim   int `yaml:"features_dim"`
	LabelsStart   int `yaml:"labels_start"`
	LabelsDim     int `yaml:"labels_dim"`
	NumLabels     int `yaml:"num_labels"`
}

const DefaultLabelsDim = 1

var ErrInvalidLayout = errors.New("invalid layout")

func (l Layout) Validate() error {
	switch {
	case l.FeaturesStart < 0:
		return fmt.Errorf("%w: features_start must be >= 0, got %d", ErrInvalidLayout, l.FeaturesStart)
	case l.FeaturesDim <= 0:
		return fmt.Errorf("%w: features_dim must be > 0, got %d", ErrInvalidLayout, l.FeaturesDim)
	case l.LabelsStart < 0:
		return fmt.Errorf("%w: labels_start must be >= 0, got %d", ErrInvalidLayout, l.LabelsStart)
	case l.LabelsDim <= 0:
		return fmt.Errorf("%w: labels_dim must be > 0, got %d", ErrInvalidLayout, l.LabelsDim)
	case l.NumLabels <= 0:
		return fmt.Errorf("%w: num_labels must be > 0, got %d", ErrInvalidLayout, l.NumLabels)
	}
	return nil
}

// MinFields is the number of tokens a record needs for both slices.
func (l Layout) MinFields() int {
	return max(l.LabelsStart+l.LabelsDim, l.FeaturesStart+l.FeaturesDim)
}
