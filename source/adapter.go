package source

import (
	"context"

	"uciconv/internal/frame"
)

type EmitFunc func(frame.Record) error

type Adapter interface {
	Configure(any) error
	Run(context.Context, EmitFunc) error
	Close() error
}
