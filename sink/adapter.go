package sink

import (
	"fmt"

	"uciconv/internal/frame"
)

// Adapter is the common behaviour every sink exposes.
type Adapter interface {
	Configure(any) error    // driver-specific config ⇒ struct
	Push(frame.Frame) error // consume one encoded line
	Close() error           // commit output; idempotent
}

// Aborter is *optional*; sinks that can discard or keep partial output
// after a failed run implement it. The runner calls Abort instead of Close.
type Aborter interface {
	Abort(keep bool) error
}

/*──────── registry ───────*/

type factory = func() Adapter

var reg = map[string]factory{}

func Register(name string, f factory) { reg[name] = f }

func NewAdapter(name string) (Adapter, error) {
	if f, ok := reg[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("unknown sink %q", name)
}
