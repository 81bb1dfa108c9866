// uciconv/sink/stdout/driver.go
package stdout

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"uciconv/internal/frame"
	"uciconv/sink"
)

/* ────────── public config ────────── */
type Config struct {
	PrintCounter bool      `yaml:"print_counter"` // prepend line#
	Writer       io.Writer `yaml:"-"`             // nil → os.Stdout
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config
	w   *bufio.Writer
}

/* ────────── sink.Adapter ────────── */
func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("stdout-sink: expected Config, got %T", raw)
	}
	if c.Writer == nil {
		c.Writer = os.Stdout
	}
	d.cfg = c
	d.w = bufio.NewWriter(c.Writer)
	return nil
}

func (d *driver) Push(f frame.Frame) error {
	if d.cfg.PrintCounter {
		if _, err := fmt.Fprintf(d.w, "[%06d] ", f.Line); err != nil {
			return err
		}
	}
	_, err := d.w.Write(f.Value)
	return err
}

func (d *driver) Close() error {
	if d.w == nil {
		return nil
	}
	return d.w.Flush()
}

/* ────────── auto-register ────────── */
func init() {
	sink.Register("stdout", func() sink.Adapter { return &driver{} })
}
