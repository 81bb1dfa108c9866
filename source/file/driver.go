package file

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"uciconv/internal/frame"
	"uciconv/internal/logging"
	"uciconv/source"
)

const DefaultMaxLineBytes = 16 << 20

/* ────────── public config ────────── */
type Config struct {
	Path         string `yaml:"path"`
	MaxLineBytes int    `yaml:"max_line_bytes"` // 0 = DefaultMaxLineBytes
}

/* ────────── driver ────────── */
type driver struct {
	cfg Config
	f   *os.File
}

func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("file-source: expected Config, got %T", raw)
	}
	if c.Path == "" {
		return fmt.Errorf("file-source: empty path")
	}
	if c.MaxLineBytes <= 0 {
		c.MaxLineBytes = DefaultMaxLineBytes
	}
	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	d.cfg, d.f = c, f
	return nil
}

func (d *driver) Run(ctx context.Context, emit source.EmitFunc) error {
	if d.f == nil {
		return fmt.Errorf("file-source: not configured")
	}
	sc := bufio.NewScanner(d.f)
	sc.Buffer(make([]byte, 0, 64<<10), d.cfg.MaxLineBytes)

	var line int64
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++
		if err := emit(frame.Record{Line: line, Text: sc.Text()}); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input line %d: %w", line+1, err)
	}
	logging.L().Debug("file-source: reached end of input", "path", d.cfg.Path, "lines", line)
	return nil
}

// Close is idempotent.
func (d *driver) Close() error {
	if d.f == nil {
		return nil
	}
	err := d.f.Close()
	d.f = nil
	return err
}

/* ────────── auto-register ────────── */
func init() {
	source.Register("file", func() source.Adapter { return &driver{} })
}
