// Package file writes converted lines to a file on disk. Output goes to a
// temporary file in the target directory and only replaces the target on
// Close, so a failed run never leaves a half-written file under the target
// name unless the caller asks for it with Abort(true).
package file

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"

	"uciconv/internal/frame"
	"uciconv/internal/logging"
	"uciconv/sink"
)

const bufSize = 4 << 20 // 4 MiB

/* ────────── public config ────────── */
type Config struct {
	Path string      `yaml:"path"`
	Mode os.FileMode `yaml:"mode"` // 0 = 0644, umask applies
}

/* ────────── driver ────────── */
type driver struct {
	cfg  Config
	tmp  *os.File
	bw   *bufio.Writer
	done bool
}

/* ────────── sink.Adapter ────────── */
func (d *driver) Configure(raw any) error {
	c, ok := raw.(Config)
	if !ok {
		return fmt.Errorf("file-sink: expected Config, got %T", raw)
	}
	if c.Path == "" {
		return fmt.Errorf("file-sink: empty path")
	}
	if c.Mode == 0 {
		c.Mode = 0o644
	}
	tmp, err := createPart(c.Path, c.Mode)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	d.cfg, d.tmp = c, tmp
	d.bw = bufio.NewWriterSize(tmp, bufSize)
	return nil
}

func (d *driver) Push(f frame.Frame) error {
	if d.done {
		return fmt.Errorf("file-sink: push after close")
	}
	if _, err := d.bw.Write(f.Value); err != nil {
		return fmt.Errorf("write line %d: %w", f.Line, err)
	}
	return nil
}

// Close flushes and moves the output into place.
func (d *driver) Close() error {
	if d.done || d.tmp == nil {
		return nil
	}
	return d.commit()
}

/* ────────── sink.Aborter ────────── */
func (d *driver) Abort(keep bool) error {
	if d.done || d.tmp == nil {
		return nil
	}
	if keep {
		logging.L().Warn("file-sink: keeping partial output", "path", d.cfg.Path)
		return d.commit()
	}
	d.done = true
	name := d.tmp.Name()
	_ = d.tmp.Close()
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("remove partial output: %w", err)
	}
	logging.L().Debug("file-sink: discarded partial output", "path", d.cfg.Path)
	return nil
}

/* ────────── internals ────────── */

func (d *driver) commit() error {
	d.done = true
	name := d.tmp.Name()
	err := d.bw.Flush()
	if err == nil {
		err = d.tmp.Sync()
	}
	if cerr := d.tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(name, d.cfg.Path)
	}
	if err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("finalize output %s: %w", d.cfg.Path, err)
	}
	return nil
}

// createPart opens a fresh hidden file next to path. Permissions go through
// the process umask, as with os.Create.
func createPart(path string, mode os.FileMode) (*os.File, error) {
	dir, base := filepath.Split(path)
	for range 100 {
		name := filepath.Join(dir, "."+base+"."+strconv.FormatUint(uint64(rand.Uint32()), 10)+".part")
		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, mode)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, fmt.Errorf("no free temporary name next to %s", path)
}

/* ────────── auto-register ────────── */
func init() {
	sink.Register("file", func() sink.Adapter { return &driver{} })
}
