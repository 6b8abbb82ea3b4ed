// Package scratch manages the uniquely named local temp copies made before
// every upload. The upload endpoint needs a filesystem path and mishandles
// multi-byte filenames, so sources are copied to an ASCII name first.
// Removal is best-effort: a leftover temp file only wastes disk, so failures
// are logged and never escalated.
package scratch

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Dir struct {
	base   string
	logger *slog.Logger
}

func New(base string, logger *slog.Logger) (*Dir, error) {
	if base == "" {
		base = filepath.Join(os.TempDir(), "documedix")
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dir{base: base, logger: logger}, nil
}

// CopyFile copies src into the scratch dir under a fresh ASCII name keeping
// the extension, and returns the copy's path.
func (d *Dir) CopyFile(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	dst := filepath.Join(d.base, "upload_"+uuid.NewString()+filepath.Ext(src))
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create scratch copy: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		d.Remove(dst)
		return "", fmt.Errorf("copy to scratch: %w", err)
	}
	if err := out.Close(); err != nil {
		d.Remove(dst)
		return "", fmt.Errorf("flush scratch copy: %w", err)
	}
	return dst, nil
}

// WriteText stores text content as a scratch file with the given extension.
func (d *Dir) WriteText(text, ext string) (string, error) {
	dst := filepath.Join(d.base, "user_input_"+uuid.NewString()+ext)
	if err := os.WriteFile(dst, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write scratch text: %w", err)
	}
	return dst, nil
}

// Remove deletes a scratch file, logging (not returning) failures.
func (d *Dir) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		d.logger.Warn("scratch_cleanup_failed", "path", path, "error", err)
	}
}
