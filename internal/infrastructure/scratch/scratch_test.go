package scratch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCopyFileUsesASCIIName(t *testing.T) {
	dir, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	src := filepath.Join(t.TempDir(), "제품설명서.pdf")
	if err := os.WriteFile(src, []byte("content"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	copied, err := dir.CopyFile(src)
	if err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	name := filepath.Base(copied)
	if !strings.HasPrefix(name, "upload_") || !strings.HasSuffix(name, ".pdf") {
		t.Fatalf("copy name = %q", name)
	}
	for _, r := range name {
		if r > 127 {
			t.Fatalf("copy name contains non-ASCII rune: %q", name)
		}
	}

	data, err := os.ReadFile(copied)
	if err != nil || string(data) != "content" {
		t.Fatalf("copy content = %q, err = %v", data, err)
	}
}

func TestWriteTextAndRemove(t *testing.T) {
	dir, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	path, err := dir.WriteText("사용자 입력", ".txt")
	if err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "사용자 입력" {
		t.Fatalf("content = %q, err = %v", data, err)
	}

	dir.Remove(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file still exists after Remove")
	}
	// Removing twice (or a bogus path) must not panic or escalate.
	dir.Remove(path)
	dir.Remove("")
}

func TestCopyFileMissingSource(t *testing.T) {
	dir, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := dir.CopyFile(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Fatalf("expected error for missing source")
	}
}
