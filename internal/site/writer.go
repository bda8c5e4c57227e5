package site

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Writer persists rendered documents below an output root.
type Writer struct {
	root    string
	written map[string]bool
}

// NewWriter returns a Writer rooted at root.
func NewWriter(root string) *Writer {
	return &Writer{root: root, written: make(map[string]bool)}
}

// Prepare creates the output root and its posts directory.
func (w *Writer) Prepare() error {
	dir := filepath.Join(w.root, postsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", dir, err)
	}
	return nil
}

// Write creates or overwrites the file at rel, a slash separated path below
// the root. Parent directories are not created.
func (w *Writer) Write(rel, content string) error {
	dst := filepath.Join(w.root, filepath.FromSlash(rel))
	if err := os.WriteFile(dst, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write '%s': %w", dst, err)
	}
	w.written[rel] = true
	return nil
}

// PruneStale removes *.html files in the output root and its posts
// directory that this run neither wrote nor copied from assets: pages of
// posts or static pages deleted since an earlier run.
func (w *Writer) PruneStale() error {
	for _, sub := range []string{"", postsDir} {
		if err := w.pruneDir(sub); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) pruneDir(sub string) error {
	dir := filepath.Join(w.root, filepath.FromSlash(sub))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read output directory '%s': %w", dir, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		if w.written[path.Join(sub, e.Name())] {
			continue
		}
		stale := filepath.Join(dir, e.Name())
		if err := os.Remove(stale); err != nil {
			return fmt.Errorf("failed to remove stale page '%s': %w", stale, err)
		}
		slog.Info("Removed stale page", "path", stale)
	}
	return nil
}

// CopyAssets copies the tree under src into the output root. A missing src
// is not an error.
func (w *Writer) CopyAssets(src string) error {
	if src == "" {
		return nil
	}
	if _, err := os.Stat(src); os.IsNotExist(err) {
		slog.Debug("Assets directory not found, skipping copy", "path", src)
		return nil
	}

	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for '%s': %w", path, err)
		}
		dst := filepath.Join(w.root, rel)

		if d.IsDir() {
			if err := os.MkdirAll(dst, 0o755); err != nil {
				return fmt.Errorf("failed to create directory '%s': %w", dst, err)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := copyFile(path, dst); err != nil {
			return err
		}
		w.written[filepath.ToSlash(rel)] = true
		return nil
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open asset '%s': %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy '%s' to '%s': %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write '%s': %w", dst, err)
	}
	return nil
}
