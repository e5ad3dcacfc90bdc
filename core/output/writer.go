// Package output handles writing normalized text to disk.
// Files are replaced atomically: content goes to a temporary file next to the
// destination which is renamed over it once fully written.
package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/gaurav-prasanna/unorm/core"
)

const (
	filePerm = 0644
	maxLinks = 40
)

// Writer writes output files through an afero filesystem.
type Writer struct {
	fs afero.Fs
}

// New creates a Writer backed by fs.
func New(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

// Write stores text at path, creating or replacing the file.
// Symlinks are followed so the link target receives the content, and an
// existing file keeps its permissions. The parent directory must exist.
// A failed write never leaves a partial destination file behind.
func (w *Writer) Write(path string, text string) error {
	target, err := w.resolve(path)
	if err != nil {
		return core.Wrap(core.IOError, "resolve output", path, err)
	}

	dir := filepath.Dir(target)
	if err := w.checkDir(dir); err != nil {
		return err
	}

	perm, err := w.perm(target)
	if err != nil {
		return core.Wrap(core.IOError, "stat output", target, err)
	}

	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return core.Wrap(core.IOError, "create temporary file", dir, err)
	}
	tmpName := tmp.Name()

	if err := writeAndClose(tmp, text); err != nil {
		_ = w.fs.Remove(tmpName)
		return core.Wrap(core.IOError, "write output", path, err)
	}
	if err := w.fs.Chmod(tmpName, perm); err != nil {
		_ = w.fs.Remove(tmpName)
		return core.Wrap(core.IOError, "write output", path, err)
	}
	if err := w.fs.Rename(tmpName, target); err != nil {
		_ = w.fs.Remove(tmpName)
		return core.Wrap(core.IOError, "replace output", path, err)
	}
	return nil
}

// resolve follows symlinks at path until it reaches a non-link or a path
// that does not exist yet. Filesystems without symlink support return path
// unchanged.
func (w *Writer) resolve(path string) (string, error) {
	lstater, ok := w.fs.(afero.Lstater)
	if !ok {
		return path, nil
	}
	reader, ok := w.fs.(afero.LinkReader)
	if !ok {
		return path, nil
	}

	for i := 0; i < maxLinks; i++ {
		info, lstatCalled, err := lstater.LstatIfPossible(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return path, nil
			}
			return "", err
		}
		if !lstatCalled || info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}
		link, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		path = link
	}
	return "", fmt.Errorf("too many levels of symbolic links")
}

// checkDir requires dir to be an existing directory.
func (w *Writer) checkDir(dir string) error {
	info, err := w.fs.Stat(dir)
	if err != nil {
		return core.Wrap(core.IOError, "open output directory", dir, err)
	}
	if !info.IsDir() {
		return &core.Error{Kind: core.IOError, Op: "open output directory", Path: dir, Message: "not a directory"}
	}
	return nil
}

// perm returns the permissions of the existing file at path, or filePerm
// when there is none.
func (w *Writer) perm(path string) (os.FileMode, error) {
	info, err := w.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return filePerm, nil
		}
		return 0, err
	}
	return info.Mode().Perm(), nil
}

func writeAndClose(f afero.File, text string) error {
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", f.Name(), err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("syncing %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", f.Name(), err)
	}
	return nil
}
