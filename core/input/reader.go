// Package input implements the Reader interface.
// It validates that the input path is an existing regular file, reads it
// whole, and rejects content that is not strict UTF-8.
package input

import (
	"errors"
	"fmt"
	"io/fs"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/gaurav-prasanna/unorm/core"
)

// ErrInvalidUTF8 is wrapped by the DecodeError returned for malformed input.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// FileReader reads text files from an afero filesystem.
type FileReader struct {
	fs afero.Fs
}

// New creates a FileReader backed by fs.
func New(fs afero.Fs) *FileReader {
	return &FileReader{fs: fs}
}

// Read returns the content of path as a UTF-8 string.
func (r *FileReader) Read(path string) (string, error) {
	if err := r.check(path); err != nil {
		return "", err
	}

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return "", core.Wrap(core.IOError, "read input", path, err)
	}

	if err := validateUTF8(data); err != nil {
		return "", core.Wrap(core.DecodeError, "decode input", path, err)
	}
	return string(data), nil
}

// check classifies the input path before any content is read.
func (r *FileReader) check(path string) error {
	info, err := r.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &core.Error{Kind: core.NotFound, Op: "open input", Path: path, Message: "input file not found", Err: err}
		}
		return core.Wrap(core.IOError, "stat input", path, err)
	}
	if !info.Mode().IsRegular() {
		return &core.Error{
			Kind:    core.InvalidInput,
			Op:      "open input",
			Path:    path,
			Message: fmt.Sprintf("not a regular file (mode %s)", info.Mode().Type()),
		}
	}
	return nil
}

func validateUTF8(data []byte) error {
	if off := invalidOffset(data); off < len(data) {
		return fmt.Errorf("%w: bad sequence at byte offset %d", ErrInvalidUTF8, off)
	}
	return nil
}

// invalidOffset returns the position of the first byte that does not start a
// valid UTF-8 sequence, or len(data) if there is none.
func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}
