package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

func run(fs afero.Fs, args ...string) runResult {
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr, fs)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func withInput(t *testing.T, content string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in.txt", []byte(content), 0644))
	return fs
}

func TestRun(t *testing.T) {
	t.Run("Should normalize with NFC by default and exit 0", func(t *testing.T) {
		fs := withInput(t, "cafe\u0301")

		res := run(fs, "/in.txt", "/out.txt")

		require.Equal(t, ExitSuccess, res.code, res.stderr)
		data, err := afero.ReadFile(fs, "/out.txt")
		require.NoError(t, err)
		assert.Equal(t, "caf\u00e9", string(data))
		assert.Contains(t, res.stderr, "Successfully normalized file")
		assert.Contains(t, res.stderr, "input=/in.txt")
		assert.Contains(t, res.stderr, "output=/out.txt")
		assert.Contains(t, res.stderr, "form=NFC")
	})

	t.Run("Should apply the requested form", func(t *testing.T) {
		fs := withInput(t, "\ufb01 caf\u00e9")

		res := run(fs, "/in.txt", "/out.txt", "--form", "NFKD")

		require.Equal(t, ExitSuccess, res.code, res.stderr)
		data, err := afero.ReadFile(fs, "/out.txt")
		require.NoError(t, err)
		assert.Equal(t, "fi cafe\u0301", string(data))
	})

	t.Run("Should accept flags before the positional arguments", func(t *testing.T) {
		fs := withInput(t, "cafe\u0301")

		res := run(fs, "--form=NFD", "--log_level=DEBUG", "/in.txt", "/out.txt")

		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Contains(t, res.stderr, "Reading input")
	})

	t.Run("Should hide the success line below the requested level", func(t *testing.T) {
		fs := withInput(t, "x")

		res := run(fs, "/in.txt", "/out.txt", "--log_level", "ERROR")

		assert.Equal(t, ExitSuccess, res.code)
		assert.Empty(t, res.stderr)
	})

	t.Run("Should emit JSON log lines when asked", func(t *testing.T) {
		fs := withInput(t, "x")

		res := run(fs, "/in.txt", "/out.txt", "--log_json")

		assert.Equal(t, ExitSuccess, res.code)
		assert.Contains(t, res.stderr, `"msg":"Successfully normalized file"`)
	})

	t.Run("Should exit 1 with InvalidArgument for an unknown form", func(t *testing.T) {
		fs := withInput(t, "x")

		res := run(fs, "/in.txt", "/out.txt", "--form", "NFX")

		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, "InvalidArgument")
		exists, _ := afero.Exists(fs, "/out.txt")
		assert.False(t, exists)
	})

	t.Run("Should exit 1 with InvalidArgument for an unknown log level", func(t *testing.T) {
		res := run(withInput(t, "x"), "/in.txt", "/out.txt", "--log_level", "TRACE")

		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, "InvalidArgument")
	})

	t.Run("Should exit 1 with InvalidArgument for a wrong argument count", func(t *testing.T) {
		for _, args := range [][]string{{}, {"/in.txt"}, {"/a", "/b", "/c"}} {
			res := run(afero.NewMemMapFs(), args...)

			assert.Equal(t, ExitFailure, res.code, args)
			assert.Contains(t, res.stderr, "InvalidArgument", args)
		}
	})

	t.Run("Should exit 1 with InvalidArgument for an unknown flag", func(t *testing.T) {
		res := run(withInput(t, "x"), "/in.txt", "/out.txt", "--in-place")

		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, "InvalidArgument")
	})

	t.Run("Should exit 1 with NotFound for a missing input", func(t *testing.T) {
		res := run(afero.NewMemMapFs(), "/missing.txt", "/out.txt")

		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, "NotFound")
	})

	t.Run("Should exit 1 with InvalidInput for a directory", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/dir", 0755))

		res := run(fs, "/dir", "/out.txt")

		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, "InvalidInput")
	})

	t.Run("Should exit 1 with DecodeError and write nothing for invalid UTF-8", func(t *testing.T) {
		fs := withInput(t, "\xff\xfe")

		res := run(fs, "/in.txt", "/out.txt")

		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, "DecodeError")
		exists, _ := afero.Exists(fs, "/out.txt")
		assert.False(t, exists)
	})

	t.Run("Should exit 1 with IOError when the output cannot be written", func(t *testing.T) {
		fs := withInput(t, "x")

		res := run(afero.NewReadOnlyFs(fs), "/in.txt", "/out/out.txt")

		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, "IOError")
	})

	t.Run("Should exit 1 without creating directories for a missing output parent", func(t *testing.T) {
		dir := t.TempDir()
		in := filepath.Join(dir, "in.txt")
		require.NoError(t, os.WriteFile(in, []byte("x"), 0644))

		res := run(afero.NewOsFs(), in, filepath.Join(dir, "no", "such", "out.txt"))

		assert.Equal(t, ExitFailure, res.code)
		assert.Contains(t, res.stderr, "IOError")
		_, err := os.Stat(filepath.Join(dir, "no"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Should print help and exit 0", func(t *testing.T) {
		res := run(afero.NewMemMapFs(), "--help")

		assert.Equal(t, ExitSuccess, res.code)
		assert.Contains(t, res.stdout, "--form")
		assert.Contains(t, res.stdout, "--log_level")
	})
}
