package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithin(t *testing.T) {
	root := t.TempDir()
	safe := filepath.Join(root, "safe")
	outside := filepath.Join(root, "outside")
	require.NoError(t, os.MkdirAll(safe, 0o755))
	require.NoError(t, os.MkdirAll(outside, 0o755))
	require.NoError(t, os.Symlink(outside, filepath.Join(safe, "link")))

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"new file", filepath.Join(safe, "report.html"), false},
		{"nested new file", filepath.Join(safe, "a", "b", "alerts.db"), false},
		{"dot dot escape", filepath.Join(safe, "..", "outside", "x.png"), true},
		{"symlinked directory", filepath.Join(safe, "link", "x.png"), true},
		{"directory itself", safe, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Within(tt.path, safe)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutsideAllowedDirs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithinMissingDir(t *testing.T) {
	err := Within("x", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestValidateOutputPath(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()

	assert.NoError(t, ValidateOutputPath(filepath.Join(b, "out.png"), a, b))
	assert.ErrorIs(t, ValidateOutputPath("/etc/passwd", a, b), ErrOutsideAllowedDirs)

	// Defaults cover the temp directory.
	assert.NoError(t, ValidateOutputPath(filepath.Join(a, "out.db")))
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"":                  "session",
		"walk-1":            "walk-1",
		"../../etc/passwd":  "etc_passwd",
		"a b  c":            "a_b_c",
		"snake_case":        "snake_case",
		"___":               "session",
		"2026-10-19T09:30Z": "2026-10-19T09_30Z",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFilename(in), "input %q", in)
	}
}
