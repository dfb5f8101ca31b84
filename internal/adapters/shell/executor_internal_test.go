package shell

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		sysEnv   []string
		overlay  map[string]string
		expected []string
	}{
		{
			name:     "System Only (Allowed)",
			sysEnv:   []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
			overlay:  nil,
			expected: []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
		},
		{
			name:     "System Only (Filtered)",
			sysEnv:   []string{"USER=test", "SSH_AUTH_SOCK=/tmp/ssh", "SECRET=key"},
			overlay:  nil,
			expected: []string{"USER=test"},
		},
		{
			name:     "System + Overlay (No PATH)",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			overlay:  map[string]string{"CFLAGS": "-O2"},
			expected: []string{"USER=test", "PATH=/bin", "CFLAGS=-O2"},
		},
		{
			name:     "System + Overlay (Prepend PATH)",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			overlay:  map[string]string{"PATH": "/opt/tool/bin"},
			expected: []string{"USER=test", "PATH=/opt/tool/bin" + string(os.PathListSeparator) + "/bin"},
		},
		{
			name:     "Overlay overrides system variable",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			overlay:  map[string]string{"USER": "builder", "EXTENSIONS": "1"},
			expected: []string{"USER=builder", "PATH=/bin", "EXTENSIONS=1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEnvironment(tt.sysEnv, tt.overlay)

			// Sort for deterministic comparison
			sort.Strings(got)
			sort.Strings(tt.expected)

			assert.Equal(t, tt.expected, got)
		})
	}
}

// Ensure the overlay PATH is used verbatim when the system PATH is absent.
func TestResolveEnvironment_EmptySystem(t *testing.T) {
	got := resolveEnvironment([]string{}, map[string]string{"PATH": "/opt/tool/bin"})
	assert.Contains(t, got, "PATH=/opt/tool/bin")
}

func TestLookPath_EmptyPATH(t *testing.T) {
	// Environment with no PATH variable
	env := []string{"USER=test"}
	_, err := lookPath("echo", env)
	assert.Error(t, err, "lookPath() expected error when PATH is not in environment")
}

func TestLookPath_ExecutableNotFound(t *testing.T) {
	env := []string{"PATH=/nonexistent/dir"}
	_, err := lookPath("definitely-not-here", env)
	assert.Error(t, err)
}

func TestLookPath_FindsExecutable(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "my-tool")
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0o700))

	got, err := lookPath("my-tool", []string{"PATH=" + dir})
	require.NoError(t, err)
	assert.Equal(t, script, got)
}

func TestLookPath_SkipsNonExecutable(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "my-tool")
	require.NoError(t, os.WriteFile(plain, []byte("data"), 0o600))

	_, err := lookPath("my-tool", []string{"PATH=" + dir})
	assert.Error(t, err)
}

func TestLogWriter_LineBuffering(t *testing.T) {
	rec := &recordingSink{}
	w := &logWriter{logger: rec, level: levelInfo}

	_, err := w.Write([]byte("par"))
	require.NoError(t, err)
	assert.Empty(t, rec.infos, "incomplete line should stay buffered")

	_, err = w.Write([]byte("tial\nsecond\nthi"))
	require.NoError(t, err)
	assert.Equal(t, []string{"partial", "second"}, rec.infos)

	require.NoError(t, w.Close())
	assert.Equal(t, []string{"partial", "second", "thi"}, rec.infos)
}

func TestLogWriter_StripsCarriageReturn(t *testing.T) {
	rec := &recordingSink{}
	w := &logWriter{logger: rec, level: levelWarn}

	_, err := w.Write([]byte("progress\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"progress"}, rec.warns)
}

// recordingSink is a minimal ports.Logger for white-box tests.
type recordingSink struct {
	infos []string
	warns []string
}

func (r *recordingSink) Info(msg string) { r.infos = append(r.infos, msg) }
func (r *recordingSink) Warn(msg string) { r.warns = append(r.warns, msg) }
func (r *recordingSink) Error(error)     {}
