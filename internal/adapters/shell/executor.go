// Package shell provides a process executor built on os/exec.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run launches the command and waits for it to complete. Stdout and stderr
// are captured in full for the result and additionally streamed line by line
// to the logger, stdout at info level and stderr at warn level.
//
// A non-zero exit status is reported through the result, not as an error.
func (e *Executor) Run(ctx context.Context, command *domain.Command) (*domain.CommandResult, error) {
	if len(command.Argv) == 0 {
		return nil, zerr.Wrap(domain.ErrCommandStartFailed, "empty argv")
	}

	name := command.Argv[0]
	args := command.Argv[1:]

	// Construct the final environment
	cmdEnv := resolveEnvironment(os.Environ(), command.Env)

	// Resolve the executable against the merged PATH, not the process PATH.
	// A name containing a path separator already names its location and is
	// resolved by os/exec relative to the command's Dir instead.
	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, os.PathSeparator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // descriptor provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	if command.Dir != "" {
		cmd.Dir = command.Dir
	}
	cmd.Env = cmdEnv

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open stdout pipe")
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open stderr pipe")
	}

	stdoutLog := &logWriter{logger: e.logger, level: levelInfo}
	stderrLog := &logWriter{logger: e.logger, level: levelWarn}

	var stdoutBuf, stderrBuf bytes.Buffer

	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCommandStartFailed, err.Error()), "command", name)
	}

	// Drain both pipes fully before waiting on the command
	var pumps errgroup.Group
	pumps.Go(func() error {
		_, copyErr := io.Copy(io.MultiWriter(&stdoutBuf, stdoutLog), stdoutPipe)
		return copyErr
	})
	pumps.Go(func() error {
		_, copyErr := io.Copy(io.MultiWriter(&stderrBuf, stderrLog), stderrPipe)
		return copyErr
	})

	pumpErr := pumps.Wait()
	waitErr := cmd.Wait()

	// Flush any trailing output that did not end in a newline
	_ = stdoutLog.Close()
	_ = stderrLog.Close()

	if pumpErr != nil {
		return nil, zerr.Wrap(pumpErr, "failed to read command output")
	}

	result := &domain.CommandResult{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.Bytes(),
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, zerr.Wrap(waitErr, "command failed")
	}

	return result, nil
}

const (
	levelInfo = "info"
	levelWarn = "warn"
)

// logWriter buffers raw command output and forwards it to the logger one
// complete line at a time.
type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	// Scan for newlines
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		line := w.buf[:i]
		w.logLine(line)

		// Advance buffer
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")

	if w.level == levelInfo {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}

// allowListedEnvVars are the system environment variables that are allowed to
// be inherited by commands. This keeps builds reproducible while still
// allowing basic system tools to function.
var allowListedEnvVars = map[string]struct{}{
	"HOME": {},
	"TERM": {},
	"USER": {},
	"PATH": {},
}

// resolveEnvironment merges the allow-listed system environment with the
// per-command overrides. An overridden PATH is prepended to the system PATH
// rather than replacing it.
func resolveEnvironment(sysEnv []string, overlay map[string]string) []string {
	envMap := filterSystemEnv(sysEnv)

	for k, v := range overlay {
		if k == "PATH" {
			if sysPath, exists := envMap["PATH"]; exists && sysPath != "" {
				envMap[k] = v + string(os.PathListSeparator) + sysPath
				continue
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok {
			if _, allowed := allowListedEnvVars[k]; allowed {
				envMap[k] = v
			}
		}
	}
	return envMap
}

// lookPath searches for an executable in the directories named by the PATH
// entry of the provided environment.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
