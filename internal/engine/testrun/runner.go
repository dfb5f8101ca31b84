// Package testrun executes recorded tests: each test binary runs with no
// arguments and its captured output is byte-compared against sibling
// record files.
package testrun

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
	"go.trai.ch/zerr"
)

// Mismatch is one stream whose output differed from its recorded
// baseline. Both texts are carried so the caller can surface them.
type Mismatch struct {
	Stream   string
	Expected string
	Actual   string
}

// Result is the outcome of one test execution.
type Result struct {
	Name string

	// Skipped is set when no record file exists for the test; a skipped
	// test counts as passed.
	Skipped bool

	// WrongExit is set when the test exited with the wrong status for its
	// table: pass tests must exit zero, fail tests non-zero.
	WrongExit bool
	ExitCode  int

	Mismatches []Mismatch
}

// Passed reports whether the test produced no failure.
func (r *Result) Passed() bool {
	return !r.WrongExit && len(r.Mismatches) == 0
}

// Runner executes single tests against the resolved descriptor's test
// tables.
type Runner struct {
	descriptor *domain.Descriptor
	executor   ports.Executor
	logger     ports.Logger

	// record refreshes baselines instead of comparing against them.
	record bool
}

// NewRunner creates a Runner.
func NewRunner(d *domain.Descriptor, executor ports.Executor, logger ports.Logger, record bool) *Runner {
	return &Runner{descriptor: d, executor: executor, logger: logger, record: record}
}

// Run executes the named test from its own directory. The returned error
// covers plumbing failures only; a test failure is reported through the
// result.
func (r *Runner) Run(ctx context.Context, name string) (*Result, error) {
	dir := r.descriptor.TestDir(name)

	res, err := r.executor.Run(ctx, &domain.Command{
		Argv: []string{"./" + name},
		Dir:  dir,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to run test"), "test", name)
	}

	result := &Result{Name: name, ExitCode: res.ExitCode}

	expectFail := r.descriptor.IsFailTest(name)
	if res.Success() == expectFail {
		result.WrongExit = true
	}

	base := filepath.Join(dir, name)
	if r.record {
		if err := writeRecord(base+domain.StdoutRecordExt, res.Stdout); err != nil {
			return nil, err
		}
		if err := writeRecord(base+domain.StderrRecordExt, res.Stderr); err != nil {
			return nil, err
		}
		return result, nil
	}

	stdoutRecord, stdoutExists, err := readRecord(base + domain.StdoutRecordExt)
	if err != nil {
		return nil, err
	}
	stderrRecord, stderrExists, err := readRecord(base + domain.StderrRecordExt)
	if err != nil {
		return nil, err
	}

	if !stdoutExists && !stderrExists {
		r.logger.Warn("no record file for test " + name + ", skipping comparison")
		result.Skipped = true
		result.WrongExit = false
		return result, nil
	}

	if stdoutExists && string(res.Stdout) != string(stdoutRecord) {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Stream:   "stdout",
			Expected: string(stdoutRecord),
			Actual:   string(res.Stdout),
		})
	}
	if stderrExists && string(res.Stderr) != string(stderrRecord) {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Stream:   "stderr",
			Expected: string(stderrRecord),
			Actual:   string(res.Stderr),
		})
	}

	return result, nil
}

func readRecord(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // record path derives from the test table
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(domain.ErrRecordReadFailed, err.Error()), "path", path)
	}
	return data, true, nil
}

func writeRecord(path string, data []byte) error {
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrRecordWriteFailed, err.Error()), "path", path)
	}
	return nil
}
