// Package kernel implements the per-kernel build-step dispatch. Each of
// the three backend variants satisfies the same Step contract; the variant
// is selected once per resolved invocation and never reassigned.
package kernel

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
	"go.trai.ch/zerr"
)

// Step is the uniform build-step contract over the three backend
// variants. Build runs the backend, Finalize installs the produced
// artifacts into the per-tag directory, and Invoke runs the backend's own
// default invocation for the query fall-through.
//
// Build and Finalize are separate steps because their failures are
// distinct: a finalize failure after a checkout-mode build leaves
// artifacts stranded and must never be folded into "build failed".
type Step interface {
	// Build produces the artifacts for tag. workDir is the directory the
	// backend runs in: the repository root in checkout mode, the per-tag
	// directory in in-place mode. buildDir is the per-tag directory the
	// artifacts are destined for.
	Build(ctx context.Context, tag, workDir, buildDir string) ([]string, error)

	// Finalize installs the artifacts returned by Build into buildDir.
	Finalize(ctx context.Context, tag, buildDir string, artifacts []string) error

	// Invoke runs the backend's default build invocation in dir.
	Invoke(ctx context.Context, dir string) error
}

// New selects the build step for the descriptor's kernel. skipRebuild
// requests the backend's plain invocation instead of its forced-rebuild
// target where the distinction exists.
func New(d *domain.Descriptor, executor ports.Executor, skipRebuild bool) Step {
	switch d.Kernel {
	case domain.KernelPackage:
		return &packageStep{descriptor: d, executor: executor}
	case domain.KernelCustom:
		return &customStep{descriptor: d, executor: executor}
	default:
		return &nativeStep{descriptor: d, executor: executor, skipRebuild: skipRebuild}
	}
}

// runChecked executes one backend command and converts a non-zero exit
// into a build-step failure carrying the captured stderr.
func runChecked(ctx context.Context, executor ports.Executor, cmd *domain.Command) error {
	res, err := executor.Run(ctx, cmd)
	if err != nil {
		return zerr.Wrap(err, domain.ErrBuildStepFailed.Error())
	}
	if !res.Success() {
		failure := zerr.With(zerr.Wrap(domain.ErrBuildStepFailed, "backend command exited non-zero"), "command", cmd.Argv[0])
		return zerr.With(failure, "exit_code", res.ExitCode)
	}
	return nil
}

// installArtifact moves src into dir, keeping its base name. A source
// already inside dir is left alone.
func installArtifact(src, dir string) error {
	dst := filepath.Join(dir, filepath.Base(src))
	if src == dst {
		return nil
	}
	if err := moveFile(src, dst); err != nil {
		failure := zerr.With(zerr.Wrap(domain.ErrRelocateFailed, err.Error()), "artifact", src)
		return zerr.With(failure, "dest", dst)
	}
	return nil
}

// moveFile renames src to dst, falling back to a copy-and-remove when the
// rename crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrExist) && !isCrossDevice(err) {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // artifact path derives from the descriptor
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // see above
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Remove(src)
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	return errors.As(err, &linkErr)
}
