package orchestrator

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/zerr"
)

// Run executes the built artifact of one tag with no arguments. Success
// means the process was spawned; a non-zero exit is logged but does not
// fail the operation, so the caller can inspect the output either way.
func (o *Orchestrator) Run(ctx context.Context, tag string) error {
	if err := o.requireTag(tag); err != nil {
		return err
	}

	artifact := o.descriptor.ArtifactPath(tag)
	info, err := os.Stat(artifact)
	if err != nil || !info.Mode().IsRegular() {
		return zerr.With(zerr.Wrap(domain.ErrNotBuilt, "no artifact on disk"), "tag", tag)
	}

	res, err := o.executor.Run(ctx, &domain.Command{
		Argv: []string{"./" + o.descriptor.Binary},
		Dir:  o.descriptor.TagDir(tag),
	})
	if err != nil {
		return err
	}

	_, _ = o.stdout.Write(res.Stdout)
	_, _ = o.stderr.Write(res.Stderr)

	if !res.Success() {
		o.logger.Warn("tag " + tag + " exited with status " + strconv.Itoa(res.ExitCode))
	}
	return nil
}

// Delete removes one tag's build directory. A missing artifact is a
// reported error, not a silent skip.
func (o *Orchestrator) Delete(_ context.Context, tag string) error {
	if err := o.requireTag(tag); err != nil {
		return err
	}

	artifact := o.descriptor.ArtifactPath(tag)
	if _, err := os.Stat(artifact); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrArtifactMissing, "nothing to delete"), "tag", tag)
	}

	if err := os.RemoveAll(o.descriptor.TagDir(tag)); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDeleteFailed, err.Error()), "tag", tag)
	}

	if err := o.store.Delete(o.descriptor.BuildsDir, tag); err != nil {
		o.logger.Warn("failed to delete build receipt for tag " + tag + ": " + err.Error())
	}

	o.logger.Info("deleted tag " + tag)
	return nil
}

// Query inspects state without side effects on builds. Its behavior is
// fixed by the active mode: test modes run tests, a tag-scoped query
// reports artifact state and a bare query falls through to the backend's
// own default invocation.
func (o *Orchestrator) Query(ctx context.Context, tag string) error {
	switch o.state.Mode {
	case domain.ModeSingleTest:
		return o.runSingleTest(ctx)
	case domain.ModeTestSuite:
		return o.runTestSuite(ctx)
	default:
	}

	if tag != "" {
		return o.reportTag(tag)
	}
	return o.step.Invoke(ctx, o.descriptor.Dir)
}

// reportTag renders existence, executability and receipt metadata for one
// tag's artifact.
func (o *Orchestrator) reportTag(tag string) error {
	if err := o.requireTag(tag); err != nil {
		return err
	}

	artifact := o.descriptor.ArtifactPath(tag)
	description, _ := o.table().Description(tag)
	fmt.Fprintf(o.stdout, "tag %s: %s\n", tag, description)

	info, err := os.Stat(artifact)
	switch {
	case err != nil:
		fmt.Fprintf(o.stdout, "  artifact: not built\n")
	case !info.Mode().IsRegular():
		fmt.Fprintf(o.stdout, "  artifact: %s (not a regular file)\n", artifact)
	case info.Mode()&0o111 != 0:
		fmt.Fprintf(o.stdout, "  artifact: %s (executable)\n", artifact)
	default:
		fmt.Fprintf(o.stdout, "  artifact: %s (not executable)\n", artifact)
	}

	receipt, err := o.store.Get(o.descriptor.BuildsDir, tag)
	if err != nil {
		o.logger.Warn("failed to read build receipt for tag " + tag + ": " + err.Error())
		return nil
	}
	if receipt != nil {
		fmt.Fprintf(o.stdout, "  built: %s (%s kernel, %s mode)\n",
			receipt.BuiltAt.Format("2006-01-02 15:04:05"), receipt.Kernel, receipt.Mode)
		if receipt.ArtifactHash != "" {
			fmt.Fprintf(o.stdout, "  hash: %s\n", receipt.ArtifactHash)
		}
	}

	return nil
}

// List renders the active mode's version table in ascending tag order.
func (o *Orchestrator) List(_ context.Context) error {
	table := o.table()
	for _, tag := range table.Tags() {
		description, _ := table.Description(tag)
		if description == "" {
			fmt.Fprintf(o.stdout, "%s\n", tag)
			continue
		}
		fmt.Fprintf(o.stdout, "%s\t%s\n", tag, description)
	}
	return nil
}
