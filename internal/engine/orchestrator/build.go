package orchestrator

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/zerr"
)

// Build builds one tag. In checkout mode the git protocol applies: record
// the starting ref, check out the tag, build, relocate the artifacts and
// switch back. Once the checkout has succeeded every failure path still
// routes through the switch-back; a wrong checked-out ref would corrupt
// every subsequent operation.
func (o *Orchestrator) Build(ctx context.Context, tag string) error {
	if err := o.requireTag(tag); err != nil {
		return err
	}
	if err := o.requireCleanTree(ctx); err != nil {
		return err
	}
	return o.buildTag(ctx, tag)
}

// buildTag is the build state machine shared by Build and Init. The
// clean-tree precondition is checked by the callers.
func (o *Orchestrator) buildTag(ctx context.Context, tag string) error {
	tagDir := o.descriptor.TagDir(tag)
	if err := os.MkdirAll(tagDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrDirCreateFailed, err.Error()), "dir", tagDir)
	}

	artifact := o.descriptor.ArtifactPath(tag)
	if _, err := os.Stat(artifact); err == nil && !o.state.Force {
		o.logger.Info("tag " + tag + " already built")
		return nil
	}

	if err := o.bootstrap(ctx, tag); err != nil {
		return err
	}

	workDir := tagDir
	var startRef string
	var startDetached bool

	if o.checkout() {
		workDir = o.descriptor.Dir

		ref, detached, err := o.git.Head(ctx, o.descriptor.Dir)
		if err != nil {
			return err
		}
		startRef = ref
		// Older schemas predate detached tracking and assume a branch
		// start.
		startDetached = detached && domain.SchemaSupports(o.descriptor.Schema, domain.FeatureDetachedCheck)

		// A checkout failure aborts without switch-back: nothing has moved
		// yet.
		if err := o.git.Checkout(ctx, o.descriptor.Dir, tag); err != nil {
			return err
		}
		if err := o.git.SyncSubmodules(ctx, o.descriptor.Dir); err != nil {
			return errors.Join(err, o.switchBack(ctx, startRef, startDetached))
		}
	}

	artifacts, err := o.step.Build(ctx, tag, workDir, tagDir)
	if err != nil {
		if o.checkout() {
			return errors.Join(err, o.switchBack(ctx, startRef, startDetached))
		}
		return err
	}

	// Relocation and switch-back failures are surfaced separately from
	// build failures; by this point the build itself has succeeded.
	finalizeErr := o.step.Finalize(ctx, tag, tagDir, artifacts)
	if o.checkout() {
		finalizeErr = errors.Join(finalizeErr, o.switchBack(ctx, startRef, startDetached))
	}
	if finalizeErr != nil {
		return finalizeErr
	}

	o.writeReceipt(tag, startRef)
	o.logger.Info("built tag " + tag)
	return nil
}

// bootstrap runs the bootstrap and configure sequence for native-kernel
// tags at or above the bootstrap threshold. A failure aborts the build and
// is not retried.
func (o *Orchestrator) bootstrap(ctx context.Context, tag string) error {
	if o.descriptor.Kernel != domain.KernelNative || !o.descriptor.NeedsBootstrap(tag) {
		return nil
	}

	dir := o.descriptor.Dir
	if !o.checkout() {
		dir = o.descriptor.TagDir(tag)
	}

	for _, argv := range [][]string{
		{"./bootstrap"},
		append([]string{"./configure"}, configureArgs(o.descriptor.ConfigureFlags)...),
	} {
		res, err := o.executor.Run(ctx, &domain.Command{Argv: argv, Dir: dir})
		if err != nil {
			return zerr.Wrap(err, domain.ErrBootstrapFailed.Error())
		}
		if !res.Success() {
			failure := zerr.With(zerr.Wrap(domain.ErrBootstrapFailed, "command exited non-zero"), "command", argv[0])
			return zerr.With(failure, "exit_code", res.ExitCode)
		}
	}
	return nil
}

// requireCleanTree forbids modified or staged files before checkout-mode
// operations start. Untracked files are tolerated; AllowDirty bypasses the
// check entirely.
func (o *Orchestrator) requireCleanTree(ctx context.Context) error {
	if !o.checkout() || o.state.AllowDirty {
		return nil
	}
	clean, err := o.git.IsClean(ctx, o.descriptor.Dir)
	if err != nil {
		return err
	}
	if !clean {
		return zerr.With(zerr.Wrap(domain.ErrWorkTreeDirty, "commit or stash changes, or pass --allow-dirty"), "dir", o.descriptor.Dir)
	}
	return nil
}

// switchBack returns the working tree to its starting ref and resyncs
// submodules. Its failure is fatal to the run: the tree would be left on
// the wrong ref.
func (o *Orchestrator) switchBack(ctx context.Context, startRef string, detached bool) error {
	var err error
	if detached {
		err = o.git.CheckoutDetached(ctx, o.descriptor.Dir, startRef)
	} else {
		err = o.git.Checkout(ctx, o.descriptor.Dir, startRef)
	}
	if err == nil {
		err = o.git.SyncSubmodules(ctx, o.descriptor.Dir)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrSwitchBackFailed, err.Error()), "ref", startRef)
	}
	return nil
}

// writeReceipt records a successful build. Receipts are advisory; a write
// failure only warns.
func (o *Orchestrator) writeReceipt(tag, startRef string) {
	receipt := domain.BuildReceipt{
		Tag:     tag,
		Binary:  o.descriptor.Binary,
		Kernel:  o.descriptor.Kernel.String(),
		Mode:    o.state.Mode.String(),
		BuiltAt: time.Now().UTC(),
	}
	if o.checkout() {
		receipt.StartRef = startRef
	}
	if hash, err := o.hasher.HashFile(o.descriptor.ArtifactPath(tag)); err == nil {
		receipt.ArtifactHash = hash
	}

	if err := o.store.Put(o.descriptor.BuildsDir, receipt); err != nil {
		o.logger.Warn("failed to write build receipt for tag " + tag + ": " + err.Error())
	}
}

// configureArgs splits the descriptor's configure flags into argv words.
func configureArgs(flags string) []string {
	return strings.Fields(flags)
}
