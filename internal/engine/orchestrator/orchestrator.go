// Package orchestrator drives build, run, delete and query operations
// against the resolved descriptor and active run mode. One orchestrator is
// constructed per invocation; the descriptor stays immutable and the git
// working tree is treated as a shared resource with strict switch-back
// discipline.
package orchestrator

import (
	"io"
	"os"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
	"go.trai.ch/tago/internal/engine/kernel"
	"go.trai.ch/tago/internal/engine/testrun"
	"go.trai.ch/zerr"
)

// Orchestrator executes the operations of one resolved invocation.
type Orchestrator struct {
	descriptor *domain.Descriptor
	state      *domain.RunState

	executor ports.Executor
	git      ports.Git
	store    ports.ReceiptStore
	hasher   ports.Hasher
	logger   ports.Logger

	step  kernel.Step
	tests *testrun.Runner

	stdout io.Writer
	stderr io.Writer
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithOutput redirects the orchestrator's report and run output streams.
// Used by tests.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *Orchestrator) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// New creates an Orchestrator for one resolved descriptor and run state.
// The kernel build step is selected here, once, and never reassigned.
func New(
	d *domain.Descriptor,
	state *domain.RunState,
	executor ports.Executor,
	git ports.Git,
	store ports.ReceiptStore,
	hasher ports.Hasher,
	logger ports.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		descriptor: d,
		state:      state,
		executor:   executor,
		git:        git,
		store:      store,
		hasher:     hasher,
		logger:     logger,
		step:       kernel.New(d, executor, state.SkipRebuild),
		tests:      testrun.NewRunner(d, executor, logger, state.Record),
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// table returns the version table partition of the active mode.
func (o *Orchestrator) table() *domain.VersionTable {
	return o.descriptor.Table(o.state.Mode)
}

// requireTag validates that tag is a key of the active table. Unknown
// tags are reported before any side effect.
func (o *Orchestrator) requireTag(tag string) error {
	if !o.table().Has(tag) {
		err := zerr.With(zerr.Wrap(domain.ErrUnknownTag, "tag is not in the active version table"), "tag", tag)
		return zerr.With(err, "mode", o.state.Mode.String())
	}
	return nil
}

// checkout reports whether the active mode performs git operations.
func (o *Orchestrator) checkout() bool {
	return o.state.Mode == domain.ModeCheckout
}
