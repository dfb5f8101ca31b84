// Package app implements the application layer for tago. Each invocation
// resolves the descriptor once, selects the run mode and hands the
// operation to a freshly constructed orchestrator.
package app

import (
	"context"
	"io"
	"os"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
	"go.trai.ch/tago/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader   ports.DescriptorLoader
	executor ports.Executor
	git      ports.Git
	store    ports.ReceiptStore
	hasher   ports.Hasher
	logger   ports.Logger

	stdout io.Writer
	stderr io.Writer
}

// New creates a new App instance.
func New(
	loader ports.DescriptorLoader,
	executor ports.Executor,
	git ports.Git,
	store ports.ReceiptStore,
	hasher ports.Hasher,
	log ports.Logger,
) *App {
	return &App{
		loader:   loader,
		executor: executor,
		git:      git,
		store:    store,
		hasher:   hasher,
		logger:   log,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// WithOutput redirects the report and run output streams. This is
// primarily used for testing.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// Options carries one invocation's descriptor location and request flags.
type Options struct {
	// Descriptor is the descriptor file path. Empty means the default
	// file name in the current directory.
	Descriptor string

	// BuildsDir overrides the descriptor's builds directory when set.
	BuildsDir string

	// Request holds the raw mode, operation and behavior flags.
	Request domain.Request
}

// Execute resolves the descriptor, fixes the run state and dispatches the
// pending operation.
func (a *App) Execute(ctx context.Context, opts Options) error {
	path := opts.Descriptor
	if path == "" {
		path = domain.DescriptorFileName
	}

	descriptor, err := a.loader.Load(path, ports.ResolveOptions{
		Strict:    opts.Request.Strict,
		BuildsDir: opts.BuildsDir,
	})
	if err != nil {
		return zerr.Wrap(err, "failed to resolve descriptor")
	}

	state, err := domain.Select(descriptor, opts.Request)
	if err != nil {
		return err
	}

	orch := orchestrator.New(
		descriptor, state,
		a.executor, a.git, a.store, a.hasher, a.logger,
		orchestrator.WithOutput(a.stdout, a.stderr),
	)

	switch state.Op {
	case domain.OpBuild:
		return orch.Build(ctx, state.Tag)
	case domain.OpRun:
		return orch.Run(ctx, state.Tag)
	case domain.OpDelete:
		return orch.Delete(ctx, state.Tag)
	case domain.OpList:
		return orch.List(ctx)
	case domain.OpInit:
		return orch.Init(ctx)
	case domain.OpPurge:
		return orch.Purge(ctx)
	default:
		return orch.Query(ctx, state.Tag)
	}
}

// Build builds one tag.
func (a *App) Build(ctx context.Context, opts Options) error {
	opts.Request.Build = true
	return a.Execute(ctx, opts)
}

// Run executes one tag's built artifact.
func (a *App) Run(ctx context.Context, opts Options) error {
	opts.Request.Run = true
	return a.Execute(ctx, opts)
}

// Remove deletes one tag's build.
func (a *App) Remove(ctx context.Context, opts Options) error {
	opts.Request.Delete = true
	return a.Execute(ctx, opts)
}

// Query inspects build or test state without side effects on builds.
func (a *App) Query(ctx context.Context, opts Options) error {
	return a.Execute(ctx, opts)
}

// List prints the active version table.
func (a *App) List(ctx context.Context, opts Options) error {
	opts.Request.List = true
	return a.Execute(ctx, opts)
}

// Init builds every tag of the active table.
func (a *App) Init(ctx context.Context, opts Options) error {
	opts.Request.Init = true
	return a.Execute(ctx, opts)
}

// Purge deletes every tag of the active table.
func (a *App) Purge(ctx context.Context, opts Options) error {
	opts.Request.Purge = true
	return a.Execute(ctx, opts)
}
