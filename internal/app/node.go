package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tago/internal/adapters/cas"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tago/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/tago/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/tago/internal/adapters/git"    //nolint:depguard // Wired in app layer
	"go.trai.ch/tago/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/tago/internal/adapters/shell"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tago/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains the initialized application components, providing
// controlled access to what the CLI layer needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			git.NodeID,
			cas.NodeID,
			fs.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.DescriptorLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	gitClient, err := graft.Dep[ports.Git](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ReceiptStore](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, executor, gitClient, store, hasher, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{App: app, Logger: log}, nil
}
