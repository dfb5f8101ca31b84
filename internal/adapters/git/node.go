package git

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tago/internal/adapters/shell" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/tago/internal/core/ports"
)

// NodeID is the unique identifier for the git client Graft node.
const NodeID graft.ID = "adapter.git"

func init() {
	graft.Register(graft.Node[ports.Git]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Git, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(executor), nil
		},
	})
}
