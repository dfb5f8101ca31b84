package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tago/internal/adapters/logger" //nolint:depguard // Wired in adapter wiring
	"go.trai.ch/tago/internal/core/ports"
)

// NodeID is the unique identifier for the descriptor loader Graft node.
const NodeID graft.ID = "adapter.descriptor_loader"

func init() {
	graft.Register(graft.Node[ports.DescriptorLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.DescriptorLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
