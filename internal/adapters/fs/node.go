package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tago/internal/core/ports"
)

// NodeID is the unique identifier for the hasher Graft node.
const NodeID graft.ID = "adapter.hasher"

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
