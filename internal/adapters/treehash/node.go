package treehash

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/solcbuild/internal/core/ports"
)

// NodeID identifies the tree hasher Graft node.
const NodeID graft.ID = "adapter.tree_hasher"

func init() {
	graft.Register(graft.Node[ports.TreeHasher]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.TreeHasher, error) {
			return New(), nil
		},
	})
}
