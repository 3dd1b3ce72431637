package wrapper

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/solcbuild/internal/core/ports"
)

// NodeID identifies the wrapper registry Graft node.
const NodeID graft.ID = "adapter.wrapper_registry"

func init() {
	graft.Register(graft.Node[ports.WrapperRegistry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.WrapperRegistry, error) {
			return NewRegistry(), nil
		},
	})
}
