package telemetry

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/solcbuild/internal/core/ports"
)

// NodeID identifies the tracer Graft node.
const NodeID graft.ID = "adapter.tracer"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Tracer, error) {
			return New(), nil
		},
	})
}
