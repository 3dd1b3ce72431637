package scanner

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/solcbuild/internal/core/ports"
)

// NodeID identifies the scanner Graft node.
const NodeID graft.ID = "adapter.scanner"

func init() {
	graft.Register(graft.Node[ports.Scanner]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Scanner, error) {
			return New(), nil
		},
	})
}
