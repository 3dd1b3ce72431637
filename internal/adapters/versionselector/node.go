package versionselector

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/solcbuild/internal/core/ports"
)

// NodeID identifies the version selector Graft node. The release-index
// provider has no node: its disk cache is rooted at the config's
// contracts directory, which isn't known until a Config is loaded, so
// internal/driver builds one directly from the loaded Config instead.
const NodeID graft.ID = "adapter.version_selector"

func init() {
	graft.Register(graft.Node[ports.VersionSelector]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionSelector, error) {
			return New(), nil
		},
	})
}
