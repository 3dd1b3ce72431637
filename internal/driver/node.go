package driver

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/solcbuild/internal/adapters/config"
	"go.trai.ch/solcbuild/internal/adapters/logger"
	"go.trai.ch/solcbuild/internal/adapters/scanner"
	"go.trai.ch/solcbuild/internal/adapters/store"
	"go.trai.ch/solcbuild/internal/adapters/telemetry"
	"go.trai.ch/solcbuild/internal/adapters/treehash"
	"go.trai.ch/solcbuild/internal/adapters/versionselector"
	"go.trai.ch/solcbuild/internal/adapters/watch"
	"go.trai.ch/solcbuild/internal/adapters/wrapper"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// NodeID identifies the driver Graft node.
const NodeID graft.ID = "driver.main"

func init() {
	graft.Register(graft.Node[*Driver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scanner.NodeID,
			treehash.NodeID,
			store.NodeID,
			versionselector.NodeID,
			wrapper.NodeID,
			telemetry.NodeID,
			watch.NodeID,
			logger.NodeID,
		},
		Run: runDriverNode,
	})
}

func runDriverNode(ctx context.Context) (*Driver, error) {
	configLoader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	sc, err := graft.Dep[ports.Scanner](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.TreeHasher](ctx)
	if err != nil {
		return nil, err
	}

	artifactStore, err := graft.Dep[ports.ArtifactStore](ctx)
	if err != nil {
		return nil, err
	}

	selector, err := graft.Dep[ports.VersionSelector](ctx)
	if err != nil {
		return nil, err
	}

	wrappers, err := graft.Dep[ports.WrapperRegistry](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	watcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(configLoader, sc, hasher, artifactStore, selector, wrappers, tracer, watcher, log), nil
}
