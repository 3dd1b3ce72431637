// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/solcbuild/internal/adapters/config"
	_ "go.trai.ch/solcbuild/internal/adapters/logger"
	_ "go.trai.ch/solcbuild/internal/adapters/scanner"
	_ "go.trai.ch/solcbuild/internal/adapters/store"
	_ "go.trai.ch/solcbuild/internal/adapters/telemetry"
	_ "go.trai.ch/solcbuild/internal/adapters/treehash"
	_ "go.trai.ch/solcbuild/internal/adapters/versionselector"
	_ "go.trai.ch/solcbuild/internal/adapters/watch"
	_ "go.trai.ch/solcbuild/internal/adapters/wrapper"
	// Register the driver node.
	_ "go.trai.ch/solcbuild/internal/driver"
)
