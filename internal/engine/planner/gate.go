package planner

import (
	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// Gate is the cache gate of spec §4.F: given the previously-persisted
// artifact for a contract (if any) and a wrapper representing the currently
// configured back-end, it decides whether the contract must be recompiled.
type Gate struct{}

// NewGate creates a Gate.
func NewGate() *Gate {
	return &Gate{}
}

// MustRebuild reports true when any of the cache gate's four conditions
// hold: no existing artifact, a schema-version mismatch, a settings
// mismatch (decided by the wrapper, which owns the equality semantics), or
// a source-tree-hash mismatch.
func (g *Gate) MustRebuild(data *domain.ContractData, wrapper ports.CompilerWrapper) bool {
	current := data.CurrentArtifact
	if current == nil {
		return true
	}
	if current.SchemaVersion != domain.CurrentSchemaVersion {
		return true
	}
	if wrapper != nil && !wrapper.SettingsEqual(current.Compiler.Settings) {
		return true
	}
	if current.SourceTreeHashHex != data.SourceTreeHashHex {
		return true
	}
	return false
}
