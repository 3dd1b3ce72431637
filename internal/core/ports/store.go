package ports

import "go.trai.ch/solcbuild/internal/core/domain"

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// ArtifactStore reads and writes persisted artifacts under the artifacts
// directory (spec §4.F, §4.H).
type ArtifactStore interface {
	// Load returns the existing artifact for requestedName/contractName, or
	// nil if none has been written yet.
	Load(artifactsDir, requestedName, contractName string) (*domain.Artifact, error)

	// Write persists artifact for requestedName/contractName, creating the
	// artifacts directory if needed.
	Write(artifactsDir, requestedName, contractName string, artifact *domain.Artifact) error
}
