// Package store implements ports.ArtifactStore: one JSON file per contract
// under the artifacts directory, named "<requestedName>-<contractName>.json"
// (spec §6.6).
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

const dirPerm = 0o750

// Store is the filesystem-backed ArtifactStore.
type Store struct{}

// New creates a Store.
func New() *Store {
	return &Store{}
}

// Load returns the existing artifact for requestedName/contractName, or nil
// if none has been written yet.
func (s *Store) Load(artifactsDir, requestedName, contractName string) (*domain.Artifact, error) {
	path := artifactPath(artifactsDir, requestedName, contractName)

	data, err := os.ReadFile(path) //nolint:gosec // path built from validated components
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to read artifact")
	}

	var artifact domain.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal artifact")
	}
	return &artifact, nil
}

// Write persists artifact for requestedName/contractName, creating the
// artifacts directory if needed. Formatting is fixed: stable key order
// (Artifact's own field order) and a 4-space indent (spec §6.4).
func (s *Store) Write(artifactsDir, requestedName, contractName string, artifact *domain.Artifact) error {
	if err := os.MkdirAll(artifactsDir, dirPerm); err != nil {
		return zerr.Wrap(err, "failed to create artifacts directory")
	}

	data, err := json.MarshalIndent(artifact, "", "    ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal artifact")
	}

	path := artifactPath(artifactsDir, requestedName, contractName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return zerr.Wrap(err, "failed to write artifact")
	}
	return nil
}

func artifactPath(artifactsDir, requestedName, contractName string) string {
	return filepath.Join(artifactsDir, requestedName+"-"+contractName+".json")
}
