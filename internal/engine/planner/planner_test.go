package planner_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/solcbuild/internal/adapters/resolvers"
	"go.trai.ch/solcbuild/internal/adapters/scanner"
	"go.trai.ch/solcbuild/internal/adapters/treehash"
	"go.trai.ch/solcbuild/internal/adapters/wrapper"
	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
	"go.trai.ch/solcbuild/internal/engine/planner"
)

type fakeStore struct {
	artifacts map[string]*domain.Artifact
}

func newFakeStore() *fakeStore { return &fakeStore{artifacts: make(map[string]*domain.Artifact)} }

func (f *fakeStore) key(requestedName, contractName string) string { return requestedName + "-" + contractName }

func (f *fakeStore) Load(_, requestedName, contractName string) (*domain.Artifact, error) {
	return f.artifacts[f.key(requestedName, contractName)], nil
}

func (f *fakeStore) Write(_, requestedName, contractName string, artifact *domain.Artifact) error {
	f.artifacts[f.key(requestedName, contractName)] = artifact
	return nil
}

type fakeSelector struct{}

func (fakeSelector) Select(_ domain.VersionConstraint, _ domain.ReleaseIndex, pin string) (string, error) {
	if pin != "" {
		return pin, nil
	}
	return "0.8.20+commit.deadbeef", nil
}

type fakeRegistry struct{ w ports.CompilerWrapper }

func (f *fakeRegistry) Get(_ string, _ json.RawMessage) (ports.CompilerWrapper, error) { return f.w, nil }

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func newPlanner(contractsDir string, fakeW *wrapper.Fake, fs *fakeStore) *planner.Planner {
	chain := resolvers.NewChain(resolvers.NewProjectRelative(), resolvers.NewNameIndex(contractsDir))
	return planner.New(chain, scanner.New(), treehash.New(), fs, fakeSelector{}, &fakeRegistry{w: fakeW})
}

func TestPlanner_Plan_SingleContract(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"Token.sol": `pragma solidity ^0.8.0; import "./Lib.sol"; contract Token {}`,
		"Lib.sol":   `contract Lib {}`,
	})

	cfg := &domain.Config{ContractsDir: dir, ArtifactsDir: filepath.Join(dir, "artifacts")}
	fakeW := wrapper.NewFake("0.8.20+commit.deadbeef", "Token", nil)

	p := newPlanner(dir, fakeW, newFakeStore())
	result, err := p.Plan(cfg, []string{"Token.sol"}, domain.ReleaseIndex{})
	require.NoError(t, err)

	versions := result.Plan.Versions()
	require.Len(t, versions, 1)
	assert.Equal(t, "0.8.20+commit.deadbeef", versions[0])

	units := result.Plan.UnitsFor(versions[0])
	require.Len(t, units, 1)
	assert.Equal(t, 2, units[0].Size())
	assert.Len(t, result.ContractData, 1)
}

func TestPlanner_Plan_SkipsWhenCacheHits(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"Token.sol": `pragma solidity ^0.8.0; contract Token {}`,
	})
	cfg := &domain.Config{ContractsDir: dir, ArtifactsDir: filepath.Join(dir, "artifacts")}
	fakeW := wrapper.NewFake("0.8.20+commit.deadbeef", "Token", nil)
	store := newFakeStore()

	p := newPlanner(dir, fakeW, store)
	first, err := p.Plan(cfg, []string{"Token.sol"}, domain.ReleaseIndex{})
	require.NoError(t, err)
	require.Len(t, first.ContractData, 1)

	var hashHex string
	for _, d := range first.ContractData {
		hashHex = d.SourceTreeHashHex
	}
	store.artifacts["Token.sol-Token"] = domain.NewArtifact("Token", hashHex, json.RawMessage(`{}`), nil, domain.CompilerInfo{Settings: nil})

	second, err := p.Plan(cfg, []string{"Token.sol"}, domain.ReleaseIndex{})
	require.NoError(t, err)
	assert.Empty(t, second.ContractData)
	assert.Empty(t, second.Plan.Versions())
}

func TestPlanner_Plan_IndependentModeAllocatesSeparateUnits(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"A.sol": `pragma solidity ^0.8.0; contract A {}`,
		"B.sol": `pragma solidity ^0.8.0; contract B {}`,
	})
	cfg := &domain.Config{ContractsDir: dir, ArtifactsDir: filepath.Join(dir, "artifacts"), ShouldCompileIndependently: true}
	fakeW := wrapper.NewFake("0.8.20+commit.deadbeef", "A", nil)

	p := newPlanner(dir, fakeW, newFakeStore())
	result, err := p.Plan(cfg, []string{"A.sol", "B.sol"}, domain.ReleaseIndex{})
	require.NoError(t, err)

	units := result.Plan.UnitsFor("0.8.20+commit.deadbeef")
	assert.Len(t, units, 2)
}

func TestPlanner_Plan_BatchedModeSharesUnit(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"A.sol": `pragma solidity ^0.8.0; contract A {}`,
		"B.sol": `pragma solidity ^0.8.0; contract B {}`,
	})
	cfg := &domain.Config{ContractsDir: dir, ArtifactsDir: filepath.Join(dir, "artifacts")}
	fakeW := wrapper.NewFake("0.8.20+commit.deadbeef", "A", nil)

	p := newPlanner(dir, fakeW, newFakeStore())
	result, err := p.Plan(cfg, []string{"A.sol", "B.sol"}, domain.ReleaseIndex{})
	require.NoError(t, err)

	units := result.Plan.UnitsFor("0.8.20+commit.deadbeef")
	require.Len(t, units, 1)
	assert.Equal(t, 2, units[0].Size())
}

func TestPlanner_Plan_EnvPinOverridesConfigPin(t *testing.T) {
	t.Setenv("SOLCJS_PATH", "/usr/local/bin/solcjs-v0.6.12+commit.27d51765")

	dir := writeProject(t, map[string]string{
		"Token.sol": `pragma solidity ^0.8.0; contract Token {}`,
	})
	cfg := &domain.Config{ContractsDir: dir, ArtifactsDir: filepath.Join(dir, "artifacts"), SolcVersion: "0.8.20+commit.deadbeef"}
	fakeW := wrapper.NewFake("0.6.12+commit.27d51765", "Token", nil)

	p := newPlanner(dir, fakeW, newFakeStore())
	result, err := p.Plan(cfg, []string{"Token.sol"}, domain.ReleaseIndex{})
	require.NoError(t, err)

	versions := result.Plan.Versions()
	require.Len(t, versions, 1)
	assert.Equal(t, "0.6.12+commit.27d51765", versions[0])
}

func TestPlanner_Plan_NoRootsIsError(t *testing.T) {
	p := newPlanner(t.TempDir(), wrapper.NewFake("0.8.20", "A", nil), newFakeStore())
	_, err := p.Plan(&domain.Config{}, nil, domain.ReleaseIndex{})
	require.ErrorIs(t, err, domain.ErrNoRootsRequested)
}
