package driver_test

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/solcbuild/internal/adapters/scanner"
	"go.trai.ch/solcbuild/internal/adapters/telemetry"
	"go.trai.ch/solcbuild/internal/adapters/treehash"
	"go.trai.ch/solcbuild/internal/adapters/wrapper"
	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
	"go.trai.ch/solcbuild/internal/driver"
)

const fakeVersion = "0.8.20+commit.deadbeef"

type fakeStore struct {
	artifacts map[string]*domain.Artifact
}

func newFakeStore() *fakeStore { return &fakeStore{artifacts: make(map[string]*domain.Artifact)} }

func (f *fakeStore) key(requestedName, contractName string) string {
	return requestedName + "-" + contractName
}

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
	return fakeVersion, nil
}

type fakeRegistry struct{ w ports.CompilerWrapper }

func (f *fakeRegistry) Get(_ string, _ json.RawMessage) (ports.CompilerWrapper, error) { return f.w, nil }

type fakeConfigLoader struct{ cfg *domain.Config }

func (f *fakeConfigLoader) Load(string) (*domain.Config, error) { return f.cfg, nil }

type fakeLogger struct{ errs []error }

func (f *fakeLogger) Info(string)           {}
func (f *fakeLogger) Warn(string)           {}
func (f *fakeLogger) Error(err error)       { f.errs = append(f.errs, err) }
func (f *fakeLogger) SetOutput(_ io.Writer) {}

type fakeWatcher struct {
	signals chan struct{}
}

func (f *fakeWatcher) Start(context.Context, []string) (<-chan struct{}, error) {
	return f.signals, nil
}

func newDriver(t *testing.T, contractsDir string, fakeW *wrapper.Fake, store *fakeStore, watcher ports.Watcher, logger ports.Logger) (*driver.Driver, *domain.Config) {
	t.Helper()

	cfg := &domain.Config{
		ContractsDir:  contractsDir,
		ArtifactsDir:  filepath.Join(contractsDir, "artifacts"),
		Contracts:     []string{"Token"},
		IsOfflineMode: true,
	}

	registry := &fakeRegistry{w: fakeW}
	tracer := telemetry.NewNoOp()

	d := driver.New(
		&fakeConfigLoader{cfg: cfg},
		scanner.New(),
		treehash.New(),
		store,
		fakeSelector{},
		registry,
		tracer,
		watcher,
		logger,
	)
	return d, cfg
}

func writeToken(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Token.sol"), []byte(body), 0o600))
}

// seedReleaseCache pre-populates the release-index cache the driver's
// offline-mode ReleaseIndexProvider reads from, so tests never hit the
// network.
func seedReleaseCache(t *testing.T, contractsDir string) {
	t.Helper()
	cacheDir := filepath.Join(contractsDir, ".solcbuild", "cache")
	require.NoError(t, os.MkdirAll(cacheDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "releases.json"), []byte("{}"), 0o600))
}

func TestDriver_RunOnce_WritesArtifact(t *testing.T) {
	dir := t.TempDir()
	seedReleaseCache(t, dir)
	writeToken(t, dir, "pragma solidity ^0.8.0;\ncontract Token {}\n")

	fakeW := wrapper.NewFake(fakeVersion, "Token", nil)
	store := newFakeStore()
	d, _ := newDriver(t, dir, fakeW, store, &fakeWatcher{}, &fakeLogger{})

	require.NoError(t, d.RunOnce(context.Background(), "ignored.json"))

	assert.Equal(t, 1, fakeW.Calls)
	_, ok := store.artifacts["Token-Token"]
	assert.True(t, ok)
}

func TestDriver_RunOnce_SecondRunIsCacheHit(t *testing.T) {
	dir := t.TempDir()
	seedReleaseCache(t, dir)
	writeToken(t, dir, "pragma solidity ^0.8.0;\ncontract Token {}\n")

	fakeW := wrapper.NewFake(fakeVersion, "Token", nil)
	store := newFakeStore()
	d, _ := newDriver(t, dir, fakeW, store, &fakeWatcher{}, &fakeLogger{})

	require.NoError(t, d.RunOnce(context.Background(), "ignored.json"))
	require.NoError(t, d.RunOnce(context.Background(), "ignored.json"))

	assert.Equal(t, 1, fakeW.Calls)
}

func TestDriver_Watch_RebuildsOnSignal(t *testing.T) {
	dir := t.TempDir()
	seedReleaseCache(t, dir)
	writeToken(t, dir, "pragma solidity ^0.8.0;\ncontract Token {}\n")

	fakeW := wrapper.NewFake(fakeVersion, "Token", nil)
	store := newFakeStore()
	signals := make(chan struct{}, 1)
	watcher := &fakeWatcher{signals: signals}
	logger := &fakeLogger{}
	d, _ := newDriver(t, dir, fakeW, store, watcher, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Watch(ctx, "ignored.json") }()

	require.Eventually(t, func() bool { return fakeW.Calls == 1 }, 2*time.Second, 10*time.Millisecond)

	writeToken(t, dir, "pragma solidity ^0.8.0;\ncontract Token { uint x; }\n")
	signals <- struct{}{}

	require.Eventually(t, func() bool { return fakeW.Calls == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Empty(t, logger.errs)
}

func TestDriver_RunOnce_ConfigLoadErrorIsWrapped(t *testing.T) {
	d := driver.New(
		failingConfigLoader{},
		scanner.New(),
		treehash.New(),
		newFakeStore(),
		fakeSelector{},
		&fakeRegistry{},
		telemetry.NewNoOp(),
		&fakeWatcher{},
		&fakeLogger{},
	)

	err := d.RunOnce(context.Background(), "missing.json")
	require.Error(t, err)
}

type failingConfigLoader struct{}

func (failingConfigLoader) Load(string) (*domain.Config, error) {
	return nil, domain.ErrIOError
}
