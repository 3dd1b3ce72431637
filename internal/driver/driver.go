// Package driver wires the planner, dispatcher and writer into the two
// entry points a caller actually needs: a single build pass and a
// watch-and-rebuild loop (spec §4, §5). Its own fields are the adapters
// that do not depend on a loaded configuration (the config loader itself,
// the scanner, tree hasher, artifact store, version selector, wrapper
// registry, tracer, watcher and logger); the resolver chain and the
// release-index provider are rooted in Config.ContractsDir and so are
// rebuilt from scratch on every RunOnce, the same way the teacher's
// Scheduler.Run takes its graph as a call argument rather than a
// construction-time dependency.
package driver

import (
	"context"
	"path/filepath"

	"go.trai.ch/zerr"

	"go.trai.ch/solcbuild/internal/adapters/resolvers"
	"go.trai.ch/solcbuild/internal/adapters/versionselector"
	"go.trai.ch/solcbuild/internal/adapters/writer"
	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
	"go.trai.ch/solcbuild/internal/engine/dispatcher"
	"go.trai.ch/solcbuild/internal/engine/planner"
)

const (
	releaseIndexURL  = "https://binaries.soliditylang.org/bin/list.json"
	stateDirName     = ".solcbuild"
	releaseCacheName = "cache/releases.json"
	registryDirName  = "registry"
)

// Driver runs one build, or watches a project and reruns the build on
// every change.
type Driver struct {
	configLoader ports.ConfigLoader
	scanner      ports.Scanner
	hasher       ports.TreeHasher
	store        ports.ArtifactStore
	selector     ports.VersionSelector
	wrappers     ports.WrapperRegistry
	tracer       ports.Tracer
	watcher      ports.Watcher
	logger       ports.Logger
}

// New constructs a Driver from its configuration-independent collaborators.
func New(
	configLoader ports.ConfigLoader,
	scanner ports.Scanner,
	hasher ports.TreeHasher,
	store ports.ArtifactStore,
	selector ports.VersionSelector,
	wrappers ports.WrapperRegistry,
	tracer ports.Tracer,
	watcher ports.Watcher,
	logger ports.Logger,
) *Driver {
	return &Driver{
		configLoader: configLoader,
		scanner:      scanner,
		hasher:       hasher,
		store:        store,
		selector:     selector,
		wrappers:     wrappers,
		tracer:       tracer,
		watcher:      watcher,
		logger:       logger,
	}
}

// RunOnce loads configPath, plans, dispatches and writes artifacts for a
// single build pass. When contracts is non-empty it overrides the
// configuration file's "contracts" list, letting a caller (the CLI's
// `compile [contracts...]` subcommand) restrict a run without editing the
// config.
func (d *Driver) RunOnce(ctx context.Context, configPath string, contracts ...string) error {
	cfg, err := d.configLoader.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	if len(contracts) > 0 {
		cfg.Contracts = contracts
	}

	return d.runOnce(ctx, cfg)
}

func (d *Driver) runOnce(ctx context.Context, cfg *domain.Config) error {
	resolver := d.buildResolverChain(cfg)

	requestedNames, err := d.requestedNames(cfg, resolver)
	if err != nil {
		return zerr.Wrap(err, "failed to determine requested contracts")
	}

	index, err := d.buildIndexProvider(cfg).Load(cfg.IsOfflineMode)
	if err != nil {
		return zerr.Wrap(err, "failed to load release index")
	}

	buildPlanner := planner.New(resolver, d.scanner, d.hasher, d.store, d.selector, d.wrappers)
	result, err := buildPlanner.Plan(cfg, requestedNames, index)
	if err != nil {
		return zerr.Wrap(err, "build planning failed")
	}

	if len(result.Plan.Versions()) == 0 {
		d.logger.Info("all requested contracts are up to date")
		return nil
	}

	dispatch := dispatcher.New(d.wrappers, d.tracer)
	results, err := dispatch.Dispatch(ctx, result.Plan, result.Remappings, cfg.CompilerSettings)
	if err != nil {
		return zerr.Wrap(err, "compilation failed")
	}

	wr := writer.New(d.store, cfg.ShouldSaveStandardInput)
	if err := wr.Write(cfg.ArtifactsDir, results, result.ContractData); err != nil {
		return zerr.Wrap(err, "failed to write artifacts")
	}

	return nil
}

// Watch loads configPath, runs one build immediately, then reruns on every
// coalesced filesystem signal until ctx is cancelled. A failing rebuild is
// logged, not returned; the watch loop itself only stops on ctx
// cancellation or an unrecoverable watcher failure.
func (d *Driver) Watch(ctx context.Context, configPath string) error {
	cfg, err := d.configLoader.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	resolver := d.buildResolverChain(cfg)

	requestedNames, err := d.requestedNames(cfg, resolver)
	if err != nil {
		return zerr.Wrap(err, "failed to determine requested contracts")
	}

	if err := d.runOnce(ctx, cfg); err != nil {
		d.logger.Error(err)
	}

	paths, err := d.watchedPaths(cfg, resolver, requestedNames)
	if err != nil {
		return zerr.Wrap(err, "failed to determine watched paths")
	}

	signals, err := d.watcher.Start(ctx, paths)
	if err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-signals:
			if !ok {
				return nil
			}
			if err := d.runOnce(ctx, cfg); err != nil {
				d.logger.Error(err)
			}
		}
	}
}

// buildResolverChain assembles the fallthrough chain in spec §4.A.1 order:
// URL, registry, project-relative, absolute, name-index.
func (d *Driver) buildResolverChain(cfg *domain.Config) ports.Resolver {
	registryRoot := filepath.Join(cfg.ContractsDir, stateDirName, registryDirName)
	return resolvers.NewChain(
		resolvers.NewURL(cfg.IsOfflineMode),
		resolvers.NewRegistry(registryRoot),
		resolvers.NewProjectRelative(),
		resolvers.NewAbsolute(),
		resolvers.NewNameIndex(cfg.ContractsDir),
	)
}

// buildIndexProvider roots its disk cache under the project's state
// directory, matching spec §4.D.1's `<contracts_dir>/.solcbuild/cache/releases.json`.
func (d *Driver) buildIndexProvider(cfg *domain.Config) ports.ReleaseIndexProvider {
	cachePath := filepath.Join(cfg.ContractsDir, stateDirName, releaseCacheName)
	return versionselector.NewReleaseIndexProvider(releaseIndexURL, cachePath)
}

// requestedNames expands Config.Contracts: the literal list, or, when the
// config asked for every contract, every logical name the resolver chain's
// project-wide strategy enumerates.
func (d *Driver) requestedNames(cfg *domain.Config, resolver ports.Resolver) ([]string, error) {
	if !cfg.WantsAllContracts() {
		return cfg.Contracts, nil
	}

	sources, err := resolver.GetAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(sources))
	names := make([]string, 0, len(sources))
	for _, source := range sources {
		if _, exists := seen[source.LogicalPath]; exists {
			continue
		}
		seen[source.LogicalPath] = struct{}{}
		names = append(names, source.LogicalPath)
	}
	return names, nil
}

// watchedPaths resolves and hashes every requested root independently of
// the cache gate, so that a contract left untouched by the first build pass
// (because it was already up to date) is still observed for later changes.
func (d *Driver) watchedPaths(cfg *domain.Config, resolver ports.Resolver, requestedNames []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	for _, name := range requestedNames {
		root, err := resolver.Resolve(name, cfg.ContractsDir)
		if err != nil {
			return nil, err
		}

		_, visited, err := d.hasher.Hash(root, resolver, d.scanner)
		if err != nil {
			return nil, err
		}

		for _, source := range visited {
			if _, exists := seen[source.AbsolutePath]; exists {
				continue
			}
			seen[source.AbsolutePath] = struct{}{}
			paths = append(paths, source.AbsolutePath)
		}
	}

	return paths, nil
}
