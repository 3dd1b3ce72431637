// Package planner implements the build planner (§4.E) and its cache gate
// (§4.F): for each requested contract it resolves the root source, hashes
// its import closure, decides whether a rebuild is needed, picks a back-end
// version, and places the closure's files into the run's compilation plan.
package planner

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// Result is everything Plan produces for one run: the compilation plan
// itself, the per-contract bookkeeping later consumed by the writer, and
// the shared import remappings.
type Result struct {
	Plan         *domain.CompilationPlan
	ContractData map[string]*domain.ContractData // absolute path -> data
	Remappings   domain.ImportRemappings
}

// Planner builds a Result from a requested-names list.
type Planner struct {
	resolver    ports.Resolver
	scanner     ports.Scanner
	hasher      ports.TreeHasher
	store       ports.ArtifactStore
	versions    ports.VersionSelector
	wrappers    ports.WrapperRegistry
	gate        *Gate
}

// New constructs a Planner from its collaborators.
func New(
	resolver ports.Resolver,
	scanner ports.Scanner,
	hasher ports.TreeHasher,
	store ports.ArtifactStore,
	versions ports.VersionSelector,
	wrappers ports.WrapperRegistry,
) *Planner {
	return &Planner{
		resolver: resolver,
		scanner:  scanner,
		hasher:   hasher,
		store:    store,
		versions: versions,
		wrappers: wrappers,
		gate:     NewGate(),
	}
}

// Plan implements spec §4.E over a config and a resolved release index.
// requestedNames is the caller's already-expanded list: either the config's
// literal list, or the result of resolver.GetAll() when config requested
// "*" (the driver is responsible for that expansion, since it owns the
// decision of which resolver is authoritative for "every source").
func (p *Planner) Plan(cfg *domain.Config, requestedNames []string, index domain.ReleaseIndex) (*Result, error) {
	if len(requestedNames) == 0 {
		return nil, domain.ErrNoRootsRequested
	}

	pin := versionPin(cfg)
	plan := domain.NewCompilationPlan()
	contractData := make(map[string]*domain.ContractData)
	remappings := make(domain.ImportRemappings)

	for _, requestedName := range requestedNames {
		root, err := p.resolver.Resolve(requestedName, cfg.ContractsDir)
		if err != nil {
			return nil, err
		}

		treeHash, visited, err := p.hasher.Hash(root, p.resolver, p.scanner)
		if err != nil {
			return nil, err
		}

		contractName := baseName(root.LogicalPath)

		existing, err := p.store.Load(cfg.ArtifactsDir, requestedName, contractName)
		if err != nil {
			return nil, err
		}

		data := &domain.ContractData{
			RequestedName:     requestedName,
			ContractName:      contractName,
			AbsolutePath:      root.AbsolutePath,
			CurrentArtifact:   existing,
			SourceTreeHash:    treeHash,
			SourceTreeHashHex: treeHash.Hex(),
		}

		constraint := p.rootConstraint(root)
		version, err := p.versions.Select(constraint, index, pin)
		if err != nil {
			return nil, err
		}

		wrapper, err := p.wrappers.Get(version, cfg.CompilerSettings)
		if err != nil {
			return nil, err
		}

		if !p.gate.MustRebuild(data, wrapper) {
			continue
		}

		contractData[data.AbsolutePath] = data

		unit := p.unitFor(plan, version, cfg.ShouldCompileIndependently)
		for _, source := range visited {
			unit.Add(source.AbsolutePath, source.SourceText)
			recordRemapping(remappings, source.LogicalPath, source.AbsolutePath)
		}
		unit.AddRoot(requestedName)
		if plan.LastUnitFor(version) != unit {
			plan.AppendUnit(version, unit)
		}
	}

	return &Result{Plan: plan, ContractData: contractData, Remappings: remappings}, nil
}

// unitFor returns the unit new files for this root should be added to: the
// version's existing last unit in batched mode, or a fresh unit in
// independent mode.
func (p *Planner) unitFor(plan *domain.CompilationPlan, version string, independent bool) *domain.CompilationUnit {
	if !independent {
		if last := plan.LastUnitFor(version); last != nil {
			return last
		}
	}
	return domain.NewCompilationUnit()
}

// rootConstraint returns the version constraint of the root source alone,
// in both batched and independent mode: pragmas in the files the root
// imports do not narrow the version selected for it.
func (p *Planner) rootConstraint(root domain.ContractSource) domain.VersionConstraint {
	return p.scanner.VersionConstraint(root.SourceText)
}

// binaryVersionPattern extracts a version token (with an optional
// "+commit.<hex>" build metadata suffix) from a $SOLCJS_PATH basename, e.g.
// "solcjs-v0.8.20+commit.deadbeef" or "solc-0.6.12".
var binaryVersionPattern = regexp.MustCompile(`\d+\.\d+\.\d+(?:\+commit\.[0-9a-fA-F]+)?`)

// versionPin resolves the effective pin per spec §6.2's precedence: the
// $SOLCJS_PATH environment override, when its filename encodes a version,
// beats the config's explicit SolcVersion.
func versionPin(cfg *domain.Config) string {
	if pin := envVersionPin(); pin != "" {
		return pin
	}
	return cfg.SolcVersion
}

// envVersionPin extracts the version encoded in $SOLCJS_PATH's filename, if
// set and if a version token is present. An unset or unparseable
// $SOLCJS_PATH yields no pin, leaving cfg.SolcVersion (or auto-selection) in
// effect.
func envVersionPin() string {
	path := os.Getenv("SOLCJS_PATH")
	if path == "" {
		return ""
	}
	return binaryVersionPattern.FindString(filepath.Base(path))
}

func baseName(logicalPath string) string {
	base := filepath.Base(logicalPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// recordRemapping maps a bare dependency prefix (the first two path segments
// of a logical import name, e.g. "@foo/bar/Baz.sol" -> "@foo/bar") to the
// directory that resolved it. Plain relative/absolute logical paths (no
// leading "@") do not contribute a remapping.
func recordRemapping(remappings domain.ImportRemappings, logicalPath, absolutePath string) {
	if !strings.HasPrefix(logicalPath, "@") {
		return
	}
	parts := strings.SplitN(logicalPath, "/", 3)
	if len(parts) < 2 {
		return
	}
	prefix := parts[0] + "/" + parts[1]
	if _, exists := remappings[prefix]; exists {
		return
	}

	// absolutePath ends in the same suffix as logicalPath beyond the
	// prefix; trim that suffix to recover the root the package was found
	// under.
	suffix := strings.TrimPrefix(logicalPath, prefix+"/")
	root := strings.TrimSuffix(absolutePath, suffix)
	remappings[prefix] = filepath.Clean(root)
}
