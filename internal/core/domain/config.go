package domain

import "encoding/json"

// ContractsAll is the sentinel value of Config.Contracts meaning "every
// contract under ContractsDir", spec §6.1's literal "*".
const ContractsAll = "*"

// Config is the driver's configuration record (spec §6.1). It is loaded and
// validated by internal/adapters/config; the zero value is not valid on its
// own (ContractsDir/ArtifactsDir/Contracts are filled in by the loader's
// defaulting pass before any Config reaches the driver).
type Config struct {
	// ContractsDir is the project root containing source files. Defaults to
	// "./contracts", resolved to an absolute path by the loader.
	ContractsDir string `json:"contractsDir"`

	// ArtifactsDir is the output directory. Defaults to "./artifacts".
	ArtifactsDir string `json:"artifactsDir"`

	// Contracts is either ContractsAll or a non-empty list of basenames.
	Contracts []string `json:"contracts"`

	// SolcVersion pins the back-end version, overriding auto-selection
	// unless the SOLCJS_PATH environment pin is also set (env wins, spec
	// §6.2).
	SolcVersion string `json:"solcVersion,omitempty"`

	// CompilerSettings is opaque and passed through verbatim to the
	// back-end wrapper; the driver never inspects its shape.
	CompilerSettings json.RawMessage `json:"compilerSettings,omitempty"`

	// UseDockerisedSolc is a hint to a binary manager outside this
	// module's scope (§1 Non-goals); carried through unexamined.
	UseDockerisedSolc bool `json:"useDockerisedSolc,omitempty"`

	// IsOfflineMode forbids network access for the release index and
	// binary lookups; forced on regardless of this field by SOLC_OFFLINE.
	IsOfflineMode bool `json:"isOfflineMode,omitempty"`

	// ShouldSaveStandardInput additionally persists the standard-JSON
	// input alongside each artifact's compilerOutput.
	ShouldSaveStandardInput bool `json:"shouldSaveStandardInput,omitempty"`

	// ShouldCompileIndependently selects one compilation unit per
	// requested contract instead of the default batched mode.
	ShouldCompileIndependently bool `json:"shouldCompileIndependently,omitempty"`
}

// WantsAllContracts reports whether Contracts is the "*" sentinel.
func (c *Config) WantsAllContracts() bool {
	return len(c.Contracts) == 1 && c.Contracts[0] == ContractsAll
}
