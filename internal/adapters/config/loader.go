// Package config provides the configuration loader for solcbuild.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileConfigLoader implements ports.ConfigLoader using a JSON file.
type FileConfigLoader struct{}

// New creates a FileConfigLoader.
func New() *FileConfigLoader {
	return &FileConfigLoader{}
}

// Load reads, strictly decodes, defaults, and validates the configuration
// at path (spec §6.1).
func (l *FileConfigLoader) Load(path string) (*domain.Config, error) {
	return Load(path)
}

// dto mirrors domain.Config's JSON shape for strict decoding; kept separate
// from domain.Config so defaulting can distinguish "field absent" from
// "field present with the zero value" before the two are merged.
type dto struct {
	ContractsDir               *string         `json:"contractsDir"`
	ArtifactsDir               *string         `json:"artifactsDir"`
	Contracts                  []string        `json:"contracts"`
	SolcVersion                string          `json:"solcVersion"`
	CompilerSettings           json.RawMessage `json:"compilerSettings"`
	UseDockerisedSolc          bool            `json:"useDockerisedSolc"`
	IsOfflineMode              bool            `json:"isOfflineMode"`
	ShouldSaveStandardInput    bool            `json:"shouldSaveStandardInput"`
	ShouldCompileIndependently bool            `json:"shouldCompileIndependently"`
}

// Load reads a configuration file from the given path, rejecting unknown
// fields, and returns a fully defaulted and validated domain.Config.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var parsed dto
	if err := decoder.Decode(&parsed); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid configuration"), "reason", err.Error())
	}

	cfg, err := applyDefaults(parsed, filepath.Dir(path))
	if err != nil {
		return nil, err
	}

	if os.Getenv("SOLC_OFFLINE") != "" {
		cfg.IsOfflineMode = true
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(parsed dto, baseDir string) (*domain.Config, error) {
	contractsDir := "./contracts"
	if parsed.ContractsDir != nil {
		contractsDir = *parsed.ContractsDir
	}
	if !filepath.IsAbs(contractsDir) {
		contractsDir = filepath.Join(baseDir, contractsDir)
	}
	absContractsDir, err := filepath.Abs(contractsDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve contracts directory")
	}

	artifactsDir := "./artifacts"
	if parsed.ArtifactsDir != nil {
		artifactsDir = *parsed.ArtifactsDir
	}
	if !filepath.IsAbs(artifactsDir) {
		artifactsDir = filepath.Join(baseDir, artifactsDir)
	}

	contracts := parsed.Contracts
	if len(contracts) == 0 {
		contracts = []string{domain.ContractsAll}
	}

	return &domain.Config{
		ContractsDir:               absContractsDir,
		ArtifactsDir:               artifactsDir,
		Contracts:                  contracts,
		SolcVersion:                parsed.SolcVersion,
		CompilerSettings:           parsed.CompilerSettings,
		UseDockerisedSolc:          parsed.UseDockerisedSolc,
		IsOfflineMode:              parsed.IsOfflineMode,
		ShouldSaveStandardInput:    parsed.ShouldSaveStandardInput,
		ShouldCompileIndependently: parsed.ShouldCompileIndependently,
	}, nil
}

func validate(cfg *domain.Config) error {
	info, err := os.Stat(cfg.ContractsDir)
	if err != nil || !info.IsDir() {
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "contracts directory is missing"), "contracts_dir", cfg.ContractsDir)
	}

	if len(cfg.Contracts) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "no contracts"), "reason", "contracts must be \"*\" or a non-empty list")
	}
	if !cfg.WantsAllContracts() {
		for _, name := range cfg.Contracts {
			if name == "" {
				return zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "empty contract name"), "reason", "contracts entries must not be empty")
			}
		}
	}

	return nil
}
