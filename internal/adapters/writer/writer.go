// Package writer implements the §4.H artifact writer: for every compiled
// unit it locates each contract's output, arbitrates redundant
// compilations of the same file by unit size, and persists one JSON
// artifact per contract.
package writer

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/sha3"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
	"go.trai.ch/solcbuild/internal/engine/dispatcher"
)

// Writer is the default artifact writer.
type Writer struct {
	store                   ports.ArtifactStore
	shouldSaveStandardInput bool
}

// New constructs a Writer.
func New(store ports.ArtifactStore, shouldSaveStandardInput bool) *Writer {
	return &Writer{store: store, shouldSaveStandardInput: shouldSaveStandardInput}
}

// Write iterates results in plan order and persists one artifact per
// contract present in contractData, keeping the one produced from the
// smallest unit when the same file appears in more than one unit.
func (w *Writer) Write(artifactsDir string, results []dispatcher.UnitResult, contractData map[string]*domain.ContractData) error {
	cache := domain.NewPersistedArtifactCache()

	for _, result := range results {
		output, err := parseContracts(result.Output)
		if err != nil {
			return err
		}

		for _, absolutePath := range result.Unit.Paths {
			data, known := contractData[absolutePath]
			if !known {
				continue
			}

			compiledRecord, err := locateContract(output, absolutePath, data.ContractName)
			if err != nil {
				return err
			}

			if !cache.ShouldWrite(absolutePath, result.Unit.Size()) {
				continue
			}

			artifact := w.buildArtifact(data, result, compiledRecord)

			if err := w.store.Write(artifactsDir, data.RequestedName, data.ContractName, artifact); err != nil {
				return err
			}
			cache.Record(absolutePath, result.Unit.Size())
		}
	}

	return nil
}

func (w *Writer) buildArtifact(data *domain.ContractData, result dispatcher.UnitResult, compiledRecord json.RawMessage) *domain.Artifact {
	sources := make(map[string]domain.SourceMetadata, len(result.Unit.Paths))
	for _, absolutePath := range result.Unit.Paths {
		sources[absolutePath] = domain.SourceMetadata{
			Keccak256: keccak256Hex(result.Unit.Contents[absolutePath]),
		}
	}

	// The settings recorded are the ones the standard-JSON input carried, so
	// a later run's cache gate can compare them against the wrapper's own.
	var input struct {
		Settings json.RawMessage `json:"settings"`
	}
	_ = json.Unmarshal(result.Input, &input)

	artifact := domain.NewArtifact(
		data.ContractName,
		data.SourceTreeHashHex,
		compiledRecord,
		sources,
		domain.CompilerInfo{Name: "solcjs", Version: result.Version, Settings: input.Settings},
	)

	if w.shouldSaveStandardInput {
		artifact.StandardInput = result.Input
	}

	return artifact
}

// parsedOutput is the two shapes §6.4/§4.H distinguish: the modern
// per-absolute-path map, and the legacy single anonymous-key map used by
// the 0.1. family.
type parsedOutput struct {
	Contracts map[string]map[string]json.RawMessage `json:"contracts"`
}

func parseContracts(output json.RawMessage) (parsedOutput, error) {
	var parsed parsedOutput
	if err := json.Unmarshal(output, &parsed); err != nil {
		return parsedOutput{}, domain.ErrMalformedOutput
	}

	if hasMixedShapes(parsed) {
		return parsedOutput{}, domain.ErrMalformedOutput
	}

	return parsed, nil
}

// hasMixedShapes reports whether output carries both the legacy
// anonymous-key shape and the modern per-path shape in the same unit
// (spec Open Question (a)): underspecified, and treated as malformed
// rather than silently preferring one shape over the other.
func hasMixedShapes(output parsedOutput) bool {
	if _, hasLegacy := output.Contracts[""]; !hasLegacy {
		return false
	}
	for path := range output.Contracts {
		if path != "" {
			return true
		}
	}
	return false
}

// locateContract implements §4.H.1's lookup with the legacy fallback: the
// modern shape keys by absolute path, the legacy 0.1. family shape keys
// every contract under the empty string regardless of which file produced
// it.
func locateContract(output parsedOutput, absolutePath, contractName string) (json.RawMessage, error) {
	if byPath, ok := output.Contracts[absolutePath]; ok {
		if record, ok := byPath[contractName]; ok {
			return record, nil
		}
	}
	if legacy, ok := output.Contracts[""]; ok {
		if record, ok := legacy[contractName]; ok {
			return record, nil
		}
	}
	return nil, domain.ErrMissingContractError
}

func keccak256Hex(sourceText string) string {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(sourceText))
	return "0x" + hex.EncodeToString(hash.Sum(nil))
}
