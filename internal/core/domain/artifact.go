package domain

import "encoding/json"

// CurrentSchemaVersion is compared against a persisted Artifact's
// SchemaVersion by the cache gate (spec §4.F): a mismatch always forces a
// rebuild, even if every other cache-gate check would pass.
const CurrentSchemaVersion = 1

// CompilerInfo records which back-end produced an artifact and with what
// settings, so a later run's cache gate can ask the wrapper whether its
// current settings still match (spec §4.F, "the wrapper owns the
// settings-equality decision").
type CompilerInfo struct {
	Name     string          `json:"name"`
	Version  string          `json:"version"`
	Settings json.RawMessage `json:"settings"`
}

// SourceMetadata is the per-file bookkeeping recorded alongside an artifact
// for every file in the unit that produced it (spec §3, Artifact.sources).
type SourceMetadata struct {
	// Keccak256 is a content hash of the source, recorded rather than the
	// source text itself to keep artifacts small; the authoritative source
	// bytes live in the project tree, not the artifact.
	Keccak256 string `json:"keccak256"`

	// License holds an SPDX license identifier. The artifact writer does not
	// fill it in, so it is empty (and omitted) in artifacts this module writes.
	License string `json:"license,omitempty"`
}

// Artifact is the persisted output for one contract (spec §3, §6.4).
//
// SourceTreeHashHex is not among the top-level keys §6.4 enumerates
// explicitly, but §4.F's cache gate compares "artifact.source_tree_hash_hex"
// against a freshly computed hash, which is only possible if the artifact
// carries it — so it is persisted as a top-level field, placed directly
// after the identifying fields.
type Artifact struct {
	SchemaVersion     int             `json:"schemaVersion"`
	ContractName      string          `json:"contractName"`
	SourceTreeHashHex string          `json:"sourceTreeHashHex"`
	CompilerOutput    json.RawMessage `json:"compilerOutput"`
	StandardInput     json.RawMessage `json:"input,omitempty"`
	Sources           map[string]SourceMetadata `json:"sources"`
	Compiler          CompilerInfo              `json:"compiler"`
	Chains            map[string]any            `json:"chains"`
}

// NewArtifact builds an Artifact with the fixed, always-present Chains value
// spec §3 fixes as "{}" (empty map, not null).
func NewArtifact(contractName, sourceTreeHashHex string, compilerOutput json.RawMessage, sources map[string]SourceMetadata, compiler CompilerInfo) *Artifact {
	return &Artifact{
		SchemaVersion:     CurrentSchemaVersion,
		ContractName:      contractName,
		SourceTreeHashHex: sourceTreeHashHex,
		CompilerOutput:    compilerOutput,
		Sources:           sources,
		Compiler:          compiler,
		Chains:            map[string]any{},
	}
}

// PersistedArtifactCache is the writer's transient, per-run record of the
// unit size that produced the artifact last written for a given absolute
// path, used to decide whether a later write in the same run should
// overwrite it (spec §3, §4.H: "the one with the smallest unit wins").
// It is owned exclusively by the writer and never exposed outside it.
type PersistedArtifactCache struct {
	sizes map[string]int
}

// NewPersistedArtifactCache creates an empty cache.
func NewPersistedArtifactCache() *PersistedArtifactCache {
	return &PersistedArtifactCache{sizes: make(map[string]int)}
}

// ShouldWrite reports whether an artifact for absolutePath produced from a
// unit of the given size should be written: true when no artifact has been
// written for this path yet in this run, or when unitSize is strictly
// smaller than the previously recorded size.
func (c *PersistedArtifactCache) ShouldWrite(absolutePath string, unitSize int) bool {
	prev, seen := c.sizes[absolutePath]
	return !seen || unitSize < prev
}

// Record stores the unit size used for absolutePath's most recent write.
func (c *PersistedArtifactCache) Record(absolutePath string, unitSize int) {
	c.sizes[absolutePath] = unitSize
}
