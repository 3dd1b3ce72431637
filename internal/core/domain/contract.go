package domain

// ContractData is planner bookkeeping for one requested contract.
type ContractData struct {
	// RequestedName is the exact name the caller passed in, used by the
	// writer to name the artifact file.
	RequestedName string

	// ContractName is the requested basename without extension, e.g. "Token"
	// for a request of "Token.sol" or "Token".
	ContractName string

	// AbsolutePath is the resolved root source's absolute path.
	AbsolutePath string

	// CurrentArtifact is the previously-persisted artifact for this
	// contract, if one exists on disk. Nil when there is none.
	CurrentArtifact *Artifact

	// SourceTreeHash is the freshly computed hash for this run.
	SourceTreeHash SourceTreeHash

	// SourceTreeHashHex is SourceTreeHash.Hex(), cached because the cache
	// gate and the writer both need the hex form and recomputing it is
	// wasteful inside a hot per-contract loop.
	SourceTreeHashHex string
}
