package domain

import "encoding/hex"

// SourceTreeHash is a 32-byte digest over a file and every file it
// transitively imports. Changing the bytes of any file in the closure
// changes the hash. The hasher folds per-file digests in a deterministic
// depth-first order, the order in which imports are first discovered, so
// reordering the import statements of a file changes the hash as well (both
// that file's bytes and the visit order change).
type SourceTreeHash [32]byte

// Hex returns the hash as a hex string with a leading "0x", matching the
// ContractData.SourceTreeHashHex field format fixed by spec §3.
func (h SourceTreeHash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

// Equal reports whether two hashes are byte-identical.
func (h SourceTreeHash) Equal(other SourceTreeHash) bool {
	return h == other
}
