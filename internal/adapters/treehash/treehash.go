// Package treehash implements the §4.C deterministic source-tree hasher: a
// depth-first traversal over a file and its transitive imports, resolved
// through a spy resolver so the same walk also recovers the full import
// closure for the planner.
package treehash

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/solcbuild/internal/adapters/resolvers"
	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// Hasher is the default TreeHasher implementation.
type Hasher struct{}

// New creates a Hasher.
func New() *Hasher {
	return &Hasher{}
}

// Hash performs the traversal described in spec §4.C: for each unique file
// visited (identity = absolute path), H_i = xxhash64(source bytes); the tree
// hash is sha256(concat(H_i for i in visit_order)). Visited-set membership
// breaks cycles, and an ImportGraph detects them precisely rather than
// silently truncating the walk.
func (h *Hasher) Hash(root domain.ContractSource, resolver ports.Resolver, scanner ports.Scanner) (domain.SourceTreeHash, []domain.ContractSource, error) {
	spy := resolvers.NewSpy(resolver)
	graph := domain.NewImportGraph()
	visited := make(map[string]bool)
	var digestInputs []byte

	var visit func(source domain.ContractSource, importingDir string) error
	visit = func(source domain.ContractSource, importingDir string) error {
		if visited[source.AbsolutePath] {
			return nil
		}
		visited[source.AbsolutePath] = true

		fileHash := xxhash.Sum64String(source.SourceText)
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], fileHash)
		digestInputs = append(digestInputs, buf[:]...)

		dir := parentDir(source.AbsolutePath)
		for _, imp := range scanner.Imports(source.SourceText) {
			child, err := spy.Resolve(imp, dir)
			if err != nil {
				return err
			}
			graph.AddEdge(source.AbsolutePath, child.AbsolutePath)
			if err := graph.Validate(source.AbsolutePath); err != nil {
				return err
			}
			if err := visit(child, dir); err != nil {
				return err
			}
		}
		return nil
	}

	spy.Record(root)
	if err := visit(root, parentDir(root.AbsolutePath)); err != nil {
		return domain.SourceTreeHash{}, nil, err
	}

	return domain.SourceTreeHash(sha256.Sum256(digestInputs)), spy.Visited(), nil
}

func parentDir(absolutePath string) string {
	for i := len(absolutePath) - 1; i >= 0; i-- {
		if absolutePath[i] == '/' {
			return absolutePath[:i]
		}
	}
	return "."
}
