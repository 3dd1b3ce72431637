package ports

import "go.trai.ch/solcbuild/internal/core/domain"

//go:generate mockgen -source=treehasher.go -destination=mocks/mock_treehasher.go -package=mocks

// TreeHasher performs the deterministic depth-first traversal of §4.C,
// resolving imports through the given Resolver as it walks and returning the
// resulting hash plus every ContractSource it visited (the "spy" output).
type TreeHasher interface {
	Hash(root domain.ContractSource, resolver Resolver, scanner Scanner) (domain.SourceTreeHash, []domain.ContractSource, error)
}
