package resolvers

import (
	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// Spy wraps any Resolver and records every ContractSource it yields,
// directly or indirectly, during the current planning walk. It is the
// instrument by which the source-tree hasher discovers the transitive
// import set without a second traversal (spec §4.A, §4.C).
type Spy struct {
	inner   ports.Resolver
	visited []domain.ContractSource
}

// NewSpy wraps inner in a Spy.
func NewSpy(inner ports.Resolver) *Spy {
	return &Spy{inner: inner}
}

func (s *Spy) Resolve(name, importingDir string) (domain.ContractSource, error) {
	source, err := s.inner.Resolve(name, importingDir)
	if err != nil {
		return domain.ContractSource{}, err
	}
	s.visited = append(s.visited, source)
	return source, nil
}

func (s *Spy) GetAll() ([]domain.ContractSource, error) {
	return s.inner.GetAll()
}

// Visited returns every source recorded so far, in discovery order.
func (s *Spy) Visited() []domain.ContractSource {
	return s.visited
}

// Record manually appends a source the caller obtained without going
// through Resolve — used to seed the spy with the traversal's root, which
// is resolved once by the planner before the hasher's walk begins.
func (s *Spy) Record(source domain.ContractSource) {
	s.visited = append(s.visited, source)
}
