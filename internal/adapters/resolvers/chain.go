package resolvers

import (
	"errors"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// Chain is the default fallthrough resolver: strategies are tried in
// order, each returning a source, ports.ErrNotApplicable (continue), or a
// hard error (abort). Exhaustion fails with domain.ErrNameResolutionError.
type Chain struct {
	strategies []ports.Resolver
}

// NewChain builds a chain from strategies, tried in the given order.
func NewChain(strategies ...ports.Resolver) *Chain {
	return &Chain{strategies: strategies}
}

func (c *Chain) Resolve(name, importingDir string) (domain.ContractSource, error) {
	for _, strategy := range c.strategies {
		source, err := strategy.Resolve(name, importingDir)
		if err == nil {
			return source, nil
		}
		if errors.Is(err, ports.ErrNotApplicable) {
			continue
		}
		return domain.ContractSource{}, err
	}
	return domain.ContractSource{}, domain.ErrNameResolutionError
}

// GetAll delegates to the first strategy that returns a non-empty result;
// by convention only the name-index strategy implements this meaningfully.
func (c *Chain) GetAll() ([]domain.ContractSource, error) {
	for _, strategy := range c.strategies {
		sources, err := strategy.GetAll()
		if err != nil {
			return nil, err
		}
		if len(sources) > 0 {
			return sources, nil
		}
	}
	return nil, nil
}
