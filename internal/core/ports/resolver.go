package ports

import "go.trai.ch/solcbuild/internal/core/domain"

//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks

// Resolver maps a logical name to a resolved source, or enumerates every
// source reachable under the project root (spec §4.A).
type Resolver interface {
	// Resolve returns the ContractSource for name, or ErrNotApplicable if
	// this resolver does not handle names shaped like name or finds no file
	// for it. A hard I/O failure is returned as a distinct,
	// non-ErrNotApplicable error so the fallthrough chain does not swallow it.
	Resolve(name, importingDir string) (domain.ContractSource, error)

	// GetAll enumerates every source this resolver is authoritative for.
	// Strategies that are not project-wide (URL, registry, relative,
	// absolute) return an empty slice; only the name-index strategy
	// implements it meaningfully.
	GetAll() ([]domain.ContractSource, error)
}

// ErrNotApplicable is the fallthrough sentinel: a strategy returns it to
// mean "not my concern, try the next one" (including "no such file here"),
// distinguishing it from a real I/O failure, which aborts the chain.
var ErrNotApplicable = &notApplicableError{}

type notApplicableError struct{}

func (*notApplicableError) Error() string { return "resolver: not applicable" }
