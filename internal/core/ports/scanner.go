package ports

import "go.trai.ch/solcbuild/internal/core/domain"

//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks

// Scanner extracts the version constraint and import list from one source's
// text (spec §4.B). It is deliberately lexical, not a full parser.
type Scanner interface {
	VersionConstraint(sourceText string) domain.VersionConstraint
	Imports(sourceText string) []string
}
