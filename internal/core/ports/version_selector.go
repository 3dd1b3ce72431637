package ports

import "go.trai.ch/solcbuild/internal/core/domain"

//go:generate mockgen -source=version_selector.go -destination=mocks/mock_version_selector.go -package=mocks

// ReleaseIndexProvider loads the release index (spec §4.D), from the network
// when possible and from a local cache when offline or the network is
// unavailable.
type ReleaseIndexProvider interface {
	Load(offline bool) (domain.ReleaseIndex, error)
}

// VersionSelector picks a concrete compiler version satisfying a constraint,
// honoring an explicit pin when present.
type VersionSelector interface {
	Select(constraint domain.VersionConstraint, index domain.ReleaseIndex, pin string) (string, error)
}
