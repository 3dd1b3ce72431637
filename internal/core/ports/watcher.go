package ports

import "context"

//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks

// Watcher implements optional watch mode (spec §4.I, §5): it observes a set
// of absolute paths and signals on the returned channel, coalescing bursts
// of events, whenever one of them changes.
type Watcher interface {
	Start(ctx context.Context, paths []string) (<-chan struct{}, error)
}
