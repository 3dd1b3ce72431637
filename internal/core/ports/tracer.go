package ports

import (
	"context"
	"io"

	"go.trai.ch/solcbuild/internal/core/domain"
)

//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks

// Tracer is the dispatcher's progress-reporting capability (spec §4.G); one
// Span is started per compilation unit.
type Tracer interface {
	StartUnit(ctx context.Context, name string) (context.Context, Span)
	Close() error
}

// Span represents one compilation unit's progress.
type Span interface {
	io.Writer
	Log(level domain.LogLevel, msg string)
	Cached()
	Complete(err error)
}
