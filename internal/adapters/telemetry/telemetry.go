// Package telemetry implements the dispatcher's progress-reporting
// capability (spec §4.G) on top of progrock.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// Recorder implements ports.Tracer using a progrock.Recorder.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a Recorder writing to a fresh in-memory tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a Recorder writing to w.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{w: w, rec: progrock.NewRecorder(w)}
}

// StartUnit starts a new vertex named after the compilation unit's
// identity (spec's convention: the concrete compiler version it targets).
func (r *Recorder) StartUnit(ctx context.Context, name string) (context.Context, ports.Span) {
	d := digest.FromString(name)
	vertex := r.rec.Vertex(d, name)
	return ctx, &span{vertex: vertex}
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// span implements ports.Span wrapping *progrock.VertexRecorder.
type span struct {
	vertex *progrock.VertexRecorder
}

func (s *span) Write(p []byte) (int, error) {
	return s.vertex.Stdout().Write(p)
}

func (s *span) Log(level domain.LogLevel, msg string) {
	_, _ = fmt.Fprintf(s.vertex.Stdout(), "[%s] %s\n", level.String(), msg)
}

func (s *span) Cached() {
	s.vertex.Cached()
}

func (s *span) Complete(err error) {
	s.vertex.Done(err)
}

// NoOpTracer discards every span, used when a caller wants to run the
// dispatcher without a progress display (tests).
type NoOpTracer struct{}

// NewNoOp creates a NoOpTracer.
func NewNoOp() *NoOpTracer { return &NoOpTracer{} }

func (NoOpTracer) StartUnit(ctx context.Context, _ string) (context.Context, ports.Span) {
	return ctx, noOpSpan{}
}

func (NoOpTracer) Close() error { return nil }

type noOpSpan struct{}

func (noOpSpan) Write(p []byte) (int, error) { return io.Discard.Write(p) }
func (noOpSpan) Log(domain.LogLevel, string) {}
func (noOpSpan) Cached()                     {}
func (noOpSpan) Complete(error)              {}
