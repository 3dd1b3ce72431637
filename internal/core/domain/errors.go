package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigInvalid is returned when the driver configuration fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrNameResolutionError is returned when every strategy in the resolver
	// chain declines to resolve a name.
	ErrNameResolutionError = zerr.New("could not resolve name")

	// ErrUnsatisfiableVersionError is returned when no released version in the
	// release index satisfies a requested constraint.
	ErrUnsatisfiableVersionError = zerr.New("no released compiler version satisfies constraint")

	// ErrUnsupportedVersionError is returned when no wrapper family matches a
	// normalized compiler version.
	ErrUnsupportedVersionError = zerr.New("unsupported compiler version family")

	// ErrMissingContractError is returned when a compiled contract cannot be
	// located in a back-end's output under either the modern or legacy shape.
	ErrMissingContractError = zerr.New("contract not found in compiler output")

	// ErrIOError wraps filesystem and network failures that are not covered by
	// a more specific sentinel above.
	ErrIOError = zerr.New("i/o failure")

	// ErrMalformedOutput is returned when a compiler output cannot be parsed
	// as standard JSON, or when it contains both the legacy anonymous-key
	// contract shape and the modern per-path shape for the same unit; see
	// spec Open Question (a).
	ErrMalformedOutput = zerr.New("compiler output mixes legacy and modern contract shapes")

	// ErrNoRootsRequested is returned when a planning run is asked to build
	// zero contracts.
	ErrNoRootsRequested = zerr.New("no contracts requested")

	// ErrImportCycle is returned when the source-tree hasher's traversal
	// finds a file that transitively imports itself.
	ErrImportCycle = zerr.New("circular import")
)

// CompilationError is returned when a back-end invocation completes but its
// standard-JSON output contains one or more error-severity diagnostics. It
// carries the count so that callers (notably watch mode) can report a
// summary without re-parsing the compiler output.
type CompilationError struct {
	Version     string
	ErrorsCount int
	Diagnostics []string
	wrapped     error
}

// NewCompilationError builds a CompilationError for the given version and
// diagnostics.
func NewCompilationError(version string, diagnostics []string) *CompilationError {
	return &CompilationError{
		Version:     version,
		ErrorsCount: len(diagnostics),
		Diagnostics: diagnostics,
		wrapped: zerr.With(
			zerr.With(zerr.New("compilation failed"), "version", version),
			"errors_count", len(diagnostics),
		),
	}
}

// Error implements the error interface.
func (e *CompilationError) Error() string {
	return e.wrapped.Error()
}

// Unwrap exposes the underlying zerr error, which carries the version and
// errors_count metadata, for errors.As.
func (e *CompilationError) Unwrap() error {
	return e.wrapped
}
