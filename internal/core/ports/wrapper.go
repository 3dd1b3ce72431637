package ports

import "encoding/json"

//go:generate mockgen -source=wrapper.go -destination=mocks/mock_wrapper.go -package=mocks

// CompileResult is the pair of standard-JSON documents a back-end
// invocation produces (spec §4.G): the input actually sent and the output
// actually received.
type CompileResult struct {
	Input  json.RawMessage
	Output json.RawMessage
}

// CompilerWrapper is the capability contract for one back-end compiler
// instance, constructed for a single normalized version (spec §6.3).
type CompilerWrapper interface {
	// Compile submits unit contents plus import remappings and returns the
	// standard-JSON input/output pair. Compilation-error diagnostics in the
	// output are not a Go error here; the caller inspects Output and
	// constructs a domain.CompilationError itself.
	Compile(unitContents map[string]string, remappings map[string]string) (CompileResult, error)

	// SettingsEqual reports whether persistedSettings (as recorded in a
	// prior artifact) are equivalent to this wrapper's currently configured
	// settings, ignoring fields the wrapper considers irrelevant to cache
	// validity (output selection, paths, normalized defaults).
	SettingsEqual(persistedSettings json.RawMessage) bool

	// Version returns the normalized version this wrapper was constructed
	// for.
	Version() string
}

// WrapperRegistry is the per-driver lazily-populated, idempotent map keyed
// by normalized compiler version (spec §5, "per-driver lazy map").
type WrapperRegistry interface {
	Get(version string, settings json.RawMessage) (CompilerWrapper, error)
}
