package wrapper

import (
	"encoding/json"
	"strings"
	"sync"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// supportedFamilies are the normalized-version prefixes spec §6.3
// recognizes. The trailing dot on the 0.1-0.5 entries stops "0.10." from
// falsely matching family "0.1.".
var supportedFamilies = []string{"0.1.", "0.2.", "0.3.", "0.4.", "0.5.", "0.6", "0.7", "0.8"}

// normalizeVersion strips the leading "v" a release index or pin may still
// carry, so family matching and the registry's map key both operate on the
// bare "X.Y.Z[+commit...]" form spec S1 expects.
func normalizeVersion(version string) string {
	return strings.TrimPrefix(version, "v")
}

// familyFor returns the matching family prefix for a normalized version, or
// false if no supported family claims it.
func familyFor(normalized string) (string, bool) {
	for _, family := range supportedFamilies {
		if strings.HasPrefix(normalized, family) {
			return family, true
		}
	}
	return "", false
}

// Registry is the lazy, idempotent WrapperRegistry: each distinct version
// gets exactly one Process wrapper, built on first Get and reused for every
// subsequent unit dispatched against that version. Mirrors the teacher's
// Scheduler.envCache sync.Map pattern for once-per-version resource setup.
type Registry struct {
	inflight sync.Map // normalized version -> *sync.Once
	wrappers sync.Map // normalized version -> ports.CompilerWrapper
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Get returns the CompilerWrapper for version, constructing it on first
// request. version is normalized and matched against the supported wrapper
// families before anything is built; an unrecognized family fails fast with
// ErrUnsupportedVersionError rather than letting a bogus version reach
// exec.CommandContext. Concurrent requests for the same version block on the
// same construction rather than racing duplicate binary lookups.
func (r *Registry) Get(version string, settings json.RawMessage) (ports.CompilerWrapper, error) {
	normalized := normalizeVersion(version)
	if _, ok := familyFor(normalized); !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedVersionError, "no wrapper family matches"), "version", version)
	}

	onceIface, _ := r.inflight.LoadOrStore(normalized, &sync.Once{})
	once := onceIface.(*sync.Once)

	var buildErr error
	once.Do(func() {
		binaryPath, err := ResolveBinaryPath()
		if err != nil {
			buildErr = err
			return
		}
		r.wrappers.Store(normalized, NewProcess(normalized, binaryPath, settings))
	})

	if buildErr != nil {
		r.inflight.Delete(normalized)
		return nil, buildErr
	}

	w, ok := r.wrappers.Load(normalized)
	if !ok {
		return nil, buildErr
	}
	return w.(ports.CompilerWrapper), nil
}
