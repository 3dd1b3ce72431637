package versionselector

import (
	"strings"

	"go.trai.ch/solcbuild/internal/core/domain"
	"golang.org/x/mod/semver"
)

// Selector is the default VersionSelector implementation.
type Selector struct{}

// New creates a Selector.
func New() *Selector {
	return &Selector{}
}

// Select implements spec §4.D's policy: an explicit pin (after stripping
// any leading "v") wins outright; otherwise the maximum short version in
// index that satisfies constraint is chosen.
func (s *Selector) Select(constraint domain.VersionConstraint, index domain.ReleaseIndex, pin string) (string, error) {
	if pin != "" {
		return strings.TrimPrefix(pin, "v"), nil
	}

	var best string
	var bestFull string
	for short, full := range index {
		if !satisfies(short, constraint) {
			continue
		}
		if best == "" || semver.Compare(canonical(short), canonical(best)) > 0 {
			best = short
			bestFull = full
		}
	}

	if best == "" {
		return "", domain.ErrUnsatisfiableVersionError
	}
	return strings.TrimPrefix(bestFull, "v"), nil
}

// canonical prefixes a bare "X.Y.Z" short version with "v" so
// golang.org/x/mod/semver (which requires the leading "v") can compare it.
func canonical(short string) string {
	if strings.HasPrefix(short, "v") {
		return short
	}
	return "v" + short
}

// satisfies evaluates a space-separated, implicitly-AND'd list of range
// terms against a short version. An empty constraint is satisfied by every
// version (spec §3, VersionConstraint.IsEmpty).
func satisfies(short string, constraint domain.VersionConstraint) bool {
	if constraint.IsEmpty() {
		return true
	}

	v := canonical(short)
	for _, term := range strings.Fields(string(constraint)) {
		if !satisfiesTerm(v, term) {
			return false
		}
	}
	return true
}

func satisfiesTerm(v, term string) bool {
	switch {
	case strings.HasPrefix(term, "^"):
		return satisfiesCaret(v, canonical(strings.TrimPrefix(term, "^")))
	case strings.HasPrefix(term, "~"):
		return satisfiesTilde(v, canonical(strings.TrimPrefix(term, "~")))
	case strings.HasPrefix(term, ">="):
		return semver.Compare(v, canonical(strings.TrimPrefix(term, ">="))) >= 0
	case strings.HasPrefix(term, "<="):
		return semver.Compare(v, canonical(strings.TrimPrefix(term, "<="))) <= 0
	case strings.HasPrefix(term, ">"):
		return semver.Compare(v, canonical(strings.TrimPrefix(term, ">"))) > 0
	case strings.HasPrefix(term, "<"):
		return semver.Compare(v, canonical(strings.TrimPrefix(term, "<"))) < 0
	case strings.HasPrefix(term, "="):
		return semver.Compare(v, canonical(strings.TrimPrefix(term, "="))) == 0
	default:
		return semver.Compare(v, canonical(term)) == 0
	}
}

// satisfiesCaret implements "^": changes that do not modify the leftmost
// non-zero component of the requested version are allowed. For a requested
// major of 0, this narrows to the minor (or patch, if minor is also 0).
func satisfiesCaret(v, requested string) bool {
	if semver.Compare(v, requested) < 0 {
		return false
	}
	reqMajor := semver.Major(requested)
	if reqMajor != "v0" {
		return semver.Major(v) == reqMajor
	}
	reqMinor := semver.MajorMinor(requested)
	if reqMinor != "v0.0" {
		return semver.MajorMinor(v) == reqMinor
	}
	return semver.Compare(v, requested) == 0
}

// satisfiesTilde implements "~": patch-level changes are allowed when a
// minor is specified; otherwise minor-level changes are allowed.
func satisfiesTilde(v, requested string) bool {
	if semver.Compare(v, requested) < 0 {
		return false
	}
	if !strings.Contains(strings.TrimPrefix(requested, "v"), ".") {
		return semver.Major(v) == semver.Major(requested)
	}
	return semver.MajorMinor(v) == semver.MajorMinor(requested)
}
