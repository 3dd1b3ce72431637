// Package scanner implements the §4.B lexical source scanner: pragma
// version-constraint extraction and import-statement extraction. It is
// deliberately not a full parser and tolerates arbitrary comments.
package scanner

import (
	"regexp"
	"strings"

	"go.trai.ch/solcbuild/internal/core/domain"
)

var (
	pragmaPattern = regexp.MustCompile(`pragma\s+\w+\s+([^;]+);`)
	importPattern = regexp.MustCompile(`import\s+(?:[^"']*["'])([^"']+)["']`)
)

// Scanner is the default lexical Scanner implementation.
type Scanner struct{}

// New creates a Scanner.
func New() *Scanner {
	return &Scanner{}
}

// VersionConstraint extracts the range expression from every pragma
// directive of the form "pragma <family> <range>;". Multiple pragmas within
// one file are intersected.
func (s *Scanner) VersionConstraint(sourceText string) domain.VersionConstraint {
	matches := pragmaPattern.FindAllStringSubmatch(sourceText, -1)
	if matches == nil {
		return ""
	}

	var constraint domain.VersionConstraint
	for _, m := range matches {
		constraint = constraint.Intersect(domain.VersionConstraint(strings.TrimSpace(m[1])))
	}
	return constraint
}

// Imports extracts every textual import reference, in source order.
func (s *Scanner) Imports(sourceText string) []string {
	matches := importPattern.FindAllStringSubmatch(sourceText, -1)
	if matches == nil {
		return nil
	}

	imports := make([]string, 0, len(matches))
	for _, m := range matches {
		imports = append(imports, m[1])
	}
	return imports
}
