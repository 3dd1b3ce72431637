// Package resolvers implements the §4.A fallthrough resolver chain: a
// fixed sequence of strategies, each either returning a resolved source or
// ports.ErrNotApplicable so the chain can fall through to the next one.
package resolvers

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// ProjectRelative resolves "./"/"../"-prefixed names and bare relative
// names against the importing file's directory.
type ProjectRelative struct{}

// NewProjectRelative creates a ProjectRelative resolver.
func NewProjectRelative() *ProjectRelative {
	return &ProjectRelative{}
}

func (r *ProjectRelative) Resolve(name, importingDir string) (domain.ContractSource, error) {
	if strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://") {
		return domain.ContractSource{}, ports.ErrNotApplicable
	}
	if filepath.IsAbs(name) {
		return domain.ContractSource{}, ports.ErrNotApplicable
	}
	if strings.HasPrefix(name, "@") {
		return domain.ContractSource{}, ports.ErrNotApplicable
	}

	absolutePath := filepath.Clean(filepath.Join(importingDir, name))
	data, err := os.ReadFile(absolutePath)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ContractSource{}, ports.ErrNotApplicable
		}
		return domain.ContractSource{}, domain.ErrIOError
	}

	return domain.ContractSource{
		LogicalPath:  name,
		AbsolutePath: absolutePath,
		SourceText:   string(data),
	}, nil
}

func (r *ProjectRelative) GetAll() ([]domain.ContractSource, error) {
	return nil, nil
}
