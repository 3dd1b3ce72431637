package resolvers

import (
	"os"
	"path/filepath"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// Absolute resolves names that are themselves absolute filesystem paths.
type Absolute struct{}

// NewAbsolute creates an Absolute resolver.
func NewAbsolute() *Absolute {
	return &Absolute{}
}

func (r *Absolute) Resolve(name, importingDir string) (domain.ContractSource, error) {
	if !filepath.IsAbs(name) {
		return domain.ContractSource{}, ports.ErrNotApplicable
	}

	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ContractSource{}, ports.ErrNotApplicable
		}
		return domain.ContractSource{}, domain.ErrIOError
	}

	return domain.ContractSource{
		LogicalPath:  name,
		AbsolutePath: filepath.Clean(name),
		SourceText:   string(data),
	}, nil
}

func (r *Absolute) GetAll() ([]domain.ContractSource, error) {
	return nil, nil
}
