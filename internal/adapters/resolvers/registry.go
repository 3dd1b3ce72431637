package resolvers

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// Registry resolves names with a bare package prefix ("@scope/name/...")
// under a configured registry root, mirroring how a dependency-registry
// cache (e.g. npm's node_modules) lays packages out.
type Registry struct {
	root string
}

// NewRegistry creates a Registry resolver rooted at root
// (<contracts_dir>/.solcbuild/registry).
func NewRegistry(root string) *Registry {
	return &Registry{root: root}
}

func (r *Registry) Resolve(name, importingDir string) (domain.ContractSource, error) {
	if !strings.HasPrefix(name, "@") {
		return domain.ContractSource{}, ports.ErrNotApplicable
	}

	absolutePath := filepath.Join(r.root, name)
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

func (r *Registry) GetAll() ([]domain.ContractSource, error) {
	return nil, nil
}
