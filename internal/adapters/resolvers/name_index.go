package resolvers

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// NameIndex walks the project directory once, builds a basename → path
// index, and matches by basename. It is also the implementation of
// get_all(): every indexed file is a source.
type NameIndex struct {
	root string

	once  sync.Once
	index map[string]string
	all   []string
	err   error
}

// NewNameIndex creates a NameIndex rooted at the contracts directory.
func NewNameIndex(root string) *NameIndex {
	return &NameIndex{root: root}
}

func (r *NameIndex) build() {
	r.index = make(map[string]string)
	_ = filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			r.err = domain.ErrIOError
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" || d.Name() == ".solcbuild" {
				return filepath.SkipDir
			}
			return nil
		}

		basename := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		absolutePath, absErr := filepath.Abs(path)
		if absErr != nil {
			return nil
		}
		if _, exists := r.index[basename]; !exists {
			r.index[basename] = absolutePath
		}
		r.all = append(r.all, absolutePath)
		return nil
	})
	sort.Strings(r.all)
}

func (r *NameIndex) Resolve(name, importingDir string) (domain.ContractSource, error) {
	r.once.Do(r.build)
	if r.err != nil {
		return domain.ContractSource{}, r.err
	}

	basename := strings.TrimSuffix(name, filepath.Ext(name))
	absolutePath, found := r.index[basename]
	if !found {
		return domain.ContractSource{}, ports.ErrNotApplicable
	}

	data, err := os.ReadFile(absolutePath)
	if err != nil {
		return domain.ContractSource{}, domain.ErrIOError
	}

	return domain.ContractSource{
		LogicalPath:  name,
		AbsolutePath: absolutePath,
		SourceText:   string(data),
	}, nil
}

func (r *NameIndex) GetAll() ([]domain.ContractSource, error) {
	r.once.Do(r.build)
	if r.err != nil {
		return nil, r.err
	}

	sources := make([]domain.ContractSource, 0, len(r.all))
	for _, absolutePath := range r.all {
		data, err := os.ReadFile(absolutePath)
		if err != nil {
			return nil, domain.ErrIOError
		}
		sources = append(sources, domain.ContractSource{
			LogicalPath:  strings.TrimSuffix(filepath.Base(absolutePath), filepath.Ext(absolutePath)),
			AbsolutePath: absolutePath,
			SourceText:   string(data),
		})
	}
	return sources, nil
}
