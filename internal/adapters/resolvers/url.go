package resolvers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/solcbuild/internal/core/ports"
)

// URL fetches names of the form http(s)://... over the network. Offline
// mode makes it non-applicable rather than erroring, so the chain falls
// through to whatever local strategy can still serve the name.
type URL struct {
	client  *http.Client
	offline bool
}

// NewURL creates a URL resolver.
func NewURL(offline bool) *URL {
	return &URL{client: &http.Client{Timeout: 30 * time.Second}, offline: offline}
}

func (r *URL) Resolve(name, importingDir string) (domain.ContractSource, error) {
	if !strings.HasPrefix(name, "http://") && !strings.HasPrefix(name, "https://") {
		return domain.ContractSource{}, ports.ErrNotApplicable
	}
	if r.offline {
		return domain.ContractSource{}, ports.ErrNotApplicable
	}

	resp, err := r.client.Get(name)
	if err != nil {
		return domain.ContractSource{}, domain.ErrIOError
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ContractSource{}, domain.ErrIOError
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ContractSource{}, domain.ErrIOError
	}

	return domain.ContractSource{
		LogicalPath:  name,
		AbsolutePath: name,
		SourceText:   string(body),
	}, nil
}

func (r *URL) GetAll() ([]domain.ContractSource, error) {
	return nil, nil
}
