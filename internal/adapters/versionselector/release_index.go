// Package versionselector implements the §4.D version selector: a cached
// release-index provider and a constraint-satisfying version picker built
// on top of golang.org/x/mod/semver.
package versionselector

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/solcbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

const dirPerm = 0o750

// ReleaseIndexProvider fetches the release index over HTTP and caches it
// verbatim on disk, serving from cache in offline mode or when the network
// fetch fails and a cached copy exists.
type ReleaseIndexProvider struct {
	url       string
	cachePath string
	client    *http.Client
}

// NewReleaseIndexProvider creates a provider that fetches url and caches it
// at cachePath (<contracts_dir>/.solcbuild/cache/releases.json).
func NewReleaseIndexProvider(url, cachePath string) *ReleaseIndexProvider {
	return &ReleaseIndexProvider{
		url:       url,
		cachePath: cachePath,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Load returns the release index, from the network when possible and from
// the on-disk cache when offline is true or the fetch fails and a cache
// entry exists.
func (p *ReleaseIndexProvider) Load(offline bool) (domain.ReleaseIndex, error) {
	if offline {
		index, err := p.loadCache()
		if err != nil {
			return nil, zerr.Wrap(err, "offline mode requires a cached release index")
		}
		return index, nil
	}

	index, fetchErr := p.fetch()
	if fetchErr == nil {
		if err := p.saveCache(index); err != nil {
			return nil, zerr.Wrap(err, "failed to cache release index")
		}
		return index, nil
	}

	cached, cacheErr := p.loadCache()
	if cacheErr != nil {
		return nil, zerr.With(zerr.Wrap(fetchErr, "failed to fetch release index and no cache available"), "url", p.url)
	}
	return cached, nil
}

func (p *ReleaseIndexProvider) fetch() (domain.ReleaseIndex, error) {
	resp, err := p.client.Get(p.url)
	if err != nil {
		return nil, domain.ErrIOError
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.ErrIOError
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.ErrIOError
	}

	var index domain.ReleaseIndex
	if err := json.Unmarshal(body, &index); err != nil {
		return nil, zerr.Wrap(err, "malformed release index")
	}
	return index, nil
}

func (p *ReleaseIndexProvider) loadCache() (domain.ReleaseIndex, error) {
	data, err := os.ReadFile(p.cachePath)
	if err != nil {
		return nil, domain.ErrIOError
	}
	var index domain.ReleaseIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, zerr.Wrap(err, "malformed cached release index")
	}
	return index, nil
}

func (p *ReleaseIndexProvider) saveCache(index domain.ReleaseIndex) error {
	if err := os.MkdirAll(filepath.Dir(p.cachePath), dirPerm); err != nil {
		return err
	}
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.cachePath, data, 0o600)
}
