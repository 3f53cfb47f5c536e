package privacy

import (
	"context"
	"sync"

	"github.com/nao1215/mediaredact/internal/model"
)

// Registry is an in-memory Resolver, typically filled from the configuration file.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	sites map[string]map[string]model.Site // domain -> path -> site
}

// NewRegistry creates a registry holding sites.
func NewRegistry(sites ...model.Site) *Registry {
	r := &Registry{sites: make(map[string]map[string]model.Site)}
	for _, s := range sites {
		r.Add(s)
	}
	return r
}

// Add registers or replaces a site. Domain and path are normalized.
func (r *Registry) Add(site model.Site) {
	site.Domain = model.NormalizeDomain(site.Domain)
	site.Path = model.NormalizeSitePath(site.Path)

	r.mu.Lock()
	defer r.mu.Unlock()
	paths, ok := r.sites[site.Domain]
	if !ok {
		paths = make(map[string]model.Site)
		r.sites[site.Domain] = paths
	}
	paths[site.Path] = site
}

// Len returns the number of registered sites.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, paths := range r.sites {
		n += len(paths)
	}
	return n
}

// ResolveSite implements Resolver. The deepest registered path wins; the
// exact host is preferred over its "www."-less form at equal depth.
func (r *Registry) ResolveSite(_ context.Context, host, path string) (*model.Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	domains := model.LookupDomains(host)
	for _, candidate := range model.LookupPaths(path) {
		for _, domain := range domains {
			if site, ok := r.sites[domain][candidate]; ok {
				return &site, nil
			}
		}
	}
	return nil, nil
}
