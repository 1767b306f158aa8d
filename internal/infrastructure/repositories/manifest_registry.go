package repositories

import (
	domainRepos "github.com/rios0rios0/rangewriter/internal/domain/repositories"
)

// ManifestRegistry manages all registered manifest adapters.
// Lookups by path try adapters in registration order.
type ManifestRegistry struct {
	manifests []domainRepos.ManifestRepository
	byName    map[string]domainRepos.ManifestRepository
}

// NewManifestRegistry creates an empty manifest registry.
func NewManifestRegistry() *ManifestRegistry {
	return &ManifestRegistry{
		byName: make(map[string]domainRepos.ManifestRepository),
	}
}

// Register adds an adapter under its name, replacing any previous one.
func (r *ManifestRegistry) Register(m domainRepos.ManifestRepository) {
	if _, exists := r.byName[m.Name()]; exists {
		for i, existing := range r.manifests {
			if existing.Name() == m.Name() {
				r.manifests[i] = m
			}
		}
	} else {
		r.manifests = append(r.manifests, m)
	}
	r.byName[m.Name()] = m
}

// Get returns the adapter with the given name, or nil if not registered.
func (r *ManifestRegistry) Get(name string) domainRepos.ManifestRepository {
	return r.byName[name]
}

// For returns the first adapter supporting path, or nil.
func (r *ManifestRegistry) For(path string) domainRepos.ManifestRepository {
	for _, m := range r.manifests {
		if m.Supports(path) {
			return m
		}
	}
	return nil
}

// Supports reports whether any adapter handles path.
func (r *ManifestRegistry) Supports(path string) bool {
	return r.For(path) != nil
}

// All returns every registered adapter in registration order.
func (r *ManifestRegistry) All() []domainRepos.ManifestRepository {
	result := make([]domainRepos.ManifestRepository, len(r.manifests))
	copy(result, r.manifests)
	return result
}

// Names returns the registered adapter names in registration order.
func (r *ManifestRegistry) Names() []string {
	names := make([]string, 0, len(r.manifests))
	for _, m := range r.manifests {
		names = append(names, m.Name())
	}
	return names
}
