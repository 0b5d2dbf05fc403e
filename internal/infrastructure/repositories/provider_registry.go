package repositories

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repodigest/internal/domain/repositories"
)

// ProviderFactory is a constructor function that creates a ProviderRepository
// from its connection options.
type ProviderFactory func(opts entities.ProviderOptions) (domainRepos.ProviderRepository, error)

// ProviderRegistry manages all registered hosting provider implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "github").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name.
func (r *ProviderRegistry) Get(name string, opts entities.ProviderOptions) (domainRepos.ProviderRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, &entities.ConfigurationError{
			Setting: "provider",
			Message: fmt.Sprintf("unknown provider type %q (available: %s)", name, strings.Join(r.Names(), ", ")),
		}
	}
	return factory(opts)
}

// Names returns the sorted list of registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
