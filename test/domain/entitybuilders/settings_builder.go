//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// SettingsBuilder helps create settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	settings entities.Settings
}

// NewSettingsBuilder creates a builder starting from the default settings.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		settings:    *entities.DefaultSettings(),
	}
}

// WithProvider adds a provider block.
func (b *SettingsBuilder) WithProvider(providerType, token string) *SettingsBuilder {
	b.settings.Providers = append(b.settings.Providers, entities.ProviderConfig{Type: providerType, Token: token})
	return b
}

// WithConcurrency sets the fetch pool size.
func (b *SettingsBuilder) WithConcurrency(n int) *SettingsBuilder {
	b.settings.Ingest.Concurrency = n
	return b
}

// WithRequestTimeout sets the per-request timeout.
func (b *SettingsBuilder) WithRequestTimeout(d time.Duration) *SettingsBuilder {
	b.settings.Ingest.RequestTimeout = d
	return b
}

// WithGeneratorKey sets the configured generation key.
func (b *SettingsBuilder) WithGeneratorKey(key string) *SettingsBuilder {
	b.settings.Generator.APIKey = key
	return b
}

// WithGeneratorProxy sets the configured generation proxy.
func (b *SettingsBuilder) WithGeneratorProxy(proxy string) *SettingsBuilder {
	b.settings.Generator.Proxy = proxy
	return b
}

// WithLocalModel sets the local model server address and default model.
func (b *SettingsBuilder) WithLocalModel(baseURL, model string) *SettingsBuilder {
	b.settings.LocalModel.BaseURL = baseURL
	b.settings.LocalModel.Model = model
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	s := b.settings
	s.Providers = append([]entities.ProviderConfig(nil), b.settings.Providers...)
	return &s
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.settings = *entities.DefaultSettings()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		settings:    *b.BuildSettings(),
	}
}
