package entities

import "time"

// ProviderOptions configures a provider client for one ingestion.
type ProviderOptions struct {
	Token   string
	BaseURL string
	Proxy   string
	Timeout time.Duration
}

// ProviderOptionsFor builds the client options of a provider from settings
// and an optional explicit token.
func (s *Settings) ProviderOptionsFor(providerType, token string) ProviderOptions {
	return ProviderOptions{
		Token:   s.TokenFor(providerType, token),
		BaseURL: s.Provider(providerType).BaseURL,
		Proxy:   s.Ingest.Proxy,
		Timeout: s.Ingest.ClientTimeout,
	}
}
