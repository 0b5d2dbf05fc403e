package entities

import "time"

// GenerationRequest is one call to the hosted generation API.
type GenerationRequest struct {
	Prompt  string
	APIKey  string
	Model   string
	Proxy   string
	Timeout time.Duration
}
