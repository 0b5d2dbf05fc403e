package entities

import "time"

// LocalModelEndpoint addresses an Ollama-compatible server.
type LocalModelEndpoint struct {
	BaseURL string
	Timeout time.Duration
}

// LocalModelStatus reports whether the local model server answered.
type LocalModelStatus struct {
	BaseURL   string `json:"base_url"`
	Reachable bool   `json:"reachable"`
	Error     string `json:"error,omitempty"`
}

// LocalGenerationRequest is one non-streaming completion against a local model.
// Nil options are left to the server defaults.
type LocalGenerationRequest struct {
	Endpoint    LocalModelEndpoint
	Model       string
	Prompt      string
	NumCtx      *int
	NumPredict  *int
	Temperature *float64
}

// EmbeddingRequest asks a local model for the embedding vector of Prompt.
type EmbeddingRequest struct {
	Endpoint LocalModelEndpoint
	Model    string
	Prompt   string
}
