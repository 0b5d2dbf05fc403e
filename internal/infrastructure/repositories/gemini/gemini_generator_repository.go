package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
	"github.com/rios0rios0/repodigest/internal/infrastructure/httpclient"
)

var errEmptyResponse = errors.New("response has no candidates")

// GeneratorRepository calls the Gemini API through the genai SDK. A client is
// built per call since key, proxy and timeout may differ between requests.
type GeneratorRepository struct {
	baseURL string
}

// NewGeneratorRepository creates a generator bound to the public Gemini API.
func NewGeneratorRepository() repositories.GeneratorRepository {
	return &GeneratorRepository{}
}

func (g *GeneratorRepository) Generate(ctx context.Context, req entities.GenerationRequest) (string, error) {
	op := "generating content with " + req.Model

	httpClient, err := httpclient.New(httpclient.Options{Timeout: req.Timeout, Proxy: req.Proxy})
	if err != nil {
		return "", &entities.ConfigurationError{Setting: "proxy", Message: err.Error()}
	}

	cfg := &genai.ClientConfig{
		APIKey:     req.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if g.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", &entities.ConfigurationError{Setting: "api_key", Message: err.Error()}
	}

	logger.Debugf("Sending %d prompt characters to %s", len(req.Prompt), req.Model)
	resp, err := client.Models.GenerateContent(ctx, req.Model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.Prompt}}}},
		nil,
	)
	if err != nil {
		return "", handleGenaiError(op, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &entities.DecodeError{Op: op, Err: errEmptyResponse}
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

func handleGenaiError(op string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &entities.UpstreamStatusError{Op: op, StatusCode: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &entities.UpstreamStatusError{Op: op, StatusCode: apiErrPtr.Code, Body: apiErrPtr.Message}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &entities.TransportError{Op: op, Err: err}
	}
	return &entities.TransportError{Op: op, Err: fmt.Errorf("request failed: %w", err)}
}
