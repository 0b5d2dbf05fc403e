package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
	"github.com/rios0rios0/repodigest/internal/infrastructure/httpclient"
)

const (
	tagsPath       = "/api/tags"
	generatePath   = "/api/generate"
	embeddingsPath = "/api/embeddings"

	defaultRetryMax = 2
	retryWaitMin    = 200 * time.Millisecond
	retryWaitMax    = time.Second
	maxErrorBody    = 4 << 10
)

var errMissingEmbedding = errors.New(`response has no "embedding" field`)

// LocalModelRepository calls an Ollama server over its REST API. Requests
// that fail with a connection error or a 5xx status are retried.
type LocalModelRepository struct {
	retryMax int
}

// NewLocalModelRepository creates a repository for Ollama-compatible servers.
func NewLocalModelRepository() repositories.LocalModelRepository {
	return &LocalModelRepository{retryMax: defaultRetryMax}
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding *[]float32 `json:"embedding"`
}

func (r *LocalModelRepository) Ping(ctx context.Context, endpoint entities.LocalModelEndpoint) error {
	op := "checking local model server " + endpoint.BaseURL

	resp, err := r.do(ctx, endpoint, http.MethodGet, tagsPath, nil)
	if err != nil {
		return &entities.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &entities.UpstreamStatusError{Op: op, StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}
	return nil
}

func (r *LocalModelRepository) ListModels(
	ctx context.Context,
	endpoint entities.LocalModelEndpoint,
) ([]string, error) {
	op := "listing local models"

	resp, err := r.do(ctx, endpoint, http.MethodGet, tagsPath, nil)
	if err != nil {
		return nil, &entities.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warnf("Local model server answered %d to %s, reporting no models", resp.StatusCode, tagsPath)
		return []string{}, nil
	}

	var tags tagsResponse
	if err = json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, &entities.DecodeError{Op: op, Err: err}
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func (r *LocalModelRepository) Generate(ctx context.Context, req entities.LocalGenerationRequest) (string, error) {
	op := "generating with local model " + req.Model

	options := map[string]any{}
	if req.NumCtx != nil {
		options["num_ctx"] = *req.NumCtx
	}
	if req.NumPredict != nil {
		options["num_predict"] = *req.NumPredict
	}
	if req.Temperature != nil {
		options["temperature"] = *req.Temperature
	}

	body, err := json.Marshal(generateRequest{Model: req.Model, Prompt: req.Prompt, Options: options})
	if err != nil {
		return "", &entities.DecodeError{Op: op, Err: err}
	}

	logger.Debugf("Sending %d prompt characters to %s at %s", len(req.Prompt), req.Model, req.Endpoint.BaseURL)
	resp, err := r.do(ctx, req.Endpoint, http.MethodPost, generatePath, body)
	if err != nil {
		return "", &entities.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &entities.UpstreamStatusError{Op: op, StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	var out generateResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &entities.DecodeError{Op: op, Err: err}
	}
	return out.Response, nil
}

func (r *LocalModelRepository) Embed(ctx context.Context, req entities.EmbeddingRequest) ([]float32, error) {
	op := "embedding with local model " + req.Model

	body, err := json.Marshal(embeddingRequest{Model: req.Model, Prompt: req.Prompt})
	if err != nil {
		return nil, &entities.DecodeError{Op: op, Err: err}
	}

	resp, err := r.do(ctx, req.Endpoint, http.MethodPost, embeddingsPath, body)
	if err != nil {
		return nil, &entities.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &entities.UpstreamStatusError{Op: op, StatusCode: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	var out embeddingResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &entities.DecodeError{Op: op, Err: err}
	}
	if out.Embedding == nil {
		return nil, &entities.DecodeError{Op: op, Err: errMissingEmbedding}
	}
	return *out.Embedding, nil
}

// do sends one request through a retrying client built for the endpoint.
func (r *LocalModelRepository) do(
	ctx context.Context,
	endpoint entities.LocalModelEndpoint,
	method, path string,
	body []byte,
) (*http.Response, error) {
	httpClient, err := httpclient.New(httpclient.Options{Timeout: endpoint.Timeout})
	if err != nil {
		return nil, err
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = httpClient
	client.RetryMax = r.retryMax
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.Logger = debugLogger{}
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	var rawBody any
	if body != nil {
		rawBody = body
	}
	url := strings.TrimRight(endpoint.BaseURL, "/") + path
	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, rawBody)
	if err != nil {
		return nil, fmt.Errorf("invalid local model address %q: %w", endpoint.BaseURL, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return client.Do(req)
}

func readErrorBody(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
	return strings.TrimSpace(string(data))
}

// debugLogger sends the retry client's request log to logrus at debug level.
type debugLogger struct{}

func (debugLogger) Printf(format string, args ...any) {
	logger.Debugf(format, args...)
}
