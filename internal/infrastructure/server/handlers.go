package server

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// IngestRequest is the body of POST /api/v1/ingest.
type IngestRequest struct {
	Repository string `json:"repository" binding:"required"`
	Provider   string `json:"provider"`
	Branch     string `json:"branch"`
	Token      string `json:"token"`
	MaxFiles   int    `json:"max_files"`
}

// ScanRequest is the body of POST /api/v1/scan.
type ScanRequest struct {
	Path string `json:"path" binding:"required"`
}

// GenerateRequest is the body of POST /api/v1/generate.
type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	APIKey string `json:"api_key"`
	Proxy  string `json:"proxy"`
	Model  string `json:"model"`
}

// GenerateResponse carries the generated text.
type GenerateResponse struct {
	Text string `json:"text"`
}

// KeySourceResponse describes where the default generation key comes from.
type KeySourceResponse struct {
	Source string `json:"source"`
}

// LocalGenerateRequest is the body of POST /api/v1/local/generate and
// /api/v1/local/embed. The server address always comes from the config.
type LocalGenerateRequest struct {
	Prompt      string   `json:"prompt" binding:"required"`
	Model       string   `json:"model"`
	NumCtx      *int     `json:"num_ctx"`
	NumPredict  *int     `json:"num_predict"`
	Temperature *float64 `json:"temperature"`
}

// ModelsResponse lists the installed local models.
type ModelsResponse struct {
	Models []string `json:"models"`
}

// EmbeddingResponse carries one embedding vector.
type EmbeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handlers serves the HTTP API on top of the domain commands.
type Handlers struct {
	settings *entities.Settings
	ingest   commands.Ingest
	scan     commands.Scan
	generate commands.Generate
	local    commands.LocalModel
}

// NewHandlers creates the HTTP handlers.
func NewHandlers(
	settings *entities.Settings,
	ingest commands.Ingest,
	scan commands.Scan,
	generate commands.Generate,
	local commands.LocalModel,
) *Handlers {
	return &Handlers{settings: settings, ingest: ingest, scan: scan, generate: generate, local: local}
}

// Health handles GET /health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Message: "Service is running"})
}

// Ingest handles POST /api/v1/ingest.
func (h *Handlers) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	repo, detected, err := entities.ParseRepository(req.Repository)
	if err != nil {
		abortWithBadRequest(c, err)
		return
	}
	provider := req.Provider
	if provider == "" {
		provider = detected
	}
	maxFiles := req.MaxFiles
	if maxFiles == 0 {
		maxFiles = h.settings.Ingest.MaxFiles
	}

	result, err := h.ingest.Execute(c.Request.Context(), h.settings, entities.IngestOptions{
		Provider:   provider,
		Repository: repo.WithBranch(req.Branch),
		Token:      req.Token,
		MaxFiles:   maxFiles,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Scan handles POST /api/v1/scan.
func (h *Handlers) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	if !withinScanRoots(h.settings.Server.ScanRoots, req.Path) {
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
			Error:   "forbidden_path",
			Message: http.StatusText(http.StatusForbidden),
			Details: "path is outside the configured scan roots",
		})
		return
	}

	result, err := h.scan.Execute(c.Request.Context(), req.Path)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Generate handles POST /api/v1/generate.
func (h *Handlers) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return
	}

	text, err := h.generate.Execute(c.Request.Context(), h.settings, commands.GenerateOptions{
		Prompt: req.Prompt,
		APIKey: req.APIKey,
		Proxy:  req.Proxy,
		Model:  req.Model,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, GenerateResponse{Text: text})
}

// KeySource handles GET /api/v1/generate/key-source.
func (h *Handlers) KeySource(c *gin.Context) {
	c.JSON(http.StatusOK, KeySourceResponse{Source: h.generate.KeySource(h.settings)})
}

// LocalStatus handles GET /api/v1/local/status.
func (h *Handlers) LocalStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.local.Status(c.Request.Context(), h.settings, ""))
}

// LocalModels handles GET /api/v1/local/models.
func (h *Handlers) LocalModels(c *gin.Context) {
	models, err := h.local.Models(c.Request.Context(), h.settings, "")
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelsResponse{Models: models})
}

// LocalGenerate handles POST /api/v1/local/generate.
func (h *Handlers) LocalGenerate(c *gin.Context) {
	opts, ok := bindLocalOptions(c)
	if !ok {
		return
	}

	text, err := h.local.Generate(c.Request.Context(), h.settings, opts)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, GenerateResponse{Text: text})
}

// LocalEmbed handles POST /api/v1/local/embed.
func (h *Handlers) LocalEmbed(c *gin.Context) {
	opts, ok := bindLocalOptions(c)
	if !ok {
		return
	}

	vector, err := h.local.Embed(c.Request.Context(), h.settings, opts)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, EmbeddingResponse{Embedding: vector})
}

func bindLocalOptions(c *gin.Context) (commands.LocalModelOptions, bool) {
	var req LocalGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBadRequest(c, err)
		return commands.LocalModelOptions{}, false
	}
	return commands.LocalModelOptions{
		Model:       req.Model,
		Prompt:      req.Prompt,
		NumCtx:      req.NumCtx,
		NumPredict:  req.NumPredict,
		Temperature: req.Temperature,
	}, true
}

// withinScanRoots reports whether path lies inside one of roots. No roots
// means no restriction.
func withinScanRoots(roots []string, path string) bool {
	if len(roots) == 0 {
		return true
	}
	target, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, root := range roots {
		base, absErr := filepath.Abs(root)
		if absErr != nil {
			continue
		}
		rel, relErr := filepath.Rel(base, target)
		if relErr == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
