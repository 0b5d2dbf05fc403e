package server

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// statusFor maps the domain error taxonomy onto HTTP statuses.
func statusFor(err error) (int, string) {
	var cfgErr *entities.ConfigurationError
	if errors.As(err, &cfgErr) {
		return http.StatusBadRequest, "configuration_error"
	}

	var statusErr *entities.UpstreamStatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound, "not_found"
		}
		return http.StatusBadGateway, "upstream_error"
	}

	var transportErr *entities.TransportError
	var decodeErr *entities.DecodeError
	if errors.As(err, &transportErr) || errors.As(err, &decodeErr) {
		return http.StatusBadGateway, "upstream_error"
	}

	if errors.Is(err, fs.ErrNotExist) {
		return http.StatusBadRequest, "invalid_path"
	}

	return http.StatusInternalServerError, "internal_error"
}

func abortWithError(c *gin.Context, err error) {
	status, code := statusFor(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:   code,
		Message: http.StatusText(status),
		Details: err.Error(),
	})
}

func abortWithBadRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_request",
		Message: "Invalid request body",
		Details: err.Error(),
	})
}
