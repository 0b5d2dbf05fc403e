//go:build unit

package entities_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

func TestDecodeEnvelope(t *testing.T) {
	t.Parallel()

	t.Run("should round-trip text wrapped at sixty characters", func(t *testing.T) {
		t.Parallel()

		// given
		original := strings.Repeat("héllo wörld, ", 20)
		encoded := base64.StdEncoding.EncodeToString([]byte(original))
		var wrapped strings.Builder
		for i := 0; i < len(encoded); i += 60 {
			wrapped.WriteString(encoded[i:min(i+60, len(encoded))])
			wrapped.WriteString("\r\n")
		}

		// when
		text, err := entities.DecodeEnvelope("test", entities.Envelope{Content: wrapped.String(), Encoding: "base64"})

		// then
		require.NoError(t, err)
		assert.Equal(t, original, text)
	})

	t.Run("should treat an empty encoding as base64", func(t *testing.T) {
		t.Parallel()

		// when
		text, err := entities.DecodeEnvelope("test", entities.Envelope{Content: "aGk="})

		// then
		require.NoError(t, err)
		assert.Equal(t, "hi", text)
	})

	t.Run("should replace invalid UTF-8 sequences", func(t *testing.T) {
		t.Parallel()

		// given
		encoded := base64.StdEncoding.EncodeToString([]byte{'a', 0xff, 'b'})

		// when
		text, err := entities.DecodeEnvelope("test", entities.Envelope{Content: encoded, Encoding: "base64"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "a\uFFFDb", text)
	})

	t.Run("should reject an unknown encoding", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.DecodeEnvelope("decoding a.go", entities.Envelope{Content: "x", Encoding: "none"})

		// then
		var decodeErr *entities.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "decoding a.go", decodeErr.Op)
	})

	t.Run("should reject malformed base64", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.DecodeEnvelope("test", entities.Envelope{Content: "@@@", Encoding: "base64"})

		// then
		var decodeErr *entities.DecodeError
		require.ErrorAs(t, err, &decodeErr)
	})
}
