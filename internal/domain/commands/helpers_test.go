//go:build unit

package commands_test

import (
	"encoding/base64"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

func envelopeOf(text string) entities.Envelope {
	return entities.Envelope{Content: base64.StdEncoding.EncodeToString([]byte(text)), Encoding: "base64"}
}
