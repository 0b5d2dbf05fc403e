package entities

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const base64Encoding = "base64"

// DecodeEnvelope turns a hosting API content envelope into UTF-8 text.
// Invalid byte sequences are replaced, so decoding never fails on content.
func DecodeEnvelope(op string, env Envelope) (string, error) {
	if env.Encoding != "" && env.Encoding != base64Encoding {
		return "", &DecodeError{Op: op, Err: fmt.Errorf("unsupported content encoding %q", env.Encoding)}
	}

	text, err := DecodeBase64Text(env.Content)
	if err != nil {
		return "", &DecodeError{Op: op, Err: err}
	}
	return text, nil
}

// DecodeBase64Text strips embedded line breaks and decodes standard base64.
func DecodeBase64Text(content string) (string, error) {
	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(content)
	raw, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(raw), "\uFFFD"), nil
}
