package entities

import (
	"fmt"
	"strings"
)

// TransportError is a network or connection failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error: %s", e.Op, causeChain(e.Err))
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamStatusError is a non-success HTTP status from the hosting API.
type UpstreamStatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *UpstreamStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: upstream returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: upstream returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

// DecodeError is a malformed JSON payload or content envelope.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode error: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ConfigurationError is a missing or invalid required setting.
type ConfigurationError struct {
	Setting string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %s", e.Setting, e.Message)
}

// StageError labels a fatal ingestion failure with the stage it happened in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// causeChain renders an error followed by every wrapped cause.
func causeChain(err error) string {
	if err == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString(err.Error())
	for cause := unwrapOnce(err); cause != nil; cause = unwrapOnce(cause) {
		b.WriteString(" | Caused by: ")
		b.WriteString(cause.Error())
	}
	return b.String()
}

func unwrapOnce(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
