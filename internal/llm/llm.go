package llm

import (
	"context"
	"errors"
)

// Client is the minimal surface every model provider implements.
type Client interface {
	// Complete sends a prompt and returns the raw text response.
	Complete(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrNoJSONFound means the model response contained no JSON object.
	ErrNoJSONFound = errors.New("no json object in model response")
	// ErrMalformedJSON means a JSON candidate was found but did not parse.
	ErrMalformedJSON = errors.New("malformed json in model response")
	// ErrSchemaViolation means the JSON parsed but missed required fields
	// or carried wrong types.
	ErrSchemaViolation = errors.New("model response violates expected schema")
	// ErrProviderTimeout means the provider did not answer within the
	// configured deadline.
	ErrProviderTimeout = errors.New("model provider timed out")
)

// ClassifyTimeout maps context deadline errors onto ErrProviderTimeout so
// callers see a single provider-timeout error regardless of provider.
func ClassifyTimeout(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrProviderTimeout
	}
	return err
}
