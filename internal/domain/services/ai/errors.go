package ai

import (
	"errors"
	"fmt"
)

// ErrAPIKeyMissing indicates the Groq API key is absent or does not carry
// the expected "gsk_" prefix. Analysis endpoints degrade to 503 while the
// health check keeps reporting the condition.
var ErrAPIKeyMissing = errors.New("groq API key is missing or invalid")

// ModelError records a failed completion attempt against a single model
// candidate. The caller advances to the next candidate in the list.
type ModelError struct {
	Model string
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Model, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// ExhaustedError indicates every model candidate failed. It is fatal for
// the request and surfaces as a 500 with the last underlying error's text.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d models failed, last error: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }
