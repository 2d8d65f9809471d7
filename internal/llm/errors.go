package llm

import (
	"errors"
	"fmt"
)

// GenerationError reports a failure from the generation backend, carrying
// the backend's status and detail so callers can surface them verbatim.
// Providers never retry; retry policy belongs to the caller.
type GenerationError struct {
	Provider   string
	StatusCode int
	Detail     string
}

func (e *GenerationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s generation failed (status %d): %s", e.Provider, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s generation failed: %s", e.Provider, e.Detail)
}

// AsGenerationError unwraps err into a *GenerationError if it carries one.
func AsGenerationError(err error) (*GenerationError, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr, true
	}
	return nil, false
}
