package controller

import "fmt"

// ModelError wraps a transport or auth failure talking to the model service.
// These are fatal to the query and never retried here.
type ModelError struct {
	Err error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model request failed: %v", e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }
