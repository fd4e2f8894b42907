package api

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrProductNotFound = errors.New("product not found")
	// ErrUnexpectedPayload means the response did not match the documented
	// contract. It is a backend bug; the client does not guess at other shapes.
	ErrUnexpectedPayload = errors.New("unexpected response payload")
)

// APIError is a non-2xx response from the storefront API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}
