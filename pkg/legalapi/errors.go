package legalapi

import (
	"errors"
	"fmt"
	"strings"
)

// APIError is a non-2xx response. Body is the raw response text; it is not
// assumed to be structured.
type APIError struct {
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("%s: status %d: %s", e.Path, e.Status, e.Body)
}

// ErrorMessage reduces err to the single string shown to the user: the raw
// body of a failed response, or fallback when that body is empty. Any other
// error yields its own message.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if strings.TrimSpace(apiErr.Body) == "" {
			return fallback
		}
		return apiErr.Body
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
