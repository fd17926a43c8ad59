package api

import (
	"alvant-portal/pkg/validation"
	"fmt"
)

// TransportError means no HTTP response was received at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UnexpectedResponseError is a response that is not JSON or cannot be decoded,
// typically a proxy or HTML error page.
type UnexpectedResponseError struct {
	Status      int
	ContentType string
	Err         error
}

func (e *UnexpectedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unexpected response (status %d, %q): %v", e.Status, e.ContentType, e.Err)
	}
	return fmt.Sprintf("unexpected response (status %d, %q)", e.Status, e.ContentType)
}

func (e *UnexpectedResponseError) Unwrap() error {
	return e.Err
}

// RejectionError is a JSON non-2xx: the server understood and refused the request.
type RejectionError struct {
	Status  int
	Message string
	Fields  validation.FieldErrors
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request rejected with status %d", e.Status)
	}
	return fmt.Sprintf("request rejected with status %d: %s", e.Status, e.Message)
}

// StorageUnavailableError is the 503 the API sends when its database is unreachable.
type StorageUnavailableError struct {
	Message string
}

func (e *StorageUnavailableError) Error() string {
	return "storage unavailable: " + e.Message
}
