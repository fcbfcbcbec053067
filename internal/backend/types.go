package backend

import (
	"encoding/json"
	"fmt"
)

// GenerateRequest mirrors the /api/generate body.
type GenerateRequest struct {
	Days  []string `json:"days"`
	Slots []string `json:"slots"`
}

// UploadResult holds the JSON body returned by /api/upload. It is not
// validated beyond being JSON.
type UploadResult struct {
	Raw json.RawMessage
}

// HTTPError is a response from the resolved base with a non-2xx status.
type HTTPError struct {
	Status int
	Detail string
}

func (e *HTTPError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d - %s", e.Status, e.Detail)
}

// MalformedError is a successful response whose body did not parse.
type MalformedError struct {
	Op  string
	Err error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed %s response: %v", e.Op, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }
