// Package protocol provides the message types exchanged with status clients.
// This package is designed to be importable without pulling in server dependencies.
package protocol

// StatusPayload is the reader availability reported to clients. It carries
// exactly the fields of nfc.Status so UI layers can parse either.
type StatusPayload struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// HealthResponse is the response structure for the GET /api/v1/health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Version   string `json:"version,omitempty"`
}

// Error codes carried in error response payloads
const (
	ErrCodeParseError    = "PARSE_ERROR"
	ErrCodeUnknownType   = "UNKNOWN_TYPE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// ErrorPayload is the payload of an error response.
type ErrorPayload struct {
	Code string `json:"code"`
}
