package types

// SuccessEnvelope wraps every 2xx payload served to the storefront.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the public shape of a failed pricing or catalog call.
// Retryable mirrors the error code metadata so the UI knows whether to
// offer a retry instead of asking the customer to change the selection.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
