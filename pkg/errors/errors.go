package errors

import "fmt"

// Error codes
const (
	CodeTransport    = "TRANSPORT_ERROR"
	CodeLLM          = "LLM_ERROR"
	CodeMalformed    = "MALFORMED_OUTPUT"
	CodeInsufficient = "INSUFFICIENT_INPUT"
	CodeValidation   = "VALIDATION_ERROR"
)

// AgentError is the base error for the pipeline. Errors of this family are
// advisory: every core stage recovers locally and returns a well-shaped
// value, so these surface only in logs and in the export/delivery layer.
type AgentError struct {
	Message string
	Code    string
	Cause   error
}

func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AgentError) Unwrap() error {
	return e.Cause
}

// TransportError covers scraping and mail network failures.
type TransportError struct {
	*AgentError
}

func NewTransportError(message string, cause error) *TransportError {
	return &TransportError{
		AgentError: &AgentError{
			Message: message,
			Code:    CodeTransport,
			Cause:   cause,
		},
	}
}

// LLMError covers API, auth, and quota failures of the model providers.
type LLMError struct {
	*AgentError
	Provider string
}

func NewLLMError(message, provider string, cause error) *LLMError {
	return &LLMError{
		AgentError: &AgentError{
			Message: message,
			Code:    CodeLLM,
			Cause:   cause,
		},
		Provider: provider,
	}
}

// MalformedOutputError marks an LLM response that was not valid JSON of the
// expected shape. Recovery (regex extraction, then deterministic fallback)
// happens at the call site.
type MalformedOutputError struct {
	*AgentError
	Preview string
}

func NewMalformedOutputError(message, preview string) *MalformedOutputError {
	return &MalformedOutputError{
		AgentError: &AgentError{
			Message: message,
			Code:    CodeMalformed,
		},
		Preview: preview,
	}
}

// InsufficientInputError marks a content bundle too sparse to analyze.
type InsufficientInputError struct {
	*AgentError
	Length int
}

func NewInsufficientInputError(message string, length int) *InsufficientInputError {
	return &InsufficientInputError{
		AgentError: &AgentError{
			Message: message,
			Code:    CodeInsufficient,
		},
		Length: length,
	}
}

// ValidationError covers bad operator input and missing configuration.
type ValidationError struct {
	*AgentError
}

func NewValidationError(message string, cause error) *ValidationError {
	return &ValidationError{
		AgentError: &AgentError{
			Message: message,
			Code:    CodeValidation,
			Cause:   cause,
		},
	}
}
