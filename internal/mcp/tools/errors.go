package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/usestring/videoquery-mcp/pkg/client"
)

// Error codes for MCP tool responses.
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeResearchAPI    = "RESEARCH_API_ERROR"
	ErrCodeTimeout        = "TIMEOUT"
	ErrCodeTransportError = "TRANSPORT_ERROR"
	ErrCodeParseError     = "PARSE_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapResearchError converts a client error into a coded error.
func WrapResearchError(err error) error {
	if err == nil {
		return nil
	}

	var (
		coded        *CodedError
		statusErr    *client.HTTPStatusError
		transportErr *client.TransportError
		parseErr     *client.ParseError
		netErr       net.Error
	)

	switch {
	case errors.As(err, &statusErr):
		code := ErrCodeResearchAPI
		if statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden {
			code = ErrCodeUnauthorized
		}
		coded = &CodedError{
			Code:    code,
			Message: fmt.Sprintf("status %d: %s", statusErr.StatusCode, statusErr.Message()),
			Cause:   err,
		}
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		coded = &CodedError{
			Code:    ErrCodeTimeout,
			Message: "request timed out",
			Cause:   err,
		}
	case errors.As(err, &transportErr):
		coded = &CodedError{
			Code:    ErrCodeTransportError,
			Message: "research API unreachable",
			Cause:   err,
		}
	case errors.As(err, &parseErr):
		coded = &CodedError{
			Code:    ErrCodeParseError,
			Message: "research API returned invalid JSON",
			Cause:   err,
		}
	case errors.Is(err, client.ErrEmptyCredential):
		coded = &CodedError{
			Code:    ErrCodeInvalidInput,
			Message: "access token is not configured",
			Cause:   err,
		}
	default:
		coded = &CodedError{
			Code:    ErrCodeResearchAPI,
			Message: err.Error(),
			Cause:   err,
		}
	}

	slog.Warn("research API error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
