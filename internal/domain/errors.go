package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to wire codes without leaking infrastructure details.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrBadRequest        = errors.New("bad request")
	ErrAlreadyRegistered = errors.New("already registered")
	ErrTokenNotFound     = errors.New("activation token not found")
	ErrTokenExpired      = errors.New("activation token expired")
	ErrCodeMismatch      = errors.New("activation code mismatch")
	ErrDeliveryFailed    = errors.New("delivery failed")
)

// ErrorCode is the transport-agnostic code reported to callers.
type ErrorCode string

const (
	CodeBadRequest        ErrorCode = "BAD_REQUEST"
	CodeAlreadyRegistered ErrorCode = "ALREADY_REGISTERED"
	CodeTokenNotFound     ErrorCode = "TOKEN_NOT_FOUND"
	CodeTokenExpired      ErrorCode = "TOKEN_EXPIRED"
	CodeCodeMismatch      ErrorCode = "CODE_MISMATCH"
	CodeDeliveryFailed    ErrorCode = "DELIVERY_FAILED"
	CodeInternal          ErrorCode = "INTERNAL"
)

// CodeOf maps err to exactly one ErrorCode. Unrecognised errors, including
// store failures, are INTERNAL. A nil error has no code.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBadRequest):
		return CodeBadRequest
	case errors.Is(err, ErrAlreadyRegistered):
		return CodeAlreadyRegistered
	case errors.Is(err, ErrTokenNotFound):
		return CodeTokenNotFound
	case errors.Is(err, ErrTokenExpired):
		return CodeTokenExpired
	case errors.Is(err, ErrCodeMismatch):
		return CodeCodeMismatch
	case errors.Is(err, ErrDeliveryFailed):
		return CodeDeliveryFailed
	default:
		return CodeInternal
	}
}
