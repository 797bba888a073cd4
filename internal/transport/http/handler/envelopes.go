package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/itsharenotes/signup/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
	Code    domain.ErrorCode `json:"code,omitempty"`
}

// ActivationEnvelope wraps activation responses.
type ActivationEnvelope struct {
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// AccountEnvelope wraps registration responses.
type AccountEnvelope struct {
	ID         string      `json:"id"`
	Identifier string      `json:"identifier"`
	Kind       domain.Kind `json:"kind"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code domain.ErrorCode, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusBadRequest, domain.CodeBadRequest, msg)
}

var statusByCode = map[domain.ErrorCode]int{
	domain.CodeBadRequest:        http.StatusBadRequest,
	domain.CodeAlreadyRegistered: http.StatusConflict,
	domain.CodeTokenNotFound:     http.StatusNotFound,
	domain.CodeTokenExpired:      http.StatusGone,
	domain.CodeCodeMismatch:      http.StatusUnprocessableEntity,
	domain.CodeDeliveryFailed:    http.StatusBadGateway,
	domain.CodeInternal:          http.StatusInternalServerError,
}

// httpError maps a service error to its status and wire code. Internal
// failures are logged and replaced with a generic message.
func httpError(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	msg := err.Error()
	switch code {
	case domain.CodeInternal:
		slog.Error("request failed", "err", err)
		msg = "internal error"
	case domain.CodeDeliveryFailed:
		msg = "could not deliver the activation code, try again later"
	default:
		msg = publicMessage(err)
	}
	writeError(w, status, code, msg)
}

// publicMessage strips the wrapped sentinel so callers see the service's
// own wording, e.g. "activation code expired at ...".
func publicMessage(err error) string {
	if inner := errors.Unwrap(err); inner != nil {
		msg := err.Error()
		if suffix := ": " + inner.Error(); len(msg) > len(suffix) && msg[len(msg)-len(suffix):] == suffix {
			return msg[:len(msg)-len(suffix)]
		}
	}
	return err.Error()
}
