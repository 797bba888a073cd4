package handler

import (
	"encoding/json"
	"net/http"

	"github.com/itsharenotes/signup/internal/application/activation"
	"github.com/itsharenotes/signup/internal/domain"
	"github.com/itsharenotes/signup/internal/pkg/validate"
)

// ActivationHandler serves the code issuance endpoints.
type ActivationHandler struct {
	svc activation.Service
}

func NewActivationHandler(svc activation.Service) *ActivationHandler {
	return &ActivationHandler{svc: svc}
}

type emailActivateRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type phoneActivateRequest struct {
	Phone string `json:"phone" validate:"required,cnphone"`
}

// Request accepts either identifier kind.
func (h *ActivationHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req domain.ActivationRequest
	if !decode(w, r, &req) {
		return
	}
	h.request(w, r, req)
}

func (h *ActivationHandler) Email(w http.ResponseWriter, r *http.Request) {
	var body emailActivateRequest
	if !decode(w, r, &body) {
		return
	}
	h.request(w, r, domain.ActivationRequest{Identifier: body.Email})
}

func (h *ActivationHandler) Phone(w http.ResponseWriter, r *http.Request) {
	var body phoneActivateRequest
	if !decode(w, r, &body) {
		return
	}
	h.request(w, r, domain.ActivationRequest{Identifier: body.Phone})
}

func (h *ActivationHandler) request(w http.ResponseWriter, r *http.Request, req domain.ActivationRequest) {
	res, err := h.svc.RequestActivation(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	env := ActivationEnvelope{Status: string(res.Status)}
	if res.Token != nil {
		exp := res.Token.ExpiresAt.UTC()
		env.ExpiresAt = &exp
	}
	writeJSON(w, http.StatusOK, env)
}

// decode reads a JSON body into dst and runs its validate tags. It writes
// the BAD_REQUEST response itself and reports whether to continue.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		badRequest(w, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		badRequest(w, err.Error())
		return false
	}
	return true
}
