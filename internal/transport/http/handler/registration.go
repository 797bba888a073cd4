package handler

import (
	"net/http"

	"github.com/itsharenotes/signup/internal/application/registration"
	"github.com/itsharenotes/signup/internal/domain"
)

// RegistrationHandler serves the account creation endpoints.
type RegistrationHandler struct {
	svc registration.Service
}

func NewRegistrationHandler(svc registration.Service) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

type emailRegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
	EmailCode string `json:"emailCode" validate:"required"`
}

type phoneRegisterRequest struct {
	Phone     string `json:"phone" validate:"required,cnphone"`
	PhoneCode string `json:"phoneCode" validate:"required,phonecode"`
}

// Register accepts either identifier kind.
func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	h.register(w, r, req)
}

func (h *RegistrationHandler) Email(w http.ResponseWriter, r *http.Request) {
	var body emailRegisterRequest
	if !decode(w, r, &body) {
		return
	}
	h.register(w, r, domain.RegisterRequest{Identifier: body.Email, Code: body.EmailCode, Password: body.Password})
}

func (h *RegistrationHandler) Phone(w http.ResponseWriter, r *http.Request) {
	var body phoneRegisterRequest
	if !decode(w, r, &body) {
		return
	}
	h.register(w, r, domain.RegisterRequest{Identifier: body.Phone, Code: body.PhoneCode})
}

func (h *RegistrationHandler) register(w http.ResponseWriter, r *http.Request, req domain.RegisterRequest) {
	a, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AccountEnvelope{ID: a.AccountID, Identifier: a.Identifier, Kind: a.Kind})
}
