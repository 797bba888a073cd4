package domain

// ActivationRequest asks for a verification code to be issued.
type ActivationRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

// RegisterRequest submits a verification code to create an account.
// Password is only checked and stored for email identifiers.
type RegisterRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Code       string `json:"code" validate:"required"`
	Password   string `json:"password,omitempty"`
}
