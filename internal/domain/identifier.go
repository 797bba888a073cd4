package domain

import (
	"fmt"
	"strings"

	"github.com/itsharenotes/signup/internal/pkg/validate"
)

// Kind distinguishes the two identifier families. It also selects the
// delivery channel and the token policy.
type Kind string

const (
	KindEmail Kind = "email"
	KindPhone Kind = "phone"
)

// Identifier is a normalised email address or mobile number.
type Identifier struct {
	Value string
	Kind  Kind
}

// ParseIdentifier trims raw, lower-cases email addresses and checks the
// format for the detected kind. Anything containing "@" is treated as email.
func ParseIdentifier(raw string) (Identifier, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Identifier{}, fmt.Errorf("identifier is required: %w", ErrBadRequest)
	}
	if strings.Contains(s, "@") {
		s = strings.ToLower(s)
		if !validate.Email(s) {
			return Identifier{}, fmt.Errorf("invalid email address: %w", ErrBadRequest)
		}
		return Identifier{Value: s, Kind: KindEmail}, nil
	}
	if !validate.Phone(s) {
		return Identifier{}, fmt.Errorf("invalid phone number: %w", ErrBadRequest)
	}
	return Identifier{Value: s, Kind: KindPhone}, nil
}

func (id Identifier) String() string { return id.Value }

// Masked hides the middle of the identifier for log output.
func (id Identifier) Masked() string {
	switch id.Kind {
	case KindPhone:
		if len(id.Value) < 7 {
			return "****"
		}
		return id.Value[:3] + "****" + id.Value[len(id.Value)-4:]
	case KindEmail:
		at := strings.LastIndex(id.Value, "@")
		if at < 1 {
			return "***"
		}
		return id.Value[:1] + "***" + id.Value[at:]
	default:
		return "***"
	}
}

// ValidCode reports whether code has the right shape for this identifier's
// kind: six digits for phone, any non-empty string for email.
func (id Identifier) ValidCode(code string) bool {
	if id.Kind == KindPhone {
		return validate.PhoneCode(code)
	}
	return validate.EmailCode(code)
}
