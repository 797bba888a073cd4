package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern     = regexp.MustCompile(`^1[3-9]\d{9}$`)
	phoneCodePattern = regexp.MustCompile(`^\d{6}$`)
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

func init() {
	mustRegister("cnphone", func(fl validator.FieldLevel) bool { return Phone(fl.Field().String()) })
	mustRegister("phonecode", func(fl validator.FieldLevel) bool { return PhoneCode(fl.Field().String()) })
	mustRegister("password", func(fl validator.FieldLevel) bool { return Password(fl.Field().String()) })
}

func mustRegister(tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// Struct validates the given struct using its validate tags.
// Returns a human-readable error string or nil.
func Struct(s interface{}) error {
	if err := v.Struct(s); err != nil {
		ve, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var msgs []string
		for _, fe := range ve {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed '%s'", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

// Email reports whether s is a syntactically valid email address.
func Email(s string) bool {
	return v.Var(s, "required,email") == nil
}

// Phone reports whether s is an 11-digit mobile number starting 13-19.
func Phone(s string) bool {
	return phonePattern.MatchString(s)
}

// PhoneCode reports whether s is exactly six ASCII digits.
func PhoneCode(s string) bool {
	return phoneCodePattern.MatchString(s)
}

// EmailCode reports whether s is usable as an email activation code.
// Email codes are opaque; only emptiness is rejected.
func EmailCode(s string) bool {
	return s != ""
}

// Password enforces the registration password policy: 8 to 20 characters
// with at least one digit, one lower-case letter, one upper-case letter and
// one symbol. Anything outside [A-Za-z0-9] is a symbol.
func Password(s string) bool {
	n := len([]rune(s))
	if n < 8 || n > 20 {
		return false
	}
	var digit, lower, upper, symbol bool
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		default:
			symbol = true
		}
	}
	return digit && lower && upper && symbol
}
