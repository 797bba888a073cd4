package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	assert.True(t, Phone("13900001111"))
	assert.True(t, Phone("19912345678"))
	assert.False(t, Phone("12900001111"), "second digit must be 3-9")
	assert.False(t, Phone("23900001111"), "must start with 1")
	assert.False(t, Phone("1390000111"), "10 digits")
	assert.False(t, Phone("139000011112"), "12 digits")
	assert.False(t, Phone("1390000111a"))
	assert.False(t, Phone(""))
}

func TestPhoneCode(t *testing.T) {
	assert.True(t, PhoneCode("654321"))
	assert.True(t, PhoneCode("000000"))
	assert.False(t, PhoneCode("65432"))
	assert.False(t, PhoneCode("6543210"))
	assert.False(t, PhoneCode("65432a"))
	assert.False(t, PhoneCode("６５４３２１"), "full-width digits are not ASCII")
	assert.False(t, PhoneCode(""))
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("a@b.com"))
	assert.True(t, Email("first.last+tag@example.co.uk"))
	assert.False(t, Email("a@"))
	assert.False(t, Email("@b.com"))
	assert.False(t, Email("not-an-email"))
	assert.False(t, Email(""))
}

func TestEmailCode(t *testing.T) {
	assert.True(t, EmailCode("$2a$10$anything"))
	assert.False(t, EmailCode(""))
}

func TestPassword(t *testing.T) {
	assert.True(t, Password("Passw0rd!"))
	assert.True(t, Password("Abcdef_1"), "underscore counts as a symbol")
	assert.False(t, Password("Pw0!"), "too short")
	assert.False(t, Password("Passw0rd!Passw0rd!xyz"), "21 characters")
	assert.False(t, Password("password0!"), "no upper-case letter")
	assert.False(t, Password("PASSWORD0!"), "no lower-case letter")
	assert.False(t, Password("Password!!"), "no digit")
	assert.False(t, Password("Password00"), "no symbol")
}

type sample struct {
	Phone    string `validate:"required,cnphone"`
	Code     string `validate:"required,phonecode"`
	Password string `validate:"omitempty,password"`
}

func TestStruct_CustomTags(t *testing.T) {
	assert.NoError(t, Struct(sample{Phone: "13900001111", Code: "123456"}))
	assert.NoError(t, Struct(sample{Phone: "13900001111", Code: "123456", Password: "Passw0rd!"}))

	err := Struct(sample{Phone: "123", Code: "12", Password: "weak"})
	assert.ErrorContains(t, err, "field 'Phone' failed 'cnphone'")
	assert.ErrorContains(t, err, "field 'Code' failed 'phonecode'")
	assert.ErrorContains(t, err, "field 'Password' failed 'password'")
}
