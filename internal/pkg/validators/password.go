package validators

import (
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest password accepted at sign up or reset
const MinPasswordLength = 8

// PasswordComplexity reports whether a password has at least MinPasswordLength
// characters and contains an upper case letter, a lower case letter, a digit and a symbol.
func PasswordComplexity(password string) bool {
	if len([]rune(password)) < MinPasswordLength {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// PasswordValidation is the validator.Func form of PasswordComplexity, registered as "password".
func PasswordValidation(fl validator.FieldLevel) bool {
	return PasswordComplexity(fl.Field().String())
}
