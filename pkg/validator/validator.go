package validator

import (
	"fmt"
	"regexp"
	"unicode"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 64
	minPasswordLength = 12
	maxPasswordLength = 128

	errUsernameEmptyFmt       = "username cannot be empty"
	errUsernameLengthFmt      = "username must be between %d and %d characters"
	errUsernameStartsDigitFmt = "username must not start with a number"
	errPasswordMinLengthFmt   = "password must be at least %d characters"
	errPasswordMaxLengthFmt   = "password must not exceed %d characters"
	errPasswordLowercaseFmt   = "password must contain at least one lowercase letter"
	errPasswordUppercaseFmt   = "password must contain at least one uppercase letter"
	errPasswordDigitFmt       = "password must contain at least one digit"
	errPasswordSymbolFmt      = "password must contain at least one symbol"
)

var (
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex     = regexp.MustCompile(`\d`)
	symbolRegex    = regexp.MustCompile(`[^a-zA-Z\d]`)
)

// Username rejects empty names, names outside the length bounds, and names
// starting with a digit.
func Username(username string) error {
	if username == "" {
		return fmt.Errorf(errUsernameEmptyFmt)
	}

	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return fmt.Errorf(errUsernameLengthFmt, minUsernameLength, maxUsernameLength)
	}

	if unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf(errUsernameStartsDigitFmt)
	}

	return nil
}

// Password enforces the account password complexity policy: minimum length
// plus at least one lowercase letter, uppercase letter, digit and symbol.
func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	if !lowercaseRegex.MatchString(password) {
		return fmt.Errorf(errPasswordLowercaseFmt)
	}

	if !uppercaseRegex.MatchString(password) {
		return fmt.Errorf(errPasswordUppercaseFmt)
	}

	if !digitRegex.MatchString(password) {
		return fmt.Errorf(errPasswordDigitFmt)
	}

	if !symbolRegex.MatchString(password) {
		return fmt.Errorf(errPasswordSymbolFmt)
	}

	return nil
}
