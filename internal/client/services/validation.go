package services

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const MinPasswordLength = 8

const (
	MsgInvalidEmail     = "invalid email format"
	MsgPasswordTooShort = "password must be at least 8 characters long"
	MsgPasswordNoUpper  = "password must contain at least one uppercase letter"
	MsgPasswordNoLower  = "password must contain at least one lowercase letter"
	MsgPasswordNoDigit  = "password must contain at least one number"

	MsgNameRequired            = "name is required"
	MsgCurrentPasswordRequired = "current password is required"
)

// emailPart is one run of the address: no '@' and no whitespace, counting
// Unicode spaces, vertical tab and BOM, which Go's \s leaves out.
const emailPart = `[^\s\v\p{Z}\x{FEFF}@]+`

var (
	emailRe = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

// ValidateEmail checks the local@domain.tld shape.
func ValidateEmail(email string) []string {
	if !emailRe.MatchString(email) {
		return []string{MsgInvalidEmail}
	}
	return nil
}

// ValidatePassword returns one message per broken rule, in a fixed order.
func ValidatePassword(password string) []string {
	var violations []string
	if utf8.RuneCountInString(password) < MinPasswordLength {
		violations = append(violations, MsgPasswordTooShort)
	}
	if !upperRe.MatchString(password) {
		violations = append(violations, MsgPasswordNoUpper)
	}
	if !lowerRe.MatchString(password) {
		violations = append(violations, MsgPasswordNoLower)
	}
	if !digitRe.MatchString(password) {
		violations = append(violations, MsgPasswordNoDigit)
	}
	return violations
}

// ValidateName rejects a blank display name.
func ValidateName(name string) []string {
	if strings.TrimSpace(name) == "" {
		return []string{MsgNameRequired}
	}
	return nil
}

func validate(groups ...[]string) error {
	var all []string
	for _, g := range groups {
		all = append(all, g...)
	}
	if len(all) == 0 {
		return nil
	}
	return &ValidationError{Violations: all}
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
