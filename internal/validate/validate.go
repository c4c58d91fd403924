// Package validate holds the pluggable input predicates consumed by the user
// service. Both are pure string -> bool functions with no side effects.
package validate

import "regexp"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// Email reports whether s looks like a well-formed email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

var (
	hasUpper   = regexp.MustCompile(`[A-Z]`)
	hasLower   = regexp.MustCompile(`[a-z]`)
	hasDigit   = regexp.MustCompile(`[0-9]`)
	hasSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// Password reports whether s is strong enough: at least 8 characters with
// an upper-case letter, a lower-case letter, a digit and a special character.
func Password(s string) bool {
	if len(s) < 8 {
		return false
	}
	return hasUpper.MatchString(s) &&
		hasLower.MatchString(s) &&
		hasDigit.MatchString(s) &&
		hasSpecial.MatchString(s)
}
