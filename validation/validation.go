package validation

import "regexp"

var (
	usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9]{3,20}$`)
	phoneRegexp    = regexp.MustCompile(`^[0-9]{10}$`)
	emailRegexp    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// passwordClasses reports which character classes a password contains.
// Special means any character outside [A-Za-z0-9_].
func passwordClasses(password string) (lower, upper, digit, special bool) {
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r == '_':
			// Underscore satisfies no class.
		default:
			special = true
		}
	}
	return
}

// IsValidUsername reports whether username is 3-20 characters, letters and
// digits only.
func IsValidUsername(username string) bool {
	return usernameRegexp.MatchString(username)
}

// IsValidPassword reports whether password is at least 8 characters and
// contains a lowercase letter, an uppercase letter, a digit and a special
// character.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	lower, upper, digit, special := passwordClasses(password)
	return lower && upper && digit && special
}

// IsValidPhone reports whether phone is empty or exactly 10 digits.
func IsValidPhone(phone string) bool {
	return phone == "" || phoneRegexp.MatchString(phone)
}

// IsValidEmail reports whether email has a conventional local@domain.tld
// shape: no whitespace, exactly one '@' and a dot in the domain part.
func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// PasswordStrengthMessage returns a human-readable message for the first
// password rule that fails, or "" when the password is acceptable.
func PasswordStrengthMessage(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters"
	}
	lower, upper, digit, special := passwordClasses(password)
	switch {
	case !lower:
		return "Password must contain a lowercase letter"
	case !upper:
		return "Password must contain an uppercase letter"
	case !digit:
		return "Password must contain a digit"
	case !special:
		return "Password must contain a special character"
	}
	return ""
}
