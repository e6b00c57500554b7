package shared

import "regexp"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// validate email address from configuration
func IsValidEmail(address string) bool {
	return emailRegex.MatchString(address)
}
