package utils

import "strings"

// ValidPhone reports whether s is an acceptable phone number: trimmed,
// digits only and at least 10 characters long. The same rule applies to
// user registration, profile updates and contact create/update.
func ValidPhone(s string) bool {
	v := strings.TrimSpace(s)
	if len(v) < 10 {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
