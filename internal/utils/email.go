package utils

import (
	"net/mail"
	"strings"
)

// ValidEmail reports whether s parses as an address and carries both
// an "@" and a dot. The extra character checks reject technically
// parseable but practically undeliverable forms like "a@b".
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return false
	}
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}
