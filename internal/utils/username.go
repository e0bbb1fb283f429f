package utils

import (
	"strings"

	"github.com/google/uuid"
)

// UsernameFromEmail derives a username candidate from the local part of an
// email address, lowercased and stripped of characters outside [a-z0-9._-].
func UsernameFromEmail(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}
	local = strings.ToLower(local)

	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

// WithRandomSuffix appends a short random suffix for collision resolution.
func WithRandomSuffix(username string) string {
	return username + "-" + uuid.NewString()[:4]
}
