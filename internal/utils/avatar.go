package utils

import (
	"fmt"
	"strings"
)

// DefaultAvatarURL returns the generated avatar used when registration does
// not supply a profile image.
func DefaultAvatarURL(username string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/svg?seed=%s", username)
}

// UsernameFromEmail derives a display username from the email local part.
// Records created before usernames existed have none stored.
func UsernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
