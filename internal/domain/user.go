package domain

import "time"

// User is a registered identity. Username and email are stored
// lowercased and are unique across the platform.
//
// Security notes:
//   - PasswordHash is never returned to clients; services blank it
//     before handing the user to a handler.
//   - RefreshTokenHash holds the SHA-256 of the one currently valid
//     refresh token (nil when logged out). The raw token is never stored,
//     and at most one refresh token per user is valid at a time.
type User struct {
	ID               int64
	Username         string
	Email            string
	FullName         string
	AvatarURL        string
	CoverImageURL    string
	PasswordHash     string
	RefreshTokenHash *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Sanitize strips credential material before the user leaves the service layer.
func (u *User) Sanitize() {
	u.PasswordHash = ""
	u.RefreshTokenHash = nil
}
