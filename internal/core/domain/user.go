package domain

import "time"

const (
	RoleAdmin = "Administrator"
	RoleGuest = "Guest"
)

// DefaultAvatar is assigned at registration when the client sends none.
const DefaultAvatar = "👤"

// User models an account in the storefront. PasswordHash holds the stored
// credential digest and is never serialized to a client.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the enumerated access tiers.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleGuest
}
