package ports

import (
	"context"

	"github.com/erosmarket/storefront/internal/core/domain"
)

// LoginResult is the session handed back to a client after a successful
// login: the signed bearer token plus the display fields the client keeps.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

type IdentityService interface {
	Register(ctx context.Context, username, email, secret, avatar string) (*domain.User, error)
	Login(ctx context.Context, email, secret string) (*LoginResult, error)
	UpdateProfile(ctx context.Context, userID, username, email, avatar string) error
}
