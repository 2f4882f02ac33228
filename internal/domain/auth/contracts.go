package auth

import (
	"context"
	"time"

	"github.com/campuscred/campuscred/internal/domain/profiles"
)

// AuthService defines account and session operations.
type AuthService interface {
	// SignUp creates a profile and signs it in.
	SignUp(ctx context.Context, request *SignUpRequest) (*Session, error)

	// SignIn checks credentials and issues an access token.
	SignIn(ctx context.Context, email, password string) (*Session, error)

	// SignOut revokes the access token described by identity.
	SignOut(ctx context.Context, identity *Identity) error

	// Authenticate validates an access token that has not been revoked.
	Authenticate(ctx context.Context, token string) (*Identity, error)

	// ChangePassword replaces the password after checking the current one.
	ChangePassword(ctx context.Context, actor profiles.Actor, currentPassword, newPassword string) error

	// ForgotPassword mails a reset link if the address belongs to a profile.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a reset token and sets a new password.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// RequestMagicLink mails a one-time sign in link if the address belongs to a profile.
	RequestMagicLink(ctx context.Context, email string) error

	// ConsumeMagicLink exchanges a one-time sign in token for a session.
	ConsumeMagicLink(ctx context.Context, token string) (*Session, error)
}

// TokenIssuer signs and verifies tokens
type TokenIssuer interface {
	// Issue signs a token for the profile with the given purpose and lifetime.
	Issue(profile *profiles.Profile, purpose string, ttl time.Duration) (string, *Identity, error)
	// Parse verifies a token and checks that it was issued for purpose.
	Parse(token, purpose string) (*Identity, error)
}

// TokenStore tracks revoked and consumed token IDs until they expire
type TokenStore interface {
	// Revoke marks a token ID as unusable for ttl.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	// IsRevoked reports whether a token ID was revoked.
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	// ConsumeOnce atomically marks a token ID as used. It returns false if it already was.
	ConsumeOnce(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
}

// Mailer sends email
type Mailer interface {
	Send(ctx context.Context, message *Message) error
}
