package auth

import (
	"time"

	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/validators"
)

// Token purposes
const (
	PurposeAccess    = "access"
	PurposeReset     = "reset"
	PurposeMagicLink = "magic_link"
)

// Identity is the verified content of a token
type Identity struct {
	ProfileID string
	Email     string
	Role      string
	Purpose   string
	TokenID   string
	ExpiresAt time.Time
}

// Actor returns the caller identity used for authorization checks
func (i *Identity) Actor() profiles.Actor {
	return profiles.Actor{ProfileID: i.ProfileID, Role: i.Role}
}

// Session is the result of a successful sign in
type Session struct {
	Token     string
	ExpiresAt time.Time
	Profile   *profiles.Profile
}

// SignUpRequest registers a new student or faculty account
type SignUpRequest struct {
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,max=72,password"`
	FullName string `validate:"required,min=1,max=255"`
	Role     string `validate:"required,oneof=student faculty"`
}

// Validate for validating SignUpRequest struct
func (r *SignUpRequest) Validate() error {
	return validators.Struct(r)
}

// Message is an outgoing email
type Message struct {
	To      string
	Subject string
	Body    string
}
