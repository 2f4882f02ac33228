package profiles

import (
	"fmt"
	"strings"
	"time"

	"github.com/campuscred/campuscred/internal/pkg/validators"
)

// Roles
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// Profile entity
type Profile struct {
	ID           string    `validate:"required,uuid4"`
	Email        string    `validate:"required,email,max=255"`
	FullName     string    `validate:"required,min=1,max=255"`
	Role         string    `validate:"required,oneof=student faculty admin"`
	Institution  string    `validate:"max=255"`
	Department   string    `validate:"max=255"`
	Bio          string    `validate:"max=2000"`
	PasswordHash string    `validate:"required"`
	CreatedAt    time.Time `validate:"required"`
	UpdatedAt    time.Time `validate:"required"`
}

// Validate for validating Profile struct
func (p *Profile) Validate() error {
	return validators.Struct(p)
}

// Public returns the fields any signed in user may see
func (p *Profile) Public() *PublicProfile {
	return &PublicProfile{
		ID:          p.ID,
		FullName:    p.FullName,
		Role:        p.Role,
		Institution: p.Institution,
		Department:  p.Department,
		Bio:         p.Bio,
	}
}

// PublicProfile is the externally visible part of a Profile
type PublicProfile struct {
	ID          string
	FullName    string
	Role        string
	Institution string
	Department  string
	Bio         string
}

// ProfileUpdate holds the self-service editable fields. Nil fields are left unchanged.
type ProfileUpdate struct {
	FullName    *string `validate:"omitempty,min=1,max=255"`
	Institution *string `validate:"omitempty,max=255"`
	Department  *string `validate:"omitempty,max=255"`
	Bio         *string `validate:"omitempty,max=2000"`
}

// Validate for validating ProfileUpdate struct
func (u *ProfileUpdate) Validate() error {
	return validators.Struct(u)
}

// NormalizeEmail lower cases and trims an address so lookups are case insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Actor is the authenticated caller of an operation
type Actor struct {
	ProfileID string
	Role      string
}

// IsAdmin reports whether the actor holds the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsReviewer reports whether the actor may verify or reject documents
func (a Actor) IsReviewer() bool {
	return a.Role == RoleFaculty || a.Role == RoleAdmin
}

func (a Actor) String() string {
	return fmt.Sprintf("%s(%s)", a.ProfileID, a.Role)
}
