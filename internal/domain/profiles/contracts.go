package profiles

import "context"

// ProfileService defines profile reads and edits.
type ProfileService interface {
	// GetMe returns the caller's own profile.
	GetMe(ctx context.Context, actor Actor) (*Profile, error)

	// UpdateMe applies a partial update to the caller's own profile.
	UpdateMe(ctx context.Context, actor Actor, update *ProfileUpdate) (*Profile, error)

	// GetPublicByID returns the public view of any profile.
	GetPublicByID(ctx context.Context, profileID string) (*PublicProfile, error)

	// List returns profiles matching the query. Admin only.
	List(ctx context.Context, actor Actor, query *ProfileQuery) ([]*Profile, error)

	// SetRole changes the role of a profile. Admin only.
	SetRole(ctx context.Context, actor Actor, profileID, role string) (*Profile, error)
}

// ProfileRepository defines the interface for Profile-related operations
type ProfileRepository interface {
	// Create adds a new Profile to the database
	Create(ctx context.Context, profile *Profile) error
	// GetByID retrieves a Profile by ID
	GetByID(ctx context.Context, profileID string) (*Profile, error)
	// GetByEmail retrieves a Profile by its normalized email
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	// List lists Profiles with optional filter
	List(ctx context.Context, query *ProfileQuery) ([]*Profile, error)
	// ListByRoles returns every Profile holding one of the roles
	ListByRoles(ctx context.Context, roles ...string) ([]*Profile, error)
	// Update saves all fields of a Profile
	Update(ctx context.Context, profile *Profile) error
}
