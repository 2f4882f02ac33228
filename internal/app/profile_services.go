package app

import (
	"context"
	"fmt"
	"time"

	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/logger"
	"github.com/campuscred/campuscred/internal/pkg/sanitize"
)

// profileService implements the ProfileService interface
type profileService struct {
	profileRepo profiles.ProfileRepository
	logger      logger.Logger
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(profileRepo profiles.ProfileRepository, logger logger.Logger) (profiles.ProfileService, error) {
	return &profileService{
		profileRepo: profileRepo,
		logger:      logger,
	}, nil
}

func (s *profileService) GetMe(ctx context.Context, actor profiles.Actor) (*profiles.Profile, error) {
	return s.profileRepo.GetByID(ctx, actor.ProfileID)
}

func (s *profileService) UpdateMe(ctx context.Context, actor profiles.Actor, update *profiles.ProfileUpdate) (*profiles.Profile, error) {
	update.FullName = sanitize.TextPtr(update.FullName)
	update.Institution = sanitize.TextPtr(update.Institution)
	update.Department = sanitize.TextPtr(update.Department)
	update.Bio = sanitize.TextPtr(update.Bio)
	if err := update.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}

	profile, err := s.profileRepo.GetByID(ctx, actor.ProfileID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		profile.FullName = *update.FullName
	}
	if update.Institution != nil {
		profile.Institution = *update.Institution
	}
	if update.Department != nil {
		profile.Department = *update.Department
	}
	if update.Bio != nil {
		profile.Bio = *update.Bio
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) GetPublicByID(ctx context.Context, profileID string) (*profiles.PublicProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return profile.Public(), nil
}

func (s *profileService) List(ctx context.Context, actor profiles.Actor, query *profiles.ProfileQuery) ([]*profiles.Profile, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("listing profiles requires admin: %w", apperr.ErrForbidden)
	}
	return s.profileRepo.List(ctx, query)
}

// SetRole changes another profile's role. Admins cannot change their own
// role, so the last admin cannot lock everyone out.
func (s *profileService) SetRole(ctx context.Context, actor profiles.Actor, profileID, role string) (*profiles.Profile, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("changing roles requires admin: %w", apperr.ErrForbidden)
	}
	if actor.ProfileID == profileID {
		return nil, fmt.Errorf("admins cannot change their own role: %w", apperr.ErrInvalidInput)
	}
	switch role {
	case profiles.RoleStudent, profiles.RoleFaculty, profiles.RoleAdmin:
	default:
		return nil, fmt.Errorf("unknown role %q: %w", role, apperr.ErrInvalidInput)
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	profile.Role = role
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info("Profile ", actor.ProfileID, " set role of ", profileID, " to ", role)
	return profile, nil
}
