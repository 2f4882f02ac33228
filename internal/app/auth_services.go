package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"
	"github.com/campuscred/campuscred/internal/pkg/sanitize"

	"github.com/google/uuid"
)

var errBadCredentials = fmt.Errorf("invalid email or password: %w", apperr.ErrUnauthorized)

// AuthLinks are the base URLs embedded in outgoing mail
type AuthLinks struct {
	AppURL string
	APIURL string
}

// authService implements the AuthService interface
type authService struct {
	profileRepo profiles.ProfileRepository
	issuer      auth.TokenIssuer
	tokenStore  auth.TokenStore
	mailer      auth.Mailer
	settings    *config.AuthSettings
	links       AuthLinks
	logger      logger.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	profileRepo profiles.ProfileRepository,
	issuer auth.TokenIssuer,
	tokenStore auth.TokenStore,
	mailer auth.Mailer,
	settings *config.AuthSettings,
	links AuthLinks,
	logger logger.Logger,
) (auth.AuthService, error) {
	return &authService{
		profileRepo: profileRepo,
		issuer:      issuer,
		tokenStore:  tokenStore,
		mailer:      mailer,
		settings:    settings,
		links:       links,
		logger:      logger,
	}, nil
}

// SignUp registers a student or faculty profile and starts a session
func (s *authService) SignUp(ctx context.Context, request *auth.SignUpRequest) (*auth.Session, error) {
	request.Email = profiles.NormalizeEmail(request.Email)
	request.FullName = sanitize.Text(request.FullName)
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidInput, err)
	}

	hash, err := HashPassword(request.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &profiles.Profile{
		ID:           uuid.NewString(),
		Email:        request.Email,
		FullName:     request.FullName,
		Role:         request.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, fmt.Errorf("email already registered: %w", apperr.ErrConflict)
		}
		return nil, err
	}

	s.logger.Info("Signed up profile ", profile.ID, " as ", profile.Role)
	return s.startSession(profile)
}

// SignIn checks credentials and starts a session. Unknown email and wrong
// password yield the same error.
func (s *authService) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			passwordMatches("", password)
			return nil, errBadCredentials
		}
		return nil, err
	}
	if !passwordMatches(profile.PasswordHash, password) {
		return nil, errBadCredentials
	}

	return s.startSession(profile)
}

// SignOut revokes the access token until it would have expired anyway
func (s *authService) SignOut(ctx context.Context, identity *auth.Identity) error {
	if err := s.tokenStore.Revoke(ctx, identity.TokenID, time.Until(identity.ExpiresAt)); err != nil {
		return err
	}
	s.logger.Info("Signed out profile ", identity.ProfileID)
	return nil
}

// Authenticate resolves an access token to the identity of a live profile.
// The role comes from the stored profile so role changes apply at once.
func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	identity, err := s.issuer.Parse(token, auth.PurposeAccess)
	if err != nil {
		return nil, err
	}

	revoked, err := s.tokenStore.IsRevoked(ctx, identity.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("token revoked: %w", apperr.ErrUnauthorized)
	}

	profile, err := s.profileRepo.GetByID(ctx, identity.ProfileID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("profile no longer exists: %w", apperr.ErrUnauthorized)
		}
		return nil, err
	}
	identity.Role = profile.Role
	identity.Email = profile.Email
	return identity, nil
}

func (s *authService) ChangePassword(ctx context.Context, actor profiles.Actor, currentPassword, newPassword string) error {
	profile, err := s.profileRepo.GetByID(ctx, actor.ProfileID)
	if err != nil {
		return err
	}
	if !passwordMatches(profile.PasswordHash, currentPassword) {
		return fmt.Errorf("current password is incorrect: %w", apperr.ErrInvalidInput)
	}

	return s.setPassword(ctx, profile, newPassword)
}

// ForgotPassword mails a reset link when the email is registered. It reports
// success either way so callers cannot probe for accounts.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	profile, ok, err := s.lookup(ctx, email)
	if err != nil || !ok {
		return err
	}

	token, _, err := s.issuer.Issue(profile, auth.PurposeReset, s.settings.ResetTokenTTL)
	if err != nil {
		return err
	}

	link := s.links.AppURL + "/reset-password?token=" + url.QueryEscape(token)
	s.deliver(ctx, &auth.Message{
		To:      profile.Email,
		Subject: "Reset your CampusCred password",
		Body: fmt.Sprintf("Hello %s,\n\nUse the link below to choose a new password. It expires in %s.\n\n%s\n\nIf you did not ask for this, ignore this email.\n",
			profile.FullName, s.settings.ResetTokenTTL, link),
	})
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := CheckPassword(newPassword); err != nil {
		return err
	}

	identity, err := s.consume(ctx, token, auth.PurposeReset)
	if err != nil {
		return err
	}

	profile, err := s.profileRepo.GetByID(ctx, identity.ProfileID)
	if err != nil {
		return err
	}
	return s.setPassword(ctx, profile, newPassword)
}

// RequestMagicLink mails a one-time sign-in link when the email is registered
func (s *authService) RequestMagicLink(ctx context.Context, email string) error {
	profile, ok, err := s.lookup(ctx, email)
	if err != nil || !ok {
		return err
	}

	token, _, err := s.issuer.Issue(profile, auth.PurposeMagicLink, s.settings.MagicLinkTTL)
	if err != nil {
		return err
	}

	link := s.links.APIURL + "/auth/magic-link/callback?token=" + url.QueryEscape(token)
	s.deliver(ctx, &auth.Message{
		To:      profile.Email,
		Subject: "Your CampusCred sign-in link",
		Body: fmt.Sprintf("Hello %s,\n\nOpen the link below to sign in. It works once and expires in %s.\n\n%s\n",
			profile.FullName, s.settings.MagicLinkTTL, link),
	})
	return nil
}

func (s *authService) ConsumeMagicLink(ctx context.Context, token string) (*auth.Session, error) {
	identity, err := s.consume(ctx, token, auth.PurposeMagicLink)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByID(ctx, identity.ProfileID)
	if err != nil {
		return nil, err
	}
	return s.startSession(profile)
}

func (s *authService) startSession(profile *profiles.Profile) (*auth.Session, error) {
	token, identity, err := s.issuer.Issue(profile, auth.PurposeAccess, s.settings.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	return &auth.Session{
		Token:     token,
		ExpiresAt: identity.ExpiresAt,
		Profile:   profile,
	}, nil
}

// consume parses a one-time token and marks its id as used
func (s *authService) consume(ctx context.Context, token, purpose string) (*auth.Identity, error) {
	identity, err := s.issuer.Parse(token, purpose)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired link: %w", apperr.ErrInvalidInput)
	}

	first, err := s.tokenStore.ConsumeOnce(ctx, identity.TokenID, time.Until(identity.ExpiresAt))
	if err != nil {
		return nil, err
	}
	if !first {
		return nil, fmt.Errorf("link already used: %w", apperr.ErrInvalidInput)
	}
	return identity, nil
}

func (s *authService) lookup(ctx context.Context, email string) (*profiles.Profile, bool, error) {
	profile, err := s.profileRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.logger.Info("No profile for ", profiles.NormalizeEmail(email), ", skipping mail")
			return nil, false, nil
		}
		return nil, false, err
	}
	return profile, true, nil
}

// deliver logs mail failures instead of returning them
func (s *authService) deliver(ctx context.Context, message *auth.Message) {
	if err := s.mailer.Send(ctx, message); err != nil {
		s.logger.Error("Failed to send '", message.Subject, "' to ", message.To, ": ", err)
	}
}

func (s *authService) setPassword(ctx context.Context, profile *profiles.Profile, password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	profile.PasswordHash = hash
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return err
	}
	s.logger.Info("Changed password of profile ", profile.ID)
	return nil
}
