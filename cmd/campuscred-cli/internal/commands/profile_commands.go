package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuscred/campuscred/internal/app"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/infrastructure/persistence"
	"github.com/campuscred/campuscred/internal/pkg/apperr"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// ProfileCommandHandler administers accounts directly through the repository,
// bypassing the role checks of the HTTP API.
type ProfileCommandHandler struct {
	profileRepo profiles.ProfileRepository
	logger      logger.Logger
}

// NewProfileCommandHandler creates a handler working on profileRepo
func NewProfileCommandHandler(profileRepo profiles.ProfileRepository, logger logger.Logger) *ProfileCommandHandler {
	return &ProfileCommandHandler{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// CreateAdmin registers a new administrator account
func (commandHandler *ProfileCommandHandler) CreateAdmin(ctx context.Context, email, password, fullName string) (*profiles.Profile, error) {
	email = profiles.NormalizeEmail(email)

	_, err := commandHandler.profileRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("email %s is already registered: %w", email, apperr.ErrConflict)
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	hash, err := app.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile := &profiles.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     fullName,
		Role:         profiles.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := commandHandler.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	commandHandler.logger.Info("Created admin ", profile.ID, " for ", email)
	return profile, nil
}

// SetRole changes the role of the account registered under email
func (commandHandler *ProfileCommandHandler) SetRole(ctx context.Context, email, role string) (*profiles.Profile, error) {
	profile, err := commandHandler.profileRepo.GetByEmail(ctx, profiles.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	previous := profile.Role
	profile.Role = role
	profile.UpdatedAt = time.Now().UTC()
	if err := commandHandler.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	commandHandler.logger.Info("Changed role of ", profile.ID, " from ", previous, " to ", role)
	return profile, nil
}

func withProfileHandler(cmd *cobra.Command, fn func(*ProfileCommandHandler) error) error {
	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	profileRepo, err := persistence.NewGormProfileRepository(env.db, env.logger)
	if err != nil {
		return fmt.Errorf("failed to create profile repository: %w", err)
	}
	return fn(NewProfileCommandHandler(profileRepo, env.logger))
}

// CreateAdminCmd is the cobra entry point of create-admin
func CreateAdminCmd(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	name, _ := cmd.Flags().GetString("name")

	return withProfileHandler(cmd, func(h *ProfileCommandHandler) error {
		_, err := h.CreateAdmin(cmd.Context(), email, password, name)
		return err
	})
}

// SetRoleCmd is the cobra entry point of set-role
func SetRoleCmd(cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email")
	role, _ := cmd.Flags().GetString("role")

	return withProfileHandler(cmd, func(h *ProfileCommandHandler) error {
		_, err := h.SetRole(cmd.Context(), email, role)
		return err
	})
}

// InitProfileCommands registers the account administration commands
func InitProfileCommands(rootCmd *cobra.Command) error {
	if rootCmd == nil {
		return fmt.Errorf("root command is nil")
	}

	createAdminCmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE:  CreateAdminCmd,
	}
	createAdminCmd.Flags().String("email", "", "Email address of the administrator")
	createAdminCmd.Flags().String("password", "", "Initial password")
	createAdminCmd.Flags().String("name", "Administrator", "Full name")
	for _, flag := range []string{"email", "password"} {
		if err := createAdminCmd.MarkFlagRequired(flag); err != nil {
			return err
		}
	}
	rootCmd.AddCommand(createAdminCmd)

	setRoleCmd := &cobra.Command{
		Use:   "set-role",
		Short: "Change the role of an account (student, faculty or admin)",
		RunE:  SetRoleCmd,
	}
	setRoleCmd.Flags().String("email", "", "Email address of the account")
	setRoleCmd.Flags().String("role", "", "New role")
	for _, flag := range []string{"email", "role"} {
		if err := setRoleCmd.MarkFlagRequired(flag); err != nil {
			return err
		}
	}
	rootCmd.AddCommand(setRoleCmd)

	return nil
}
