package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// StorageSettings selects and configures the object storage connector
type StorageSettings struct {
	CloudProvider string `mapstructure:"cloud_provider" validate:"required,oneof=local cloudinary gcp"`

	// local
	RootDir string `mapstructure:"root_dir" validate:"required_if=CloudProvider local"`

	// cloudinary
	CloudinaryURL string `mapstructure:"cloudinary_url" validate:"required_if=CloudProvider cloudinary"`
	Folder        string `mapstructure:"folder"`

	// gcp
	BucketName      string `mapstructure:"bucket_name" validate:"required_if=CloudProvider gcp"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// Validate checks that all fields in StorageSettings are valid
func (s *StorageSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for StorageSettings: %w", err)
	}
	return nil
}
