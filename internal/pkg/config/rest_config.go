package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. CAMPUSCRED_AUTH_JWT_SECRET
const EnvPrefix = "CAMPUSCRED"

// RateLimitSettings configures the per-IP limiter on public routes
type RateLimitSettings struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute" validate:"required,min=1"`
	Burst             int `mapstructure:"burst" validate:"required,min=1"`
}

// Validate checks that all fields in RateLimitSettings are valid
func (s *RateLimitSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for RateLimitSettings: %w", err)
	}
	return nil
}

// UploadSettings bounds document uploads
type UploadSettings struct {
	MaxFileSize int64 `mapstructure:"max_file_size" validate:"required,min=1"`
}

// Validate checks that all fields in UploadSettings are valid
func (s *UploadSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for UploadSettings: %w", err)
	}
	return nil
}

// RestConfig is the complete configuration of the REST API
type RestConfig struct {
	Port      string            `mapstructure:"port" validate:"required,numeric"`
	AppURL    string            `mapstructure:"app_url" validate:"required,url"`
	APIURL    string            `mapstructure:"api_url" validate:"required,url"`
	Origins   []string          `mapstructure:"allowed_origins" validate:"required,min=1"`
	Logger    LoggerSettings    `mapstructure:"logger"`
	Database  DatabaseSettings  `mapstructure:"database"`
	Storage   StorageSettings   `mapstructure:"storage"`
	Auth      AuthSettings      `mapstructure:"auth"`
	Redis     RedisSettings     `mapstructure:"redis"`
	Mail      MailSettings      `mapstructure:"mail"`
	RateLimit RateLimitSettings `mapstructure:"rate_limit"`
	Upload    UploadSettings    `mapstructure:"upload"`
}

// nestedFields are validated by their own Validate methods
var nestedFields = []string{"Logger", "Database", "Storage", "Auth", "Redis", "Mail", "RateLimit", "Upload"}

// Validate checks every nested settings block, then the top-level fields
func (c *RestConfig) Validate() error {
	nested := []interface{ Validate() error }{
		&c.Logger, &c.Database, &c.Storage, &c.Auth, &c.Redis, &c.Mail, &c.RateLimit, &c.Upload,
	}
	for _, s := range nested {
		if err := s.Validate(); err != nil {
			return err
		}
	}

	if err := validator.New().StructExcept(c, nestedFields...); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}
	return nil
}

// CliConfig is the subset of settings the admin command line needs
type CliConfig struct {
	Logger   LoggerSettings   `mapstructure:"logger"`
	Database DatabaseSettings `mapstructure:"database"`
}

// Validate checks the nested settings blocks
func (c *CliConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return c.Database.Validate()
}

// InitializeRestConfig reads the YAML file at path, applies defaults and
// environment overrides, and validates the result.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// InitializeCliConfig reads the same file as InitializeRestConfig but only
// decodes and validates the logger and database blocks.
func InitializeCliConfig(path string) (*CliConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	var cfg CliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// keys without defaults still need an explicit binding to be read from the environment
var secretKeys = []string{
	"auth.jwt_secret",
	"auth.cookie_domain",
	"auth.cookie_secure",
	"database.name",
	"redis.password",
	"mail.host",
	"mail.port",
	"mail.username",
	"mail.password",
	"storage.cloudinary_url",
	"storage.bucket_name",
	"storage.credentials_file",
}

func newViper(path string) (*viper.Viper, error) {
	// a missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range secretKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("app_url", "http://localhost:3000")
	v.SetDefault("api_url", "http://localhost:8080/api/v1/campuscred")
	v.SetDefault("allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("database.dsn", "campuscred.db")

	v.SetDefault("storage.cloud_provider", LocalStorageProvider)
	v.SetDefault("storage.root_dir", "./data")
	v.SetDefault("storage.folder", "campuscred")

	v.SetDefault("auth.issuer", "campuscred")
	v.SetDefault("auth.access_token_ttl", 24*time.Hour)
	v.SetDefault("auth.reset_token_ttl", time.Hour)
	v.SetDefault("auth.magic_link_ttl", 15*time.Minute)
	v.SetDefault("auth.cookie_name", "campuscred_session")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("mail.transport", MailTransportLog)
	v.SetDefault("mail.from", "no-reply@campuscred.local")

	v.SetDefault("rate_limit.requests_per_minute", 30)
	v.SetDefault("rate_limit.burst", 10)

	v.SetDefault("upload.max_file_size", 10<<20)
}
