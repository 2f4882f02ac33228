// Package config loads and validates CampusCred settings.
//
// Settings come from a YAML file, optionally preceded by a .env file, and can be
// overridden by CAMPUSCRED_ prefixed environment variables. Every settings struct
// carries validator tags and exposes a Validate method.
package config
