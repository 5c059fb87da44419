package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Auth    AuthConfig        `yaml:"auth"`
	Uploads UploadsConfig     `yaml:"uploads"`
	AI      AIConfig          `yaml:"ai"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	if err := c.Uploads.Validate(); err != nil {
		return err
	}
	return c.AI.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds JWT authentication configuration.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	TokenTTL  time.Duration `yaml:"token_ttl"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.JWTSecret, validation.Required, validation.Length(16, 0)),
	); err != nil {
		return err
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("auth: token_ttl must not be negative")
	}
	return nil
}

// UploadsConfig holds the path to the file uploads directory.
type UploadsConfig struct {
	Dir string `yaml:"dir"`
}

// Validate validates the uploads configuration.
func (c *UploadsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// PrimaryAIConfig holds the OpenAI-compatible primary provider settings.
type PrimaryAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Configured reports whether the primary provider is usable.
func (c *PrimaryAIConfig) Configured() bool {
	return c.APIKey != "" && c.BaseURL != "" && c.Model != ""
}

// OpenAIConfig holds the secondary (fallback) provider settings.
type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Configured reports whether the secondary provider is usable.
func (c *OpenAIConfig) Configured() bool {
	return c.APIKey != ""
}

// AIConfig holds the AI assistant configuration. Both providers may be
// absent; AI endpoints then fail fast with a "no provider" error.
type AIConfig struct {
	Primary PrimaryAIConfig `yaml:"primary"`
	OpenAI  OpenAIConfig    `yaml:"openai"`
	LogPath string          `yaml:"log_path"`
}

// Validate validates the AI configuration.
func (c *AIConfig) Validate() error {
	if c.Primary.APIKey != "" && (c.Primary.BaseURL == "" || c.Primary.Model == "") {
		return fmt.Errorf("ai: primary provider needs base_url and model when api_key is set")
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		SQLite: SQLiteConfig{
			Path: "./mynotes.db",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Uploads: UploadsConfig{
			Dir: "./uploads",
		},
		AI: AIConfig{
			LogPath: "./ai.log",
		},
	}
}
