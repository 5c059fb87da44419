package internal

import "github.com/waxca059-max/MyNotes/internal/ai"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	providers []ai.Provider
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithAIProviders overrides the AI provider list built from the
// configuration. Mainly useful for tests and embedding.
func WithAIProviders(providers []ai.Provider) Option {
	return func(a *application) {
		a.providers = providers
	}
}
