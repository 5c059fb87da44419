package internal

import (
	"strings"
	"testing"
	"time"
)

func TestAuthConfig_Valid(t *testing.T) {
	cfg := AuthConfig{JWTSecret: "a-long-enough-secret", TokenTTL: time.Hour}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid auth config should pass: %v", err)
	}
}

func TestAuthConfig_MissingSecret(t *testing.T) {
	cfg := AuthConfig{JWTSecret: ""}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty jwt_secret should fail validation")
	}
}

func TestAuthConfig_ShortSecret(t *testing.T) {
	cfg := AuthConfig{JWTSecret: "short"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("short jwt_secret should fail validation")
	}
}

func TestAuthConfig_NegativeTTL(t *testing.T) {
	cfg := AuthConfig{JWTSecret: "a-long-enough-secret", TokenTTL: -time.Hour}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("negative token_ttl should fail validation")
	}
	if !strings.Contains(err.Error(), "token_ttl") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAIConfig_PrimaryIncomplete(t *testing.T) {
	cfg := AIConfig{Primary: PrimaryAIConfig{APIKey: "key"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("primary with api_key but no base_url/model should fail")
	}
}

func TestAIConfig_BothProvidersAbsent(t *testing.T) {
	cfg := AIConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("absent providers should validate: %v", err)
	}
	if cfg.Primary.Configured() || cfg.OpenAI.Configured() {
		t.Error("empty providers should not report configured")
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
	cfg := HTTPConfig{Port: 8080}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("port 8080 should pass: %v", err)
	}
	if cfg.Address() != ":8080" {
		t.Errorf("address = %q", cfg.Address())
	}
}

func TestDefaultConfig_NeedsSecret(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("default config without jwt_secret should fail validation")
	}
	cfg.Auth.JWTSecret = "a-long-enough-secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config with secret should pass: %v", err)
	}
}
