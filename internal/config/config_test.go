package config

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.JWT.Expiry != 60*time.Minute {
		t.Errorf("Expiry = %v, want 60m", cfg.JWT.Expiry)
	}
	if cfg.JWT.Issuer != "taskman" || cfg.JWT.Audience != "taskman-client" {
		t.Errorf("issuer/audience = %q/%q", cfg.JWT.Issuer, cfg.JWT.Audience)
	}
	if cfg.Password.Algorithm != "bcrypt" {
		t.Errorf("Algorithm = %q, want bcrypt", cfg.Password.Algorithm)
	}
	if cfg.Database.Driver != StoragePostgres {
		t.Errorf("Driver = %q, want postgres", cfg.Database.Driver)
	}
	if !cfg.IsProduction() || cfg.Secure.IsDevelopment {
		t.Error("production env should disable development mode")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_EXPIRY", "15m")
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("PASSWORD_HASHER", "argon2id")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWT.Expiry != 15*time.Minute {
		t.Errorf("Expiry = %v, want 15m", cfg.JWT.Expiry)
	}
	if cfg.Database.Driver != StorageMemory {
		t.Errorf("Driver = %q, want memory", cfg.Database.Driver)
	}
	if cfg.Password.Algorithm != "argon2id" {
		t.Errorf("Algorithm = %q", cfg.Password.Algorithm)
	}
	want := []string{"http://localhost:3000", "https://app.example.com"}
	if len(cfg.Server.AllowedOrigins) != len(want) {
		t.Fatalf("AllowedOrigins = %v, want %v", cfg.Server.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.Server.AllowedOrigins[i] != want[i] {
			t.Errorf("AllowedOrigins[%d] = %q, want %q", i, cfg.Server.AllowedOrigins[i], want[i])
		}
	}
}

func TestLoad_ExpiryMinutesWins(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_EXPIRY", "15m")
	t.Setenv("JWT_EXPIRY_MINUTES", "90")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWT.Expiry != 90*time.Minute {
		t.Errorf("Expiry = %v, want 90m", cfg.JWT.Expiry)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			JWT:      JWTConfig{Secret: testSecret, Expiry: time.Hour},
			Password: PasswordConfig{Algorithm: "bcrypt"},
			Database: DatabaseConfig{Driver: StorageMemory},
		}
	}
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET is required"},
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, "at least 32 bytes"},
		{"base64 secret deferred", func(c *Config) { c.JWT.Secret = "base64:c2hvcnQ=" }, ""},
		{"zero expiry", func(c *Config) { c.JWT.Expiry = 0 }, "JWT_EXPIRY"},
		{"unknown hasher", func(c *Config) { c.Password.Algorithm = "md5" }, "PASSWORD_HASHER"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, "STORAGE_DRIVER"},
		{"postgres without url", func(c *Config) { c.Database.Driver = StoragePostgres }, "DATABASE_URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
