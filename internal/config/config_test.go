package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_SECRET_KEY", "")

	cfg := Load()
	if cfg.ServerPort != "" {
		// SERVER_PORT was explicitly set to empty; LookupEnv honors that.
		t.Fatalf("unexpected port: %q", cfg.ServerPort)
	}
	if cfg.JWTSecretKey != "dev-secret-change-me" {
		t.Fatalf("expected dev fallback secret, got %q", cfg.JWTSecretKey)
	}
	if cfg.CompletionBaseURL != "https://api.groq.com/openai/v1" {
		t.Fatalf("unexpected base url: %q", cfg.CompletionBaseURL)
	}
	if cfg.DatabasePath != "sohbet.db" {
		t.Fatalf("unexpected db path: %q", cfg.DatabasePath)
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("DB_PATH", "/tmp/app.db")
	t.Setenv("COMPLETION_BASE_URL", "http://localhost:1234/v1")

	cfg := Load()
	if cfg.ServerPort != "9090" {
		t.Fatalf("unexpected port: %q", cfg.ServerPort)
	}
	if cfg.JWTSecretKey != "s3cret" {
		t.Fatalf("unexpected secret: %q", cfg.JWTSecretKey)
	}
	if cfg.DatabasePath != "/tmp/app.db" {
		t.Fatalf("unexpected db path: %q", cfg.DatabasePath)
	}
	if cfg.CompletionBaseURL != "http://localhost:1234/v1" {
		t.Fatalf("unexpected base url: %q", cfg.CompletionBaseURL)
	}
}
