package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeKeyFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "service-account.json")
	if err := os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", writeKeyFile(t))
	t.Setenv("SERVER_ADDRESS", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.ServerAddress != ":8000" {
		t.Fatalf("ServerAddress = %q", cfg.ServerAddress)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.Environment != "development" {
		t.Fatalf("Environment = %q", cfg.Environment)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", writeKeyFile(t))
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing GEMINI_API_KEY")
	}
}

func TestLoadRequiresExistingKeyFile(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", filepath.Join(t.TempDir(), "missing.json"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing key file")
	}
}
