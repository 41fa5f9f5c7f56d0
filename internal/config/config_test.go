package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	if cfg.Shop.WhatsApp != "250788899899" {
		t.Errorf("unexpected whatsapp number %q", cfg.Shop.WhatsApp)
	}
	if cfg.Catalog.File != "catalog/products.yaml" || cfg.Catalog.CacheSize != 256 {
		t.Errorf("unexpected catalog config %+v", cfg.Catalog)
	}
	if cfg.Production() {
		t.Error("default environment must not be prod")
	}
	if cfg.Locale.Negotiate {
		t.Error("locale negotiation is off by default")
	}
}

func TestLoadPortFallsBackToPlatformPort(t *testing.T) {
	cfg, err := Load(WithEnvMap(map[string]string{"PORT": "9090"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Addr())
	}

	cfg, err = Load(WithEnvMap(map[string]string{"PORT": "9090", "KWA_WEB_PORT": "7070"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("expected KWA_WEB_PORT to win, got %s", cfg.Server.Port)
	}
}

func TestLoadReadsDotEnvBelowExplicitValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "KWA_WEB_SHOP_NAME=Dotenv Shop\nKWA_WEB_LOG_LEVEL=debug\nKWA_WEB_NEGOTIATE_LOCALE=true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(WithEnvFile(path), WithoutSystemEnv(), WithEnvMap(map[string]string{"KWA_WEB_LOG_LEVEL": "warn"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Shop.Name != "Dotenv Shop" {
		t.Errorf("expected dotenv shop name, got %q", cfg.Shop.Name)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("explicit map should override dotenv, got %q", cfg.LogLevel)
	}
	if !cfg.Locale.Negotiate {
		t.Error("expected negotiation enabled from dotenv")
	}
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	if _, err := Load(WithEnvFile(filepath.Join(t.TempDir(), "absent.env")), WithoutSystemEnv()); err != nil {
		t.Fatalf("missing dotenv should be ignored: %v", err)
	}
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(WithEnvMap(map[string]string{
		"KWA_WEB_ENV":               "prod",
		"KWA_WEB_SESSION_BLOCK_KEY": "short",
	}), WithoutSystemEnv(), WithEnvFile(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Problems) != 2 {
		t.Fatalf("expected 2 problems, got %v", verr.Problems)
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	_, err := Load(WithEnvMap(map[string]string{"KWA_WEB_READ_TIMEOUT": "soon"}), WithoutSystemEnv(), WithEnvFile(""))
	if err == nil {
		t.Fatal("expected parse error")
	}
}
