package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), "", envconfig.MapLookuper(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.TokenTTL != 168*time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Gateway.StatusDelay != 500*time.Millisecond {
		t.Fatalf("unexpected gateway status delay: %v", cfg.Gateway.StatusDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate in development: %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte(`
port: "9090"
jwt_secret: from-file
mongo:
  database: from_file
gateway:
  initiate_delay: 10ms
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := load(context.Background(), path, envconfig.MapLookuper(map[string]string{
		"PORT":     "7070",
		"REDIS_DB": "3",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("env should override file, got port %q", cfg.Port)
	}
	if cfg.JWTSecret != "from-file" || cfg.Mongo.Database != "from_file" {
		t.Errorf("file values lost: %+v", cfg)
	}
	if cfg.Gateway.InitiateDelay != 10*time.Millisecond {
		t.Errorf("file duration lost: %v", cfg.Gateway.InitiateDelay)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.Redis.DB)
	}
	if cfg.Mongo.URI == "" {
		t.Error("unset fields should fall back to defaults")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := load(context.Background(), "/does/not/exist.yaml", envconfig.MapLookuper(nil)); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate_DevSecretOutsideDevelopment(t *testing.T) {
	cfg, err := load(context.Background(), "", envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject the development secret in production")
	}

	cfg.JWTSecret = "a-real-secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected Validate to pass with a real secret, got %v", err)
	}
}

func TestValidate_NonPositiveDurations(t *testing.T) {
	cfg, _ := load(context.Background(), "", envconfig.MapLookuper(nil))
	cfg.TokenTTL = 0
	cfg.EscrowHold = -time.Second
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to fail")
	}
}
