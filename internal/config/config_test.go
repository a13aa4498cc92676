package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.SiteName != "main" {
		t.Errorf("SiteName = %q, want %q", cfg.SiteName, "main")
	}
	if cfg.DefaultLang != "en" {
		t.Errorf("DefaultLang = %q, want %q", cfg.DefaultLang, "en")
	}
	if cfg.DurableEnabled() {
		t.Error("DurableEnabled() = true with no DB path")
	}
	if cfg.SessionTTL() != 24*time.Hour {
		t.Errorf("SessionTTL() = %v, want 24h", cfg.SessionTTL())
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true by default")
	}
}

func TestLoadNormalizesLanguage(t *testing.T) {
	t.Setenv("MKCMS_DEFAULT_LANGUAGE", "EN-us")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultLang != "en" {
		t.Errorf("DefaultLang = %q, want %q", cfg.DefaultLang, "en")
	}
}

func TestLoadRejectsBadLanguage(t *testing.T) {
	t.Setenv("MKCMS_DEFAULT_LANGUAGE", "!!")

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid language code")
	}
}

func TestLoadRejectsZeroSessionTTL(t *testing.T) {
	t.Setenv("MKCMS_SESSION_TTL_HOURS", "0")

	if _, err := Load(); err == nil {
		t.Error("expected error for zero session TTL")
	}
}

func TestDurableConfig(t *testing.T) {
	t.Setenv("MKCMS_DB_PATH", "/tmp/site.db")
	t.Setenv("MKCMS_DURABLE_TIMEOUT_MS", "250")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.DurableEnabled() {
		t.Error("DurableEnabled() = false with DB path set")
	}
	if cfg.DurableTimeout() != 250*time.Millisecond {
		t.Errorf("DurableTimeout() = %v, want 250ms", cfg.DurableTimeout())
	}
}
