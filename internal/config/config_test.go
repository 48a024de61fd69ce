// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import (
	"strings"
	"testing"
	"time"
)

// clearEnv sets every variable Load reads to "" so envOrDefault falls
// through to defaults. t.Setenv restores the originals after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_HOST", "APP_PORT", "APP_ENV", "LOG_LEVEL", "SITE_URL",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD", "CACHE_TTL",
		"TRANSLATE_BASE_URL", "TRANSLATE_RATE", "TRANSLATE_TIMEOUT",
		"RESEND_API_KEY", "CONTACT_FROM", "CONTACT_TO",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD",
		"S3_ENDPOINT", "S3_REGION", "S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_PUBLIC_URL",
	} {
		t.Setenv(key, "")
	}
}

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s: got %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("DBUser", cfg.DBUser, "kulipoly")
	check("DBName", cfg.DBName, "kulipoly")
	check("TranslateBaseURL", cfg.TranslateBaseURL, "https://translate.googleapis.com/translate_a/single")

	if cfg.TranslateRate != 10 {
		t.Errorf("TranslateRate: got %d, want 10", cfg.TranslateRate)
	}
	if cfg.TranslateTimeout != 15*time.Second {
		t.Errorf("TranslateTimeout: got %v, want 15s", cfg.TranslateTimeout)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL: got %v, want 5m", cfg.CacheTTL)
	}
	if len(cfg.ContactTo) != 1 || cfg.ContactTo[0] != "contact@kulipoly.com" {
		t.Errorf("ContactTo: got %v", cfg.ContactTo)
	}
	if !cfg.IsDev() {
		t.Error("IsDev: expected true for default env")
	}
}

func TestLoad_ProductionRequiresPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for default password in production")
	}
	if !strings.Contains(err.Error(), "POSTGRES_PASSWORD") {
		t.Errorf("error should mention POSTGRES_PASSWORD: %v", err)
	}

	t.Setenv("POSTGRES_PASSWORD", "s3cret")
	if _, err := Load(); err != nil {
		t.Fatalf("Load with password set: %v", err)
	}
}

func TestLoad_NonPositiveRateRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSLATE_RATE", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for a zero translation rate")
	}
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSLATE_RATE", "fast")
	t.Setenv("TRANSLATE_TIMEOUT", "soon")
	t.Setenv("CONTACT_TO", "a@example.com, ,b@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TranslateRate != 10 {
		t.Errorf("TranslateRate: got %d, want fallback 10", cfg.TranslateRate)
	}
	if cfg.TranslateTimeout != 15*time.Second {
		t.Errorf("TranslateTimeout: got %v, want fallback 15s", cfg.TranslateTimeout)
	}
	if len(cfg.ContactTo) != 2 {
		t.Errorf("ContactTo: got %v, want 2 entries", cfg.ContactTo)
	}
}

func TestDSNAndAddr(t *testing.T) {
	cfg := &Config{
		Host: "127.0.0.1", Port: "9000",
		DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5433", DBName: "n",
	}
	if got, want := cfg.DSN(), "postgres://u:p@db:5433/n?sslmode=disable"; got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}
	if got, want := cfg.Addr(), "127.0.0.1:9000"; got != want {
		t.Errorf("Addr: got %q, want %q", got, want)
	}
}
