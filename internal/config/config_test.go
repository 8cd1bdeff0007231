package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ALLOWED_ORIGIN", "SQLITE_PATH", "DATABASE_URL", "REDIS_ADDR", "REPORT_DIR", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("default port = %s", cfg.Port)
	}
	if cfg.SQLitePath != "caixalivre.db" {
		t.Fatalf("default sqlite path = %s", cfg.SQLitePath)
	}
	if cfg.ReportDir != "reports" {
		t.Fatalf("default report dir = %s", cfg.ReportDir)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("address = %s", cfg.Address())
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9900")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()
	if cfg.Port != "9900" || cfg.Address() != ":9900" {
		t.Fatalf("port not taken from env: %+v", cfg)
	}
	if cfg.RedisAddr != "127.0.0.1:6379" || cfg.RedisDB != 3 {
		t.Fatalf("redis settings not taken from env: %+v", cfg)
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("log format not taken from env: %s", cfg.LogFormat)
	}
}
