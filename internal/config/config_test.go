package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_LNPConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("LNP_BASE_URL", "http://scraper.internal:8090/")
	t.Setenv("LNP_TOKEN", "token-123")
	t.Setenv("LNP_TIMEOUT", "45s")
	t.Setenv("LNP_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LNPBaseURL != "http://scraper.internal:8090/" {
		t.Fatalf("unexpected LNPBaseURL: %q", cfg.LNPBaseURL)
	}
	if cfg.LNPToken != "token-123" {
		t.Fatalf("unexpected LNPToken")
	}
	if cfg.LNPTimeout != 45*time.Second {
		t.Fatalf("unexpected LNPTimeout: %s", cfg.LNPTimeout)
	}
	if cfg.LNPCircuitFailureCount != 3 {
		t.Fatalf("unexpected LNPCircuitFailureCount: %d", cfg.LNPCircuitFailureCount)
	}
	if cfg.UseSnapshot() {
		t.Fatalf("expected live mode without LNP_SNAPSHOT_DIR")
	}
}

func TestLoad_SnapshotMode(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("LNP_SNAPSHOT_DIR", "/var/lib/lnp/export")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.UseSnapshot() {
		t.Fatalf("expected snapshot mode when LNP_SNAPSHOT_DIR is set")
	}
}

func TestLoad_SeasonAllowlist(t *testing.T) {
	t.Run("defaults to the recent seasons", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("IMPORT_SEASONS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.SeasonAllowlist) != 3 || cfg.SeasonAllowlist[0] != "2022/2023" {
			t.Fatalf("unexpected default allowlist: %v", cfg.SeasonAllowlist)
		}
	})

	t.Run("trims custom entries", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("IMPORT_SEASONS", " 2023/2024 , 2022/2023 ")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.SeasonAllowlist) != 2 || cfg.SeasonAllowlist[0] != "2023/2024" {
			t.Fatalf("unexpected allowlist: %v", cfg.SeasonAllowlist)
		}
	})
}

func TestLoad_LinkWorkersValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("LINK_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for LINK_WORKERS=0")
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel.String())
	}
}

func TestParseUptraceDSNFromOTLPHeaders(t *testing.T) {
	dsn := parseUptraceDSNFromOTLPHeaders(`uptrace-dsn="https://token@api.uptrace.dev/42"`)
	if dsn != "https://token@api.uptrace.dev/42" {
		t.Fatalf("unexpected dsn: %q", dsn)
	}

	if parseUptraceDSNFromOTLPHeaders("other=1") != "" {
		t.Fatalf("expected empty dsn for unrelated headers")
	}
}
