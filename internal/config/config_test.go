package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_JWTSecretRequired(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is empty")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.LeaderboardScope != LeaderboardScopeGlobal {
		t.Fatalf("unexpected LeaderboardScope: %q", cfg.LeaderboardScope)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("unexpected JWTTTL: %s", cfg.JWTTTL)
	}
	if cfg.ScoreEnsureInterval != 30*time.Second {
		t.Fatalf("unexpected ScoreEnsureInterval: %s", cfg.ScoreEnsureInterval)
	}
	if cfg.RefreshWorkers != 4 {
		t.Fatalf("unexpected RefreshWorkers: %d", cfg.RefreshWorkers)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != time.Minute {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
}

func TestLoad_LeaderboardScopeValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LEADERBOARD_SCOPE", "per_contest")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LeaderboardScope != LeaderboardScopePerContest {
		t.Fatalf("unexpected LeaderboardScope: %q", cfg.LeaderboardScope)
	}

	t.Setenv("LEADERBOARD_SCOPE", "everyone")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid LEADERBOARD_SCOPE")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_CricketFeedRequiresAPIKeyWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CRICKETDATA_ENABLED", "true")
	t.Setenv("CRICKETDATA_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when CRICKETDATA_ENABLED=true without CRICKETDATA_API_KEY")
	}
}

func TestLoad_CricketFeedConfigParsing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CRICKETDATA_ENABLED", "true")
	t.Setenv("CRICKETDATA_API_KEY", "key-123")
	t.Setenv("CRICKETDATA_TIMEOUT", "7s")
	t.Setenv("CRICKETDATA_MAX_RETRIES", "2")
	t.Setenv("CRICKETDATA_CACHE_TTL", "10s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.CricketFeedEnabled {
		t.Fatalf("expected CricketFeedEnabled=true")
	}
	if cfg.CricketFeedAPIKey != "key-123" {
		t.Fatalf("unexpected CricketFeedAPIKey")
	}
	if cfg.CricketFeedTimeout != 7*time.Second {
		t.Fatalf("unexpected CricketFeedTimeout: %s", cfg.CricketFeedTimeout)
	}
	if cfg.CricketFeedMaxRetries != 2 {
		t.Fatalf("unexpected CricketFeedMaxRetries: %d", cfg.CricketFeedMaxRetries)
	}
	if cfg.CricketFeedCacheTTL != 10*time.Second {
		t.Fatalf("unexpected CricketFeedCacheTTL: %s", cfg.CricketFeedCacheTTL)
	}
}

func TestLoad_QStashRequiresTokenAndTarget(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("QSTASH_ENABLED", "true")
	t.Setenv("QSTASH_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED=true without QSTASH_TOKEN")
	}

	t.Setenv("QSTASH_TOKEN", "token-123")
	t.Setenv("QSTASH_TARGET_BASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when QSTASH_ENABLED=true without QSTASH_TARGET_BASE_URL")
	}

	t.Setenv("QSTASH_TARGET_BASE_URL", "https://api.example.com")
	t.Setenv("INTERNAL_JOB_TOKEN", "job-token")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.QStashEnabled || cfg.QStashRetries != 3 {
		t.Fatalf("unexpected qstash config: enabled=%v retries=%d", cfg.QStashEnabled, cfg.QStashRetries)
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel.String())
	}
}
