package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kemetion/fantasy-cricket/internal/config"
	"github.com/kemetion/fantasy-cricket/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:              config.EnvDev,
		ServiceName:         "fantasy-cricket",
		HTTPAddr:            ":0",
		JWTSecret:           "app-test-secret",
		JWTIssuer:           "fantasy-cricket",
		JWTTTL:              time.Hour,
		CacheEnabled:        true,
		CacheTTL:            time.Minute,
		LeaderboardScope:    config.LeaderboardScopeGlobal,
		ScoreEnsureInterval: time.Minute,
		InternalJobToken:    "app-test-job-token",
		ReadTimeout:         5 * time.Second,
		WriteTimeout:        5 * time.Second,
		JobLiveInterval:     time.Minute,
	}
}

func TestNew_MemoryMode(t *testing.T) {
	application, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = application.Close(shutdownCtx)
	})

	recorder := httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	// Seeded catalog data is served without a database.
	recorder = httptest.NewRecorder()
	application.Server.Handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/matches", nil))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestNew_RequiresHTTPAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestStartBackgroundJobs_NoFeedIsNoop(t *testing.T) {
	application, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)

	application.StartBackgroundJobs()
	require.Nil(t, application.jobs)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, application.Close(shutdownCtx))
}
