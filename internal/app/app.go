// Package app assembles the service: storage, domain services, external
// clients, the HTTP router, and the background job loops.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sourcegraph/conc"

	"github.com/kemetion/fantasy-cricket/external/cricketdata"
	"github.com/kemetion/fantasy-cricket/external/jobqueue"
	"github.com/kemetion/fantasy-cricket/internal/config"
	"github.com/kemetion/fantasy-cricket/internal/domain/contest"
	"github.com/kemetion/fantasy-cricket/internal/domain/fantasy"
	"github.com/kemetion/fantasy-cricket/internal/domain/match"
	"github.com/kemetion/fantasy-cricket/internal/domain/performance"
	"github.com/kemetion/fantasy-cricket/internal/domain/player"
	"github.com/kemetion/fantasy-cricket/internal/domain/scoring"
	"github.com/kemetion/fantasy-cricket/internal/domain/user"
	"github.com/kemetion/fantasy-cricket/internal/infrastructure/account/jwtauth"
	"github.com/kemetion/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/kemetion/fantasy-cricket/internal/infrastructure/repository/postgres"
	"github.com/kemetion/fantasy-cricket/internal/interfaces/httpapi"
	"github.com/kemetion/fantasy-cricket/internal/platform/cache"
	"github.com/kemetion/fantasy-cricket/internal/platform/id"
	"github.com/kemetion/fantasy-cricket/internal/platform/logging"
	"github.com/kemetion/fantasy-cricket/internal/platform/resilience"
	"github.com/kemetion/fantasy-cricket/internal/usecase"
)

const refreshLiveJobPath = "/v1/internal/jobs/refresh-live"

type repositories struct {
	users    user.Repository
	matches  match.Repository
	players  player.Repository
	perfs    performance.Repository
	teams    fantasy.Repository
	contests contest.Repository
	rules    scoring.Repository
}

// App owns everything with a lifecycle: the HTTP server, the database
// handle, and the background job loops.
type App struct {
	Server *http.Server

	cfg       config.Config
	logger    *logging.Logger
	db        *sqlx.DB
	refresher *usecase.RefreshService
	publisher *jobqueue.QStashPublisher

	jobs     *conc.WaitGroup
	stopJobs context.CancelFunc
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	repos := buildRepositories(db, logger)
	ruleTable, err := loadRuleTable(ctx, repos.rules, logger)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	var leaderboardCache *cache.Store
	if cfg.CacheEnabled {
		leaderboardCache = cache.NewStore(cfg.CacheTTL)
	}

	ids := id.NewUUIDGenerator()
	tokens := jwtauth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	authSvc := usecase.NewAuthService(repos.users, ids, tokens)
	matchSvc := usecase.NewMatchService(repos.matches)
	teamSvc := usecase.NewTeamService(repos.teams, repos.matches, repos.players, ids)
	contestSvc := usecase.NewContestService(repos.contests, repos.teams, repos.matches)
	scoringSvc := usecase.NewScoringService(ruleTable, repos.matches, repos.players, repos.perfs, repos.teams)
	scoringSvc.SetEnsureInterval(cfg.ScoreEnsureInterval)
	leaderboardSvc := usecase.NewLeaderboardService(scoringSvc, repos.teams, repos.contests, leaderboardCache, cfg.LeaderboardScope)

	var refreshSvc *usecase.RefreshService
	if cfg.CricketFeedEnabled {
		feed := cricketdata.NewClient(cricketdata.ClientConfig{
			BaseURL:    cfg.CricketFeedBaseURL,
			APIKey:     cfg.CricketFeedAPIKey,
			Timeout:    cfg.CricketFeedTimeout,
			MaxRetries: cfg.CricketFeedMaxRetries,
			Logger:     logger,
			Cache:      newFeedCache(cfg),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.CricketFeedCircuitEnabled,
				FailureThreshold: cfg.CricketFeedCircuitFailureCount,
				OpenTimeout:      cfg.CricketFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.CricketFeedCircuitHalfOpenMaxReq,
			},
		})
		refreshSvc = usecase.NewRefreshService(feed, repos.matches, repos.players, repos.perfs, scoringSvc, logger, cfg.RefreshWorkers)
		scoringSvc.SetRefresher(refreshSvc)
	}

	var publisher *jobqueue.QStashPublisher
	if cfg.QStashEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	handler := httpapi.NewHandler(authSvc, matchSvc, teamSvc, contestSvc, scoringSvc, leaderboardSvc, refreshSvc, logger)
	router := httpapi.NewRouter(handler, tokens, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:    server,
		cfg:       cfg,
		logger:    logger,
		db:        db,
		refresher: refreshSvc,
		publisher: publisher,
	}, nil
}

func buildRepositories(db *sqlx.DB, logger *logging.Logger) repositories {
	if db != nil {
		return repositories{
			users:    postgres.NewUserRepository(db),
			matches:  postgres.NewMatchRepository(db),
			players:  postgres.NewPlayerRepository(db),
			perfs:    postgres.NewPerformanceRepository(db),
			teams:    postgres.NewTeamRepository(db),
			contests: postgres.NewContestRepository(db),
			rules:    postgres.NewScoringRuleRepository(db),
		}
	}

	logger.Info("DB_URL is empty, using seeded in-memory repositories")
	return repositories{
		users:    memory.NewUserRepository(),
		matches:  memory.NewMatchRepository(memory.SeedMatches()),
		players:  memory.NewPlayerRepository(memory.SeedPlayers()),
		perfs:    memory.NewPerformanceRepository(),
		teams:    memory.NewTeamRepository(),
		contests: memory.NewContestRepository(memory.SeedContests()),
		rules:    memory.NewScoringRuleRepository(scoring.DefaultRules()),
	}
}

// loadRuleTable prefers persisted rules so point values can be tuned without
// a deploy; an empty table falls back to the built-in defaults.
func loadRuleTable(ctx context.Context, repo scoring.Repository, logger *logging.Logger) (*scoring.RuleTable, error) {
	rules, err := repo.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("load scoring rules: %w", err)
	}
	if len(rules) == 0 {
		logger.Warn("no scoring rules persisted, falling back to defaults")
		rules = scoring.DefaultRules()
	}

	table, err := scoring.NewRuleTable(rules)
	if err != nil {
		return nil, fmt.Errorf("build rule table: %w", err)
	}
	return table, nil
}

func newFeedCache(cfg config.Config) *cache.Store {
	if cfg.CricketFeedCacheTTL <= 0 {
		return nil
	}
	return cache.NewStore(cfg.CricketFeedCacheTTL)
}

// StartBackgroundJobs launches the refresh-live scheduler. With QStash
// configured the job is published to the queue and re-enters through the
// internal HTTP endpoint; otherwise it runs in-process.
func (a *App) StartBackgroundJobs() {
	if a.jobs != nil {
		return
	}
	if a.refresher == nil {
		a.logger.Info("live feed disabled, no background jobs to run")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.stopJobs = cancel
	a.jobs = conc.NewWaitGroup()

	a.jobs.Go(func() {
		a.runRefreshLiveLoop(ctx)
	})
}

func (a *App) runRefreshLiveLoop(ctx context.Context) {
	interval := a.cfg.JobLiveInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.logger.Info("refresh-live scheduler started", "interval", interval.String(), "via_qstash", a.publisher != nil)

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("refresh-live scheduler stopped")
			return
		case tick := <-ticker.C:
			a.dispatchRefreshLive(ctx, tick)
		}
	}
}

func (a *App) dispatchRefreshLive(ctx context.Context, tick time.Time) {
	if a.publisher != nil {
		// One deduplication id per tick window keeps overlapping schedulers
		// from double-publishing the same run.
		dedupID := fmt.Sprintf("refresh-live-%d", tick.Unix())
		if err := a.publisher.Enqueue(ctx, refreshLiveJobPath, map[string]any{"source": "scheduler"}, 0, dedupID); err != nil {
			a.logger.ErrorContext(ctx, "publish refresh-live job", "error", err)
		}
		return
	}

	result, err := a.refresher.RefreshLive(ctx)
	if err != nil {
		a.logger.ErrorContext(ctx, "refresh live matches", "error", err)
		return
	}
	a.logger.InfoContext(ctx, "refreshed live matches",
		"match_count", result.MatchCount,
		"player_count", result.PlayerCount,
		"failed_count", result.FailedCount,
		"skipped_count", result.SkippedCount,
		"duration_ms", result.DurationMs,
	)
}

// Close stops the job loops, shuts the HTTP server down, and releases the
// database handle.
func (a *App) Close(ctx context.Context) error {
	if a.stopJobs != nil {
		a.stopJobs()
	}
	if a.jobs != nil {
		a.jobs.Wait()
	}

	var firstErr error
	if err := a.Server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("shutdown http server: %w", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close database: %w", err)
		}
	}
	return firstErr
}
