package httpapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/kemetion/fantasy-cricket/internal/domain/contest"
	"github.com/kemetion/fantasy-cricket/internal/domain/match"
	"github.com/kemetion/fantasy-cricket/internal/domain/player"
	"github.com/kemetion/fantasy-cricket/internal/domain/scoring"
	"github.com/kemetion/fantasy-cricket/internal/infrastructure/account/jwtauth"
	"github.com/kemetion/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/kemetion/fantasy-cricket/internal/interfaces/httpapi"
	"github.com/kemetion/fantasy-cricket/internal/platform/id"
	"github.com/kemetion/fantasy-cricket/internal/platform/logging"
	"github.com/kemetion/fantasy-cricket/internal/usecase"
)

const testInternalJobToken = "job-token-for-tests"

func testPlayers(n int) []player.Player {
	out := make([]player.Player, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, player.Player{
			ID:   fmt.Sprintf("p%d", i),
			Name: fmt.Sprintf("Player %d", i),
			Role: player.RoleBatter,
		})
	}
	return out
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	matchRepo := memory.NewMatchRepository([]match.Match{{
		ID:       "m1",
		Name:     "Test Match",
		Format:   "t20",
		TeamHome: "Home",
		TeamAway: "Away",
		StartsAt: time.Now().Add(24 * time.Hour),
		Status:   "scheduled",
	}})
	playerRepo := memory.NewPlayerRepository(testPlayers(12))
	contestRepo := memory.NewContestRepository([]contest.Contest{{
		ID:         "c1",
		MatchID:    "m1",
		Name:       "Test Contest",
		MaxEntries: 100,
		CreatedAt:  time.Now(),
	}})
	userRepo := memory.NewUserRepository()
	teamRepo := memory.NewTeamRepository()
	perfRepo := memory.NewPerformanceRepository()

	rules, err := scoring.NewRuleTable(scoring.DefaultRules())
	if err != nil {
		t.Fatalf("build rule table: %v", err)
	}

	tokens := jwtauth.NewManager("router-test-secret", "fantasy-cricket", time.Hour)
	ids := id.NewUUIDGenerator()

	authService := usecase.NewAuthService(userRepo, ids, tokens)
	matchService := usecase.NewMatchService(matchRepo)
	teamService := usecase.NewTeamService(teamRepo, matchRepo, playerRepo, ids)
	contestService := usecase.NewContestService(contestRepo, teamRepo, matchRepo)
	scoringService := usecase.NewScoringService(rules, matchRepo, playerRepo, perfRepo, teamRepo)
	leaderboardService := usecase.NewLeaderboardService(scoringService, teamRepo, contestRepo, nil, "")

	handler := httpapi.NewHandler(
		authService,
		matchService,
		teamService,
		contestService,
		scoringService,
		leaderboardService,
		nil,
		logging.NewNop(),
	)

	return httpapi.NewRouter(handler, tokens, logging.NewNop(), nil, testInternalJobToken)
}

type envelope struct {
	APIVersion string          `json:"apiVersion"`
	Data       json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("unmarshal envelope for %s %s: %v", method, path, err)
		}
	}
	return rec, []byte(env.Data)
}

func registerTestUser(t *testing.T, router http.Handler, username, email string) string {
	t.Helper()

	rec, data := doJSON(t, router, http.MethodPost, "/v1/auth/register", "",
		fmt.Sprintf(`{"username":%q,"email":%q,"password":"str0ngpass"}`, username, email))
	if rec.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := sonic.Unmarshal(data, &resp); err != nil {
		t.Fatalf("unmarshal register response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("register returned empty token")
	}
	return resp.Token
}

func TestRouter_FullFantasyFlow(t *testing.T) {
	router := newTestRouter(t)
	token := registerTestUser(t, router, "alice", "alice@example.com")

	rec, data := doJSON(t, router, http.MethodGet, "/v1/users/profile", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile returned %d: %s", rec.Code, rec.Body.String())
	}

	playerIDs := `["p1","p2","p3","p4","p5","p6","p7","p8","p9","p10","p11"]`
	rec, data = doJSON(t, router, http.MethodPost, "/v1/teams", token,
		`{"match_id":"m1","name":"Alice XI","player_ids":`+playerIDs+`,"captain_id":"p1","vice_captain_id":"p2"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create team returned %d: %s", rec.Code, rec.Body.String())
	}

	var team struct {
		ID string `json:"id"`
	}
	if err := sonic.Unmarshal(data, &team); err != nil {
		t.Fatalf("unmarshal team: %v", err)
	}

	rec, _ = doJSON(t, router, http.MethodPost, "/v1/contests/join", token,
		fmt.Sprintf(`{"contest_id":"c1","team_id":%q}`, team.ID))
	if rec.Code != http.StatusCreated {
		t.Fatalf("join contest returned %d: %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/matches/m1/performances",
		strings.NewReader(`{"player_id":"p1","statistics":{"runs":50,"half_centuries":1}}`))
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	ingestRec := httptest.NewRecorder()
	router.ServeHTTP(ingestRec, req)
	if ingestRec.Code != http.StatusCreated {
		t.Fatalf("ingest performance returned %d: %s", ingestRec.Code, ingestRec.Body.String())
	}

	rec, data = doJSON(t, router, http.MethodGet, "/v1/teams/"+team.ID+"/score", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("team score returned %d: %s", rec.Code, rec.Body.String())
	}

	var score struct {
		TotalPoints float64 `json:"total_points"`
	}
	if err := sonic.Unmarshal(data, &score); err != nil {
		t.Fatalf("unmarshal team score: %v", err)
	}
	// p1 is captain: (50 runs + 8 half-century) * 2.
	if score.TotalPoints != 116 {
		t.Fatalf("team score = %v, want 116", score.TotalPoints)
	}

	rec, data = doJSON(t, router, http.MethodGet, "/v1/leaderboard", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard returned %d: %s", rec.Code, rec.Body.String())
	}

	var entries []struct {
		Rank        int     `json:"rank"`
		TotalPoints float64 `json:"total_points"`
	}
	if err := sonic.Unmarshal(data, &entries); err != nil {
		t.Fatalf("unmarshal leaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].Rank != 1 || entries[0].TotalPoints != 116 {
		t.Fatalf("leaderboard = %+v, want single rank-1 entry with 116 points", entries)
	}
}

func TestRouter_AuthRequired(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodGet, "/v1/users/profile", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/v1/users/profile", "garbage-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with invalid token, got %d", rec.Code)
	}
}

func TestRouter_InternalJobTokenRequired(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-live", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without job token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-live", strings.NewReader("{}"))
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	// No live feed wired in this setup.
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with job token but no refresher, got %d", rec.Code)
	}
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz returned %d", rec.Code)
	}
}
