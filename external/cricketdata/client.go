// Package cricketdata talks to the CricAPI feed and maps its payloads to
// the shapes the refresh pipeline consumes.
package cricketdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/kemetion/fantasy-cricket/internal/domain/match"
	"github.com/kemetion/fantasy-cricket/internal/domain/player"
	"github.com/kemetion/fantasy-cricket/internal/platform/cache"
	"github.com/kemetion/fantasy-cricket/internal/platform/logging"
	"github.com/kemetion/fantasy-cricket/internal/platform/resilience"
	"github.com/kemetion/fantasy-cricket/internal/usecase"
)

const (
	defaultBaseURL = "https://cricapi.com/api"

	matchesPath        = "/matches"
	fantasySummaryPath = "/fantasySummary"
)

var errCricketDataTransient = crerr.New("cricketdata transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	Cache          *cache.Store
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	cache          *cache.Store
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		cache:          cfg.Cache,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchLiveMatches implements usecase.CricketDataProvider.
func (c *Client) FetchLiveMatches(ctx context.Context) ([]usecase.ExternalMatch, error) {
	var envelope matchesEnvelope
	if err := c.getJSON(ctx, matchesPath, nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch matches: %w", err)
	}

	out := make([]usecase.ExternalMatch, 0, len(envelope.Matches))
	for _, item := range envelope.Matches {
		if item.UniqueID <= 0 || !item.MatchStarted {
			continue
		}
		if strings.TrimSpace(item.WinnerTeam) != "" {
			continue
		}
		out = append(out, mapMatchItem(item))
	}
	return out, nil
}

// FetchMatchScorecard implements usecase.CricketDataProvider.
func (c *Client) FetchMatchScorecard(ctx context.Context, matchID string) (usecase.ExternalScorecard, error) {
	uniqueID := strings.TrimPrefix(strings.TrimSpace(matchID), externalIDPrefix)
	if uniqueID == "" {
		return usecase.ExternalScorecard{}, fmt.Errorf("match id is required")
	}

	var envelope fantasySummaryEnvelope
	query := map[string]string{"unique_id": uniqueID}
	if err := c.getJSON(ctx, fantasySummaryPath, query, &envelope); err != nil {
		return usecase.ExternalScorecard{}, fmt.Errorf("fetch fantasy summary unique_id=%s: %w", uniqueID, err)
	}

	return usecase.ExternalScorecard{
		MatchID: matchID,
		Players: mapSummaryToPerformances(envelope.Data),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, target any) error {
	var out any
	var err error
	if c.cache != nil {
		params := make([]string, 0, len(query))
		for key, value := range query {
			params = append(params, key+"="+value)
		}
		out, err = c.cache.GetOrLoad(ctx, cache.Key("cricketdata"+path, params...), func(ctx context.Context) (any, error) {
			return c.doRequest(ctx, path, query)
		})
	} else {
		out, err, _ = c.flight.Do(path+"?"+encodeQuery(query), func() (any, error) {
			return c.doRequest(ctx, path, query)
		})
	}
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "cricketdata circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: cricket data provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("apikey", c.apiKey)
	fullURL := c.baseURL + path + "?" + values.Encode()

	raw, err := c.executeRequest(ctx, fullURL)
	if c.circuitEnabled {
		if err != nil && isCricketDataCircuitFailure(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errCricketDataTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errCricketDataTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errCricketDataTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "cricketdata request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

func isCricketDataCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errCricketDataTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func encodeQuery(query map[string]string) string {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	return values.Encode()
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("apikey") {
		query.Set("apikey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func sanitizeSensitiveText(text, secret string) string {
	if strings.TrimSpace(secret) == "" {
		return text
	}
	return strings.ReplaceAll(text, secret, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}

const externalIDPrefix = "crk-"

type matchesEnvelope struct {
	Matches []matchItem `json:"matches"`
}

type matchItem struct {
	UniqueID     int64  `json:"unique_id"`
	Team1        string `json:"team-1"`
	Team2        string `json:"team-2"`
	Type         string `json:"type"`
	DateTimeGMT  string `json:"dateTimeGMT"`
	MatchStarted bool   `json:"matchStarted"`
	WinnerTeam   string `json:"winner_team"`
	Venue        string `json:"venue"`
}

type fantasySummaryEnvelope struct {
	Data fantasySummaryData `json:"data"`
}

type fantasySummaryData struct {
	Batting  []battingRow  `json:"batting"`
	Bowling  []bowlingRow  `json:"bowling"`
	Fielding []fieldingRow `json:"fielding"`
}

type battingRow struct {
	PID       int64  `json:"pid"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	Runs      int    `json:"R"`
	Fours     int    `json:"4s"`
	Sixes     int    `json:"6s"`
	Dismissal string `json:"dismissal"`
}

type bowlingRow struct {
	PID     int64  `json:"pid"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Wickets int    `json:"W"`
	Maidens int    `json:"M"`
}

type fieldingRow struct {
	PID       int64  `json:"pid"`
	Name      string `json:"name"`
	Country   string `json:"country"`
	Catches   int    `json:"catch"`
	Stumpings int    `json:"stumped"`
	RunOuts   int    `json:"runout"`
}

func mapMatchItem(item matchItem) usecase.ExternalMatch {
	startsAt, _ := time.Parse(time.RFC3339, item.DateTimeGMT)
	format := match.NormalizeStatus(item.Type)
	name := item.Team1 + " vs " + item.Team2
	return usecase.ExternalMatch{
		ExternalID: externalIDPrefix + strconv.FormatInt(item.UniqueID, 10),
		Name:       name,
		Venue:      item.Venue,
		Format:     format,
		TeamHome:   item.Team1,
		TeamAway:   item.Team2,
		StartsAt:   startsAt,
		Status:     "live",
	}
}

// mapSummaryToPerformances merges batting, bowling, and fielding rows into
// one statistics map per player, deriving the milestone stats the scoring
// rules read (half centuries, centuries, ducks).
func mapSummaryToPerformances(data fantasySummaryData) []usecase.ExternalPlayerPerformance {
	byID := make(map[string]*usecase.ExternalPlayerPerformance)

	ensure := func(pid int64, name, country string) *usecase.ExternalPlayerPerformance {
		id := externalIDPrefix + strconv.FormatInt(pid, 10)
		entry, ok := byID[id]
		if !ok {
			entry = &usecase.ExternalPlayerPerformance{
				PlayerID:   id,
				Name:       name,
				Country:    country,
				Statistics: make(map[string]float64),
			}
			byID[id] = entry
		}
		return entry
	}

	batted := make(map[string]bool)
	bowled := make(map[string]bool)

	for _, row := range data.Batting {
		if row.PID <= 0 {
			continue
		}
		entry := ensure(row.PID, row.Name, row.Country)
		entry.Statistics["runs"] = float64(row.Runs)
		entry.Statistics["fours"] = float64(row.Fours)
		entry.Statistics["sixes"] = float64(row.Sixes)
		if row.Runs >= 100 {
			entry.Statistics["centuries"] = 1
		} else if row.Runs >= 50 {
			entry.Statistics["half_centuries"] = 1
		}
		if row.Runs == 0 && isDismissed(row.Dismissal) {
			entry.Statistics["ducks"] = 1
		}
		batted[entry.PlayerID] = true
	}

	for _, row := range data.Bowling {
		if row.PID <= 0 {
			continue
		}
		entry := ensure(row.PID, row.Name, row.Country)
		entry.Statistics["wickets"] = float64(row.Wickets)
		entry.Statistics["maiden_overs"] = float64(row.Maidens)
		bowled[entry.PlayerID] = true
	}

	for _, row := range data.Fielding {
		if row.PID <= 0 {
			continue
		}
		entry := ensure(row.PID, row.Name, row.Country)
		if row.Catches > 0 {
			entry.Statistics["catches"] = float64(row.Catches)
		}
		if row.Stumpings > 0 {
			entry.Statistics["stumpings"] = float64(row.Stumpings)
		}
		if row.RunOuts > 0 {
			entry.Statistics["run_outs"] = float64(row.RunOuts)
		}
	}

	out := make([]usecase.ExternalPlayerPerformance, 0, len(byID))
	for id, entry := range byID {
		entry.Role = string(inferRole(batted[id], bowled[id], entry.Statistics["stumpings"] > 0))
		out = append(out, *entry)
	}
	return out
}

func inferRole(batted, bowled, kept bool) player.Role {
	switch {
	case kept:
		return player.RoleWicketKeeper
	case batted && bowled:
		return player.RoleAllRounder
	case bowled:
		return player.RoleBowler
	default:
		return player.RoleBatter
	}
}

func isDismissed(dismissal string) bool {
	text := strings.ToLower(strings.TrimSpace(dismissal))
	return text != "" && text != "not out"
}
