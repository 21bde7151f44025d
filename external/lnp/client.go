package lnp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pitchmap/lnp-importer/internal/platform/logging"
	"github.com/pitchmap/lnp-importer/internal/platform/resilience"
	"github.com/pitchmap/lnp-importer/internal/usecase"
)

const (
	leaguesPath       = "/leagues/all/"
	teamHistoriesPath = "/team-histories/all/"
	clubDetailsPath   = "/clubs/%s/"
	teamPlaysPath     = "/teams/%s/plays/"
	playTeamsPath     = "/plays/%s/teams/"

	maxResponseBytes = 6 << 20
)

var errTransient = crerr.New("lnp transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches scraped collections from the live LNP scraper service. Every
// call is a single synchronous request; a non-2xx response is a hard failure
// and retrying is left to the operator re-running the import.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	logger         *logging.Logger
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
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) ListLeagues(ctx context.Context) ([]usecase.SourceLeague, error) {
	var docs []leagueDocument
	if err := c.getJSON(ctx, leaguesPath, &docs); err != nil {
		return nil, err
	}
	if err := validateSlice(docs); err != nil {
		return nil, fmt.Errorf("%w: malformed league document: %v", usecase.ErrSourceUnavailable, err)
	}

	out := make([]usecase.SourceLeague, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toSource())
	}
	return out, nil
}

func (c *Client) ListTeamHistories(ctx context.Context) ([]usecase.SourceTeamHistory, error) {
	var docs []teamHistoryDocument
	if err := c.getJSON(ctx, teamHistoriesPath, &docs); err != nil {
		return nil, err
	}
	if err := validateSlice(docs); err != nil {
		return nil, fmt.Errorf("%w: malformed team history document: %v", usecase.ErrSourceUnavailable, err)
	}

	out := make([]usecase.SourceTeamHistory, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toSource())
	}
	return out, nil
}

func (c *Client) GetClubDetails(ctx context.Context, clubID string) (usecase.SourceClub, bool, error) {
	if strings.TrimSpace(clubID) == "" {
		return usecase.SourceClub{}, false, fmt.Errorf("%w: club id is required", usecase.ErrInvalidInput)
	}

	raw, err := c.fetch(ctx, fmt.Sprintf(clubDetailsPath, clubID))
	if err != nil {
		return usecase.SourceClub{}, false, err
	}
	if emptyBody(raw) {
		return usecase.SourceClub{}, false, nil
	}

	var doc clubDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return usecase.SourceClub{}, false, fmt.Errorf("%w: decode club document: %v", usecase.ErrSourceUnavailable, err)
	}
	if err := validate.Struct(doc); err != nil {
		return usecase.SourceClub{}, false, fmt.Errorf("%w: malformed club document: %v", usecase.ErrSourceUnavailable, err)
	}

	return doc.toSource(), true, nil
}

func (c *Client) ListTeamPlays(ctx context.Context, teamID string) ([]usecase.SourcePlay, error) {
	if strings.TrimSpace(teamID) == "" {
		return nil, fmt.Errorf("%w: team id is required", usecase.ErrInvalidInput)
	}

	var docs []playDocument
	if err := c.getJSON(ctx, fmt.Sprintf(teamPlaysPath, teamID), &docs); err != nil {
		return nil, err
	}
	if err := validateSlice(docs); err != nil {
		return nil, fmt.Errorf("%w: malformed play document: %v", usecase.ErrSourceUnavailable, err)
	}

	out := make([]usecase.SourcePlay, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toSource())
	}
	return out, nil
}

// ListPlayTeams is called twice per repoint check, once for the currently
// linked play and once for the candidate, so the fetch is deduplicated
// through the single-flight group.
func (c *Client) ListPlayTeams(ctx context.Context, playID string) ([]usecase.SourceTeam, error) {
	if strings.TrimSpace(playID) == "" {
		return nil, fmt.Errorf("%w: play id is required", usecase.ErrInvalidInput)
	}

	path := fmt.Sprintf(playTeamsPath, playID)
	out, err, _ := c.flight.Do(path, func() (any, error) {
		var docs []teamDocument
		if err := c.getJSON(ctx, path, &docs); err != nil {
			return nil, err
		}
		if err := validateSlice(docs); err != nil {
			return nil, fmt.Errorf("%w: malformed team document: %v", usecase.ErrSourceUnavailable, err)
		}

		teams := make([]usecase.SourceTeam, 0, len(docs))
		for _, doc := range docs {
			teams = append(teams, doc.toSource())
		}
		return teams, nil
	})
	if err != nil {
		return nil, err
	}

	teams, ok := out.([]usecase.SourceTeam)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	return teams, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	raw, err := c.fetch(ctx, path)
	if err != nil {
		return err
	}
	if emptyBody(raw) {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode source payload: %v", usecase.ErrSourceUnavailable, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "lnp circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: source is temporarily unavailable", usecase.ErrSourceUnavailable)
		}
	}

	raw, err := c.executeRequest(ctx, c.baseURL+path)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errTransient) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return raw, err
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	if c.token != "" {
		req.Header.Set("authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("%w: send request: %v", usecase.ErrSourceUnavailable, err), errTransient)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, crerr.Mark(fmt.Errorf("%w: read response body: %v", usecase.ErrSourceUnavailable, err), errTransient)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("%w: source status=%d url=%s", usecase.ErrSourceUnavailable, resp.StatusCode, fullURL)
		if resp.StatusCode >= 500 {
			err = crerr.Mark(err, errTransient)
		}
		c.logger.WarnContext(ctx, "lnp request failed", "url", fullURL, "status", resp.StatusCode)
		return nil, err
	}

	return raw, nil
}

func emptyBody(raw []byte) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null" || trimmed == "[]" || trimmed == "{}"
}
