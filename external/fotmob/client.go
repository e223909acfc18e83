package fotmob

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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/scorefeed"
	"github.com/riskibarqy/worldcup-tracker/internal/platform/logging"
	"github.com/riskibarqy/worldcup-tracker/internal/platform/resilience"
	"github.com/riskibarqy/worldcup-tracker/internal/usecase"
)

const (
	defaultBaseURL            = "https://www.fotmob.com/api"
	defaultUserAgent          = "Mozilla/5.0 (compatible; WorldCupSync/1.0)"
	defaultRateLimitDelay     = 200 * time.Millisecond
	defaultRetryBackoff       = time.Second
	defaultRateLimitedBackoff = 5 * time.Second
	maxResponseBytes          = 6 << 20
	dayLayout                 = "20060102"
)

var errFotMobTransient = crerr.New("fotmob transient failure")

type ClientConfig struct {
	HTTPClient         *http.Client
	BaseURL            string
	Timeout            time.Duration
	MaxRetries         int
	RateLimitDelay     time.Duration
	RetryBackoff       time.Duration
	RateLimitedBackoff time.Duration
	UserAgent          string
	Logger             *logging.Logger
	CircuitBreaker     resilience.CircuitBreakerConfig
}

// Client is a sequential, rate limited FotMob API client.
type Client struct {
	httpClient         *http.Client
	baseURL            string
	userAgent          string
	maxRetries         int
	retryBackoff       time.Duration
	rateLimitedBackoff time.Duration
	limiter            *rate.Limiter
	logger             *logging.Logger
	breaker            *resilience.CircuitBreaker
	circuitEnabled     bool
}

var _ scorefeed.Provider = (*Client)(nil)

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
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	delay := cfg.RateLimitDelay
	if delay < 0 {
		delay = defaultRateLimitDelay
	}
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}

	retryBackoff := cfg.RetryBackoff
	if retryBackoff <= 0 {
		retryBackoff = defaultRetryBackoff
	}
	rateLimitedBackoff := cfg.RateLimitedBackoff
	if rateLimitedBackoff <= 0 {
		rateLimitedBackoff = defaultRateLimitedBackoff
	}

	return &Client{
		httpClient:         httpClient,
		baseURL:            baseURL,
		userAgent:          userAgent,
		maxRetries:         maxInt(cfg.MaxRetries, 0),
		retryBackoff:       retryBackoff,
		rateLimitedBackoff: rateLimitedBackoff,
		limiter:            rate.NewLimiter(limit, 1),
		logger:             logger,
		breaker:            resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled:     cfg.CircuitBreaker.Enabled,
	}
}

// FetchMatchesByDate returns every fixture FotMob lists for the day, tagged with its league.
func (c *Client) FetchMatchesByDate(ctx context.Context, day time.Time) ([]scorefeed.Match, error) {
	date := day.Format(dayLayout)
	query := url.Values{}
	query.Set("date", date)

	var payload matchesEnvelope
	if err := c.doJSON(ctx, "/data/matches", query, &payload); err != nil {
		return nil, fmt.Errorf("fetch matches date=%s: %w", date, err)
	}

	out := make([]scorefeed.Match, 0, 16)
	for _, league := range payload.Leagues {
		for _, item := range league.Matches {
			if item.ID <= 0 {
				continue
			}
			out = append(out, mapMatch(league.ID, item))
		}
	}
	return out, nil
}

func (c *Client) FetchMatchDetails(ctx context.Context, matchID int64) (scorefeed.Details, error) {
	if matchID <= 0 {
		return scorefeed.Details{}, fmt.Errorf("match id must be greater than zero")
	}
	query := url.Values{}
	query.Set("matchId", strconv.FormatInt(matchID, 10))

	var payload matchDetailsEnvelope
	if err := c.doJSON(ctx, "/matchDetails", query, &payload); err != nil {
		return scorefeed.Details{}, fmt.Errorf("fetch match details match_id=%d: %w", matchID, err)
	}

	details := scorefeed.Details{MatchID: matchID}
	for _, item := range payload.events() {
		event := scorefeed.Event{
			Type:   strings.TrimSpace(item.Type),
			Minute: item.Time.Minutes,
		}
		if item.PenaltyScore != nil {
			event.PenaltyScore = &scorefeed.PenaltyScore{
				Home: item.PenaltyScore.Home,
				Away: item.PenaltyScore.Away,
			}
		}
		details.Events = append(details.Events, event)
	}
	return details, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query url.Values, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fotmob circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return fmt.Errorf("%w: score provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if c.circuitEnabled {
		if isTransient(err) {
			c.breaker.RecordFailure()
		} else if err == nil {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		return err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		backoff := resilience.Escalating(c.retryBackoff, attempt)
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %v", errFotMobTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errFotMobTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusTooManyRequests:
				lastErr = fmt.Errorf("%w: provider rate limited status=%d", errFotMobTransient, resp.StatusCode)
				backoff = resilience.Escalating(c.rateLimitedBackoff, attempt)
			case resp.StatusCode >= http.StatusInternalServerError:
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFotMobTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		c.logger.WarnContext(ctx, "fotmob request failed, retrying",
			"url", fullURL,
			"attempt", attempt+1,
			"max_attempts", c.maxRetries+1,
			"backoff", backoff,
			"error", lastErr,
		)
		if err := resilience.Sleep(ctx, backoff); err != nil {
			return nil, err
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "fotmob request abandoned", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func mapMatch(leagueID int64, item matchItem) scorefeed.Match {
	out := scorefeed.Match{
		ID:         item.ID,
		LeagueID:   leagueID,
		Home:       mapSide(item.Home),
		Away:       mapSide(item.Away),
		KickoffAt:  parseKickoff(item.Status.UTCTime, item.TimeTS),
		Started:    item.Status.Started,
		Finished:   item.Status.Finished,
		Cancelled:  item.Status.Cancelled,
		ScoreText:  strings.TrimSpace(item.Status.ScoreStr),
		ReasonText: item.Status.reasonText(),
	}
	if out.LeagueID <= 0 {
		out.LeagueID = item.LeagueID
	}
	return out
}

func mapSide(item teamItem) scorefeed.Side {
	name := strings.TrimSpace(item.LongName)
	if name == "" {
		name = strings.TrimSpace(item.Name)
	}
	return scorefeed.Side{ID: item.ID, Name: name, Score: item.Score}
}

func parseKickoff(utcTime string, timestampMillis int64) time.Time {
	if value := strings.TrimSpace(utcTime); value != "" {
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			return parsed.UTC()
		}
	}
	if timestampMillis > 0 {
		return time.UnixMilli(timestampMillis).UTC()
	}
	return time.Time{}
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFotMobTransient)
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
