package fotmob

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/worldcup-tracker/internal/domain/scorefeed"
	"github.com/riskibarqy/worldcup-tracker/internal/platform/resilience"
	"github.com/riskibarqy/worldcup-tracker/internal/usecase"
)

const matchesFixture = `{
  "date": "20260614",
  "leagues": [
    {
      "id": 77,
      "name": "World Cup",
      "matches": [
        {
          "id": 4501,
          "leagueId": 77,
          "time": "14.06.2026 20:00",
          "home": {"id": 6713, "score": 1, "name": "USA", "longName": "USA"},
          "away": {"id": 6724, "score": 2, "name": "Paraguay", "longName": "Paraguay"},
          "status": {"utcTime": "2026-06-14T20:00:00.000Z", "finished": true, "started": true, "cancelled": false, "scoreStr": "1 - 2", "reason": {"short": "FT", "shortKey": "fulltime_short", "long": "Full-Time", "longKey": "finished"}},
          "timeTS": 1781467200000
        },
        {
          "id": 4502,
          "leagueId": 77,
          "home": {"id": 6710, "name": "Mexico"},
          "away": {"id": 6711, "name": "Korea Republic"},
          "status": {"utcTime": "2026-06-14T23:00:00Z", "finished": false, "started": false, "cancelled": false}
        }
      ]
    },
    {
      "id": 47,
      "name": "Premier League",
      "matches": [
        {"id": 9001, "home": {"id": 1, "score": 0}, "away": {"id": 2, "score": 0}, "status": {"finished": true}}
      ]
    }
  ]
}`

const detailsFixture = `{
  "content": {
    "matchFacts": {
      "events": {
        "events": [
          {"type": "Goal", "time": 34},
          {"type": "PenaltyShootout", "time": {"minutes": 120, "addedTime": 0}, "penaltyScore": {"home": 1, "away": 0}},
          {"type": "PenaltyShootout", "time": 120, "penaltyScore": {"home": 5, "away": 4}}
        ]
      }
    }
  }
}`

func newTestClient(serverURL string, retries int) *Client {
	return NewClient(ClientConfig{
		HTTPClient:         &http.Client{Timeout: 2 * time.Second},
		BaseURL:            serverURL,
		MaxRetries:         retries,
		RateLimitDelay:     0,
		RetryBackoff:       time.Millisecond,
		RateLimitedBackoff: time.Millisecond,
		CircuitBreaker:     resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2},
	})
}

func TestFetchMatchesByDate_MapsLeaguesAndScores(t *testing.T) {
	t.Parallel()

	requests := make(chan *http.Request, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/matches" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		requests <- r.Clone(context.Background())
		_, _ = w.Write([]byte(matchesFixture))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)
	day := time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC)

	items, err := client.FetchMatchesByDate(context.Background(), day)
	if err != nil {
		t.Fatalf("fetch matches: %v", err)
	}
	req := <-requests
	if got := req.URL.Query().Get("date"); got != "20260614" {
		t.Fatalf("unexpected date query: %q", got)
	}
	if req.Header.Get("User-Agent") != defaultUserAgent || req.Header.Get("Accept") != "application/json" {
		t.Fatalf("unexpected headers: ua=%q accept=%q", req.Header.Get("User-Agent"), req.Header.Get("Accept"))
	}
	if len(items) != 3 {
		t.Fatalf("unexpected match count: got=%d want=3", len(items))
	}

	first := items[0]
	if first.ID != 4501 || first.LeagueID != 77 {
		t.Fatalf("unexpected first match: %+v", first)
	}
	if first.Home.ID != 6713 || first.Home.Score == nil || *first.Home.Score != 1 {
		t.Fatalf("unexpected home side: %+v", first.Home)
	}
	if first.Away.Score == nil || *first.Away.Score != 2 {
		t.Fatalf("unexpected away side: %+v", first.Away)
	}
	if !first.Finished || first.ReasonText != "Full-Time" || first.ScoreText != "1 - 2" {
		t.Fatalf("unexpected status: %+v", first)
	}
	wantKickoff := time.Date(2026, 6, 14, 20, 0, 0, 0, time.UTC)
	if !first.KickoffAt.Equal(wantKickoff) {
		t.Fatalf("unexpected kickoff: got=%s want=%s", first.KickoffAt, wantKickoff)
	}

	if items[1].Home.Score != nil || items[1].Finished {
		t.Fatalf("unexpected unplayed match: %+v", items[1])
	}
	if items[2].LeagueID != 47 {
		t.Fatalf("unexpected league for other competition: %d", items[2].LeagueID)
	}
}

func TestFetchMatchDetails_DecodesShootoutEvents(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/matchDetails" || r.URL.Query().Get("matchId") != "4501" {
			t.Errorf("unexpected request: %s", r.URL.String())
		}
		_, _ = w.Write([]byte(detailsFixture))
	}))
	defer server.Close()

	details, err := newTestClient(server.URL, 0).FetchMatchDetails(context.Background(), 4501)
	if err != nil {
		t.Fatalf("fetch details: %v", err)
	}
	if len(details.Events) != 3 {
		t.Fatalf("unexpected event count: got=%d want=3", len(details.Events))
	}
	if details.Events[0].Minute != 34 || details.Events[1].Minute != 120 {
		t.Fatalf("unexpected event minutes: %+v", details.Events)
	}

	score, ok := details.FinalShootoutScore()
	if !ok {
		t.Fatalf("expected shootout score")
	}
	if score != (scorefeed.PenaltyScore{Home: 5, Away: 4}) {
		t.Fatalf("unexpected shootout score: %+v", score)
	}
}

func TestFetchMatchDetails_EmptyContent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"general": {"matchId": "4501"}}`))
	}))
	defer server.Close()

	details, err := newTestClient(server.URL, 0).FetchMatchDetails(context.Background(), 4501)
	if err != nil {
		t.Fatalf("fetch details: %v", err)
	}
	if _, ok := details.FinalShootoutScore(); ok {
		t.Fatalf("expected no shootout score")
	}
}

func TestExecuteRequest_RetriesRateLimitThenSucceeds(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"leagues": []}`))
	}))
	defer server.Close()

	items, err := newTestClient(server.URL, 2).FetchMatchesByDate(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("fetch matches: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("unexpected items: %d", len(items))
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("unexpected call count: got=%d want=2", got)
	}
}

func TestExecuteRequest_ClientErrorFailsFast(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, 3).FetchMatchDetails(context.Background(), 1)
	if err == nil {
		t.Fatalf("expected error")
	}
	if isTransient(err) {
		t.Fatalf("404 must not be transient: %v", err)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("unexpected call count: got=%d want=1", got)
	}
}

func TestExecuteRequest_ExhaustsRetriesAndTripsBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.FetchMatchesByDate(ctx, time.Now())
		if !isTransient(err) {
			t.Fatalf("expected transient error on call %d, got %v", i, err)
		}
	}
	if got := calls.Load(); got != 4 {
		t.Fatalf("unexpected call count: got=%d want=4", got)
	}

	_, err := client.FetchMatchesByDate(ctx, time.Now())
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable once breaker is open, got %v", err)
	}
	if got := calls.Load(); got != 4 {
		t.Fatalf("breaker should reject without calling provider, calls=%d", got)
	}
}
