package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/raidsight/raidsight/internal/domain/model"
	"github.com/raidsight/raidsight/internal/domain/normalize"
	"github.com/raidsight/raidsight/pkg/logger"
	"github.com/raidsight/raidsight/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultMaxRetries  = 4
	defaultBaseBackoff = 500 * time.Millisecond
	maxBackoff         = 30 * time.Second
	defaultTimeout     = 30 * time.Second
)

// HTTPClient implements Client against the log-hosting REST API.
type HTTPClient struct {
	baseURL     string
	token       string
	http        *http.Client
	limiter     *RateLimiter
	maxRetries  int
	baseBackoff time.Duration
	logger      logger.Logger
}

// Option applies a configuration option to the HTTPClient.
type Option func(*HTTPClient)

// WithRateLimiter sets the shared rate-limit tracker.
func WithRateLimiter(l *RateLimiter) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.limiter = l
		}
	}
}

// WithRetry sets the transient-failure retry policy.
func WithRetry(maxRetries int, baseBackoff time.Duration) Option {
	return func(c *HTTPClient) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if baseBackoff > 0 {
			c.baseBackoff = baseBackoff
		}
	}
}

// WithHTTPClient replaces the underlying http.Client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewHTTPClient builds a telemetry client for the given API base URL.
func NewHTTPClient(baseURL, token string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:     baseURL,
		token:       token,
		http:        &http.Client{Timeout: defaultTimeout},
		limiter:     NewRateLimiter(0, 0),
		maxRetries:  defaultMaxRetries,
		baseBackoff: defaultBaseBackoff,
		logger:      logger.Get().Named("telemetry"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type reportResponse struct {
	Title  string `json:"title"`
	Fights []struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Boss        int    `json:"boss"`
		Kill        bool   `json:"kill"`
		StartTimeMS int64  `json:"start_time"`
		EndTimeMS   int64  `json:"end_time"`
	} `json:"fights"`
	Friendlies []struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Class string `json:"type"`
		Spec  string `json:"icon"`
	} `json:"friendlies"`
}

// ReportMetadata fetches the actor table and fight list for a report.
func (c *HTTPClient) ReportMetadata(ctx context.Context, code string) (model.ReportMetadata, error) {
	var resp reportResponse
	if err := c.getJSON(ctx, "/report/fights/"+code, nil, &resp); err != nil {
		return model.ReportMetadata{}, fmt.Errorf("fetch report %s: %w", code, err)
	}

	meta := model.ReportMetadata{
		Code:   code,
		Title:  resp.Title,
		Actors: make(map[int]model.PlayerInfo, len(resp.Friendlies)),
	}
	for _, f := range resp.Friendlies {
		meta.Actors[f.ID] = model.PlayerInfo{ID: f.ID, Name: f.Name, Class: f.Class, Spec: f.Spec}
	}
	for _, f := range resp.Fights {
		meta.Fights = append(meta.Fights, model.FightWindow{
			FightID:   f.ID,
			Name:      f.Name,
			Encounter: f.Boss,
			Kill:      f.Kill,
			StartTime: f.StartTimeMS,
			EndTime:   f.EndTimeMS,
		})
	}
	return meta, nil
}

type eventsPage struct {
	Events            []normalize.RawEvent `json:"events"`
	NextPageTimestamp *int64               `json:"nextPageTimestamp"`
}

// Events fetches all raw events of the given kinds inside a fight window,
// following the nextPageTimestamp cursor until the stream is exhausted.
func (c *HTTPClient) Events(ctx context.Context, code string, fight model.FightWindow, kinds []string) ([]normalize.RawEvent, error) {
	var all []normalize.RawEvent
	for _, kind := range kinds {
		cursor := fight.StartTime
		for {
			query := url.Values{
				"start": {strconv.FormatInt(cursor, 10)},
				"end":   {strconv.FormatInt(fight.EndTime, 10)},
				"type":  {kind},
			}
			var page eventsPage
			if err := c.getJSON(ctx, "/report/events/"+code, query, &page); err != nil {
				return nil, fmt.Errorf("fetch %s events for %s fight %d: %w", kind, code, fight.FightID, err)
			}
			metrics.RecordPageFetched()
			all = append(all, page.Events...)
			if page.NextPageTimestamp == nil || *page.NextPageTimestamp <= cursor {
				break
			}
			cursor = *page.NextPageTimestamp
		}
	}
	return all, nil
}

// FightSummary fetches the summary table for one fight.
func (c *HTTPClient) FightSummary(ctx context.Context, code string, fightID int) (Summary, error) {
	var s Summary
	query := url.Values{"fight": {strconv.Itoa(fightID)}}
	if err := c.getJSON(ctx, "/report/tables/summary/"+code, query, &s); err != nil {
		return Summary{}, fmt.Errorf("fetch summary for %s fight %d: %w", code, fightID, err)
	}
	return s, nil
}

// FastestClears lists top reports for an encounter from the speed
// leaderboard.
func (c *HTTPClient) FastestClears(ctx context.Context, encounterID, limit int) ([]Ranking, error) {
	var out []Ranking
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	path := "/rankings/encounter/" + strconv.Itoa(encounterID)
	if err := c.getJSON(ctx, path, query, &out); err != nil {
		return nil, fmt.Errorf("fetch rankings for encounter %d: %w", encounterID, err)
	}
	return out, nil
}

// GuildReports lists recent kill reports uploaded by a watched guild.
func (c *HTTPClient) GuildReports(ctx context.Context, guildID, limit int) ([]Ranking, error) {
	var out []Ranking
	query := url.Values{"limit": {strconv.Itoa(limit)}}
	path := "/reports/guild/" + strconv.Itoa(guildID)
	if err := c.getJSON(ctx, path, query, &out); err != nil {
		return nil, fmt.Errorf("fetch guild %d reports: %w", guildID, err)
	}
	return out, nil
}

// getJSON performs one logical GET with rate limiting and transient-failure
// retries. Each attempt re-consults the limiter.
func (c *HTTPClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			metrics.RecordRemoteRetry()
			backoff := c.baseBackoff << (attempt - 1)
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		lastErr = c.doOnce(ctx, path, query, out)
		if lastErr == nil {
			return nil
		}
		if !Transient(lastErr) {
			return lastErr
		}
		c.logger.Warn(ctx, "transient remote failure",
			logger.String("path", path),
			logger.Int("attempt", attempt+1),
			logger.Error(lastErr),
		)
	}
	return fmt.Errorf("retries exhausted for %s: %w", path, lastErr)
}

func (c *HTTPClient) doOnce(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.RecordFetchLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	default:
		return &StatusError{Code: resp.StatusCode, Path: path}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
