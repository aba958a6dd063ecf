package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"plexmissing/internal/logging"
	"plexmissing/internal/services"
)

const (
	defaultRequestsPerSecond = 20
	maxRateLimitWaits        = 3
	defaultRetryAfter        = time.Second
)

// Part is one member of a TMDB collection.
type Part struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

// Year returns the release year when the release date carries one.
func (p Part) Year() (int, bool) {
	date := strings.TrimSpace(p.ReleaseDate)
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

// Collection models the TMDB collection details payload.
type Collection struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Parts []Part `json:"parts"`
}

// CollectionRef is the parent collection a movie declares, if any.
type CollectionRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Movie models the subset of TMDB movie details used here.
type Movie struct {
	ID                  int64          `json:"id"`
	Title               string         `json:"title"`
	ReleaseDate         string         `json:"release_date"`
	IMDbID              string         `json:"imdb_id"`
	BelongsToCollection *CollectionRef `json:"belongs_to_collection"`
}

type findResponse struct {
	MovieResults []Movie `json:"movie_results"`
}

// API defines the TMDB operations used by collection resolution and diffing.
// Every call takes the query language explicitly.
type API interface {
	GetCollection(ctx context.Context, collectionID int64, language string) (*Collection, error)
	GetMovieDetails(ctx context.Context, movieID int64, language string) (*Movie, error)
	FindByIMDbID(ctx context.Context, imdbID, language string) (int64, bool, error)
}

// Client provides access to the TMDB v3 API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRequestsPerSecond sets the client-side throttle.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "tmdb")
		}
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), 1),
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// GetCollection fetches collection details, including every part.
func (c *Client) GetCollection(ctx context.Context, collectionID int64, language string) (*Collection, error) {
	if collectionID <= 0 {
		return nil, errors.New("collection id must be positive")
	}
	var payload Collection
	if err := c.get(ctx, fmt.Sprintf("/collection/%d", collectionID), nil, language, "collection details", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetMovieDetails fetches movie details by TMDB ID.
func (c *Client) GetMovieDetails(ctx context.Context, movieID int64, language string) (*Movie, error) {
	if movieID <= 0 {
		return nil, errors.New("movie id must be positive")
	}
	var payload Movie
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", movieID), nil, language, "movie details", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FindByIMDbID translates an IMDb identifier into a TMDB movie ID. The
// boolean is false when TMDB knows no movie for the identifier.
func (c *Client) FindByIMDbID(ctx context.Context, imdbID, language string) (int64, bool, error) {
	imdbID = strings.TrimSpace(imdbID)
	if imdbID == "" {
		return 0, false, errors.New("imdb id must not be empty")
	}
	params := url.Values{}
	params.Set("external_source", "imdb_id")

	var payload findResponse
	if err := c.get(ctx, "/find/"+url.PathEscape(imdbID), params, language, "find", &payload); err != nil {
		return 0, false, err
	}
	for _, movie := range payload.MovieResults {
		if movie.ID > 0 {
			return movie.ID, true, nil
		}
	}
	return 0, false, nil
}

// Ping verifies that the API key is accepted by fetching the API configuration.
func (c *Client) Ping(ctx context.Context) error {
	var payload struct {
		Images json.RawMessage `json:"images"`
	}
	return c.get(ctx, "/configuration", nil, "", "configuration", &payload)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, language, label string, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if language = strings.TrimSpace(language); language != "" {
		params.Set("language", language)
	}
	endpoint.RawQuery = params.Encode()

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("tmdb rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		requestStart := time.Now()
		resp, err := c.httpClient.Do(req)
		latency := time.Since(requestStart)
		if err != nil {
			return services.Wrap(services.ErrExternal, "tmdb", label, fmt.Sprintf("execute request (latency=%v)", latency), err)
		}

		c.logger.Debug("tmdb request",
			logging.String("path", path),
			logging.String("language", language),
			logging.Int("status", resp.StatusCode),
			logging.Duration("latency", latency),
		)

		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxRateLimitWaits {
			wait := retryAfter(resp.Header.Get("Retry-After"))
			drain(resp)
			c.logger.Debug("tmdb rate limited", logging.Duration("wait", wait))
			if err := sleepWithContext(ctx, wait); err != nil {
				return err
			}
			continue
		}

		err = decodeResponse(resp, label, latency, out)
		drain(resp)
		return err
	}
}

func decodeResponse(resp *http.Response, label string, latency time.Duration, out any) error {
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: tmdb %s returned %d (latency=%v)", services.ErrNotFound, label, resp.StatusCode, latency)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: tmdb %s returned %d (latency=%v)", services.ErrExternal, label, resp.StatusCode, latency)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode tmdb %s: %w", label, err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

func retryAfter(header string) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return defaultRetryAfter
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
		return 0
	}
	return defaultRetryAfter
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
