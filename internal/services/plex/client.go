package plex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"plexmissing/internal/logging"
)

// Library is a Plex library section.
type Library struct {
	Key      int    `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Language string `json:"language,omitempty"`
}

// IsMovie reports whether the section holds movies.
func (l Library) IsMovie() bool {
	return strings.EqualFold(strings.TrimSpace(l.Type), "movie")
}

// Collection is a user-curated grouping inside a library.
type Collection struct {
	RatingKey  string
	Title      string
	ChildCount int
}

// Item is one movie inside a collection.
type Item struct {
	RatingKey string
	Title     string
	GUID      string
	Year      int
}

// API lists the Plex reads the collection walker needs.
type API interface {
	Libraries(ctx context.Context) ([]Library, error)
	Collections(ctx context.Context, libraryKey int) ([]Collection, error)
	CollectionItems(ctx context.Context, ratingKey string) ([]Item, error)
}

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client talks to a Plex Media Server using its XML API.
type Client struct {
	baseURL          string
	token            string
	clientIdentifier string
	http             HTTPDoer
	logger           *slog.Logger
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP backend.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger attaches a logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "plex")
		}
	}
}

// New constructs a Plex client for the server at baseURL.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("plex url required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse plex url: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("plex token required")
	}
	c := &Client{
		baseURL:          baseURL,
		token:            token,
		clientIdentifier: uuid.NewString(),
		http:             &http.Client{Timeout: 30 * time.Second},
		logger:           logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Libraries lists every library section, ordered by key.
func (c *Client) Libraries(ctx context.Context) ([]Library, error) {
	var container mediaContainer
	if err := c.getXML(ctx, "/library/sections", "list libraries", &container); err != nil {
		return nil, err
	}
	libraries := make([]Library, 0, len(container.Directories))
	for _, dir := range container.Directories {
		key, err := strconv.Atoi(strings.TrimSpace(dir.Key))
		if err != nil {
			c.logger.Debug("ignoring library with non-numeric key", logging.String("key", dir.Key), logging.String("title", dir.Title))
			continue
		}
		libraries = append(libraries, Library{
			Key:      key,
			Title:    dir.Title,
			Type:     dir.Type,
			Language: dir.Language,
		})
	}
	sort.SliceStable(libraries, func(i, j int) bool { return libraries[i].Key < libraries[j].Key })
	return libraries, nil
}

// Collections lists the collections of a library in server order.
func (c *Client) Collections(ctx context.Context, libraryKey int) ([]Collection, error) {
	var container mediaContainer
	path := fmt.Sprintf("/library/sections/%d/collections", libraryKey)
	if err := c.getXML(ctx, path, "list collections", &container); err != nil {
		return nil, err
	}
	entries := append(append([]element{}, container.Directories...), container.Metadata...)
	out := make([]Collection, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.RatingKey) == "" {
			continue
		}
		out = append(out, Collection{
			RatingKey:  entry.RatingKey,
			Title:      entry.Title,
			ChildCount: atoi(entry.ChildCount),
		})
	}
	return out, nil
}

// CollectionItems lists the movies inside a collection in server order.
func (c *Client) CollectionItems(ctx context.Context, ratingKey string) ([]Item, error) {
	ratingKey = strings.TrimSpace(ratingKey)
	if ratingKey == "" {
		return nil, errors.New("collection rating key required")
	}
	var container mediaContainer
	path := "/library/collections/" + url.PathEscape(ratingKey) + "/children"
	if err := c.getXML(ctx, path, "list collection items", &container); err != nil {
		return nil, err
	}
	entries := append(append([]element{}, container.Videos...), container.Metadata...)
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		items = append(items, Item{
			RatingKey: entry.RatingKey,
			Title:     entry.Title,
			GUID:      entry.GUID,
			Year:      atoi(entry.Year),
		})
	}
	return items, nil
}

func atoi(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}
