package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/course-compass/course-compass-api/internal/models"
	"github.com/course-compass/course-compass-api/pkg/config"
	appErrors "github.com/course-compass/course-compass-api/pkg/errors"
)

const maxResponseBytes = 4 << 20

// Client talks to the external vector-search collaborator. One request per
// user-initiated search, no retries; the configured HTTP timeout is the only
// cancellation beyond the caller's context.
type Client struct {
	baseURL      string
	searchPath   string
	defaultLimit int
	httpClient   *http.Client
	normalizer   *Normalizer
	logger       *zap.Logger
}

// NewClient builds an upstream search client.
func NewClient(cfg config.UpstreamConfig, normalizer *Normalizer, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := cfg.DefaultLimit
	if limit <= 0 {
		limit = 10
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		searchPath:   cfg.SearchPath,
		defaultLimit: limit,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		normalizer:   normalizer,
		logger:       logger,
	}
}

// SearchQuery carries the free-text query plus optional repeated department
// filters.
type SearchQuery struct {
	Text        string
	Departments []string
	Limit       int
}

// Search runs one semantic search against the upstream endpoint and returns
// normalized courses. Transport failures and bad statuses come back as
// ErrUpstream; the caller decides whether to degrade to an empty list.
func (c *Client) Search(ctx context.Context, query SearchQuery) ([]models.Course, error) {
	endpoint, err := url.Parse(c.baseURL + c.searchPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "invalid upstream url")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = c.defaultLimit
	}

	params := url.Values{}
	params.Set("q", query.Text)
	params.Set("limit", strconv.Itoa(limit))
	for _, dept := range query.Departments {
		if dept != "" {
			params.Add("departments", dept)
		}
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "upstream search request failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.Wrap(
			fmt.Errorf("status %d", resp.StatusCode),
			appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "upstream search returned an error",
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read upstream response")
	}

	return c.normalizer.NormalizePayload(body), nil
}

// FindByIdentifier looks a single course up through the search endpoint and
// matches on identifier or code. Returns nil when nothing matches.
func (c *Client) FindByIdentifier(ctx context.Context, identifier string) (*models.Course, error) {
	courses, err := c.Search(ctx, SearchQuery{Text: identifier, Limit: 20})
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].Identifier == identifier || courses[i].Code == identifier {
			return &courses[i], nil
		}
	}
	return nil, nil
}
