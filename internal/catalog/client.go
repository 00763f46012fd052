// Package catalog implements the remote sound catalog client.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mikey-austin/sound_board/pkg/sb"
)

// PageSize is the fixed page size for text search.
const PageSize = 12

const (
	defaultBaseURL = "https://freesound.org/apiv2"
	defaultTimeout = 10 * time.Second

	searchFields = "id,name,description,tags,duration,avg_rating,num_downloads,previews,images,created,license"
	detailFields = "id,name,description,tags,duration,avg_rating,num_downloads,num_ratings,previews,images,created,license,type,channels,samplerate,bitdepth,filesize"
)

// CredentialSource yields the active API credential.
type CredentialSource interface {
	Resolve() (string, bool)
}

// Config configures the catalog client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client performs paginated text search and per-item detail fetches. Every
// call is a fresh request; no retries, no caching.
type Client struct {
	log     *zap.Logger
	http    *http.Client
	baseURL string
	creds   CredentialSource
}

// NewClient creates a catalog client.
func NewClient(log *zap.Logger, creds CredentialSource, cfg Config) (*Client, error) {
	if creds == nil {
		return nil, errors.New("credential source required")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		log:     log,
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		creds:   creds,
	}, nil
}

// ResultPage is one page of a text search.
type ResultPage struct {
	Count   int               `json:"count"`
	Results []sb.SoundSummary `json:"results"`
}

// Search runs a text search for page (1-based) with the given filters.
func (c *Client) Search(ctx context.Context, query string, page int, filters sb.SearchFilters) (ResultPage, error) {
	token, ok := c.creds.Resolve()
	if !ok {
		return ResultPage{}, newError(KindNoCredential, "no API key configured", nil)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("page_size", fmt.Sprintf("%d", PageSize))
	params.Set("fields", searchFields)
	params.Set("sort", filters.SortValue())
	params.Set("token", token)
	if expr := filters.FilterExpr(); expr != "" {
		params.Set("filter", expr)
	}

	var result ResultPage
	if err := c.doJSON(ctx, "/search/text/", params, &result); err != nil {
		return ResultPage{}, err
	}
	c.log.Debug("search completed",
		zap.String("query", query),
		zap.Int("page", page),
		zap.Int("count", result.Count),
	)
	return result, nil
}

// FetchDetail loads the full record for a single sound.
func (c *Client) FetchDetail(ctx context.Context, id int64) (sb.SoundDetail, error) {
	token, ok := c.creds.Resolve()
	if !ok {
		return sb.SoundDetail{}, newError(KindNoCredential, "no API key configured", nil)
	}

	params := url.Values{}
	params.Set("token", token)
	params.Set("fields", detailFields)

	var detail sb.SoundDetail
	err := c.doJSON(ctx, fmt.Sprintf("/sounds/%d/", id), params, &detail)
	if err != nil {
		var catErr *Error
		if errors.As(err, &catErr) && catErr.Kind == KindRequest {
			return sb.SoundDetail{}, newError(KindNotFound, fmt.Sprintf("sound %d not found", id), catErr.Err)
		}
		return sb.SoundDetail{}, err
	}
	return detail, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	endpointURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpointURL, nil)
	if err != nil {
		return newError(KindRequest, "build request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return newError(KindNetwork, "catalog unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return newError(KindAuth, "API authentication failed", nil)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(KindRequest, fmt.Sprintf("catalog error: %s", resp.Status), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(KindRequest, "invalid catalog response", err)
	}
	return nil
}
