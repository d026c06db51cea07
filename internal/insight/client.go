// Package insight talks to the external photo-insight service: per
// listing, an optional set of AI photo classifications used by the slot
// selector. The provider has no schema guarantee and a strict rate
// limit, so every call is paced, cached, and allowed to fail soft.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mkravets/compscan/internal/cache"
	"github.com/mkravets/compscan/internal/model"
	"github.com/mkravets/compscan/internal/util"
	"github.com/mkravets/compscan/internal/worker"
)

const maxBodyBytes = 1 << 20

// negativeCacheTTL bounds how long an "available: false" answer is
// kept. Insights are generated asynchronously upstream, so a listing
// with nothing today may have classifications within the hour; pinning
// the empty answer for the full TTL would hide them.
const negativeCacheTTL = 15 * time.Minute

// Client fetches photo-insight payloads.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	pacer      *worker.Pacer
	store      cache.Cache
	cacheTTL   time.Duration
}

// NewClient builds a client from config. store may be nil to disable
// caching; the pacer is required.
func NewClient(cfg model.InsightConfig, pacer *worker.Pacer, store cache.Cache, cacheTTL time.Duration) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		pacer:     pacer,
		store:     store,
		cacheTTL:  cacheTTL,
	}
}

// unavailable is the degraded result for every failure mode that is
// not a caller cancellation.
func unavailable() *model.InsightResult {
	return &model.InsightResult{Available: false}
}

// Lookup fetches the insight payload for one listing. Network errors,
// non-success responses, and undecodable bodies all degrade to an
// unavailable result; only context cancellation is surfaced as an
// error, so a superseded fetch sequence stops instead of degrading.
func (c *Client) Lookup(ctx context.Context, mlsNumber string) (*model.InsightResult, error) {
	if mlsNumber == "" || c.baseURL == "" {
		return unavailable(), nil
	}

	key := cache.ListingKey(mlsNumber)
	if c.store != nil {
		if data, found := c.store.Get(key); found {
			if res := decodePayload(data); res != nil {
				return res, nil
			}
		}
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/listings/%s/photo-insights", c.baseURL, url.PathEscape(mlsNumber))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return unavailable(), nil
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return unavailable(), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return unavailable(), nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return unavailable(), nil
	}

	result := decodePayload(body)
	if result == nil {
		return unavailable(), nil
	}

	if c.store != nil {
		ttl := c.cacheTTL
		if !result.Available && (ttl <= 0 || ttl > negativeCacheTTL) {
			ttl = negativeCacheTTL
		}
		_ = c.store.Set(key, body, ttl)
	}
	return result, nil
}

// wirePayload mirrors the provider response. Quality arrives as either
// a qualitative string or a 0-100 number depending on payload vintage.
type wirePayload struct {
	Available bool        `json:"available"`
	Photos    []wirePhoto `json:"photos"`
}

type wirePhoto struct {
	URL            string  `json:"url"`
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
	Quality        any     `json:"quality"`
}

func decodePayload(data []byte) *model.InsightResult {
	var wire wirePayload
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil
	}

	result := &model.InsightResult{Available: wire.Available}
	for i, p := range wire.Photos {
		candidate := model.PhotoCandidate{
			URL:            p.URL,
			Classification: p.Classification,
			Confidence:     p.Confidence,
			Index:          i,
		}
		switch q := p.Quality.(type) {
		case string:
			candidate.Quality = q
		case float64:
			score := q
			candidate.QualityScore = &score
		}
		result.Photos = append(result.Photos, candidate)
	}
	return result
}
