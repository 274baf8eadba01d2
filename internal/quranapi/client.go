// Package quranapi is a small client for the api.quran.com v4 content API.
package quranapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taiwoajasa245/quran-api/internal/logger"
)

const DefaultBaseURL = "https://api.quran.com/api/v4"

var ErrUnexpectedStatus = errors.New("unexpected status from quran api")

// Translation is one verse of a translation resource, in verse order.
type Translation struct {
	ResourceID int    `json:"resource_id"`
	Text       string `json:"text"`
}

// TajweedVerse carries the uthmani text with tajweed markup.
type TajweedVerse struct {
	ID       int    `json:"id"`
	VerseKey string `json:"verse_key"`
	Text     string `json:"text_uthmani_tajweed"`
}

// Ayah parses the "chapter:verse" key.
func (v TajweedVerse) Ayah() (chapter, verse int, err error) {
	c, a, ok := strings.Cut(v.VerseKey, ":")
	if !ok {
		return 0, 0, fmt.Errorf("malformed verse key %q", v.VerseKey)
	}
	if chapter, err = strconv.Atoi(c); err != nil {
		return 0, 0, fmt.Errorf("malformed verse key %q: %w", v.VerseKey, err)
	}
	if verse, err = strconv.Atoi(a); err != nil {
		return 0, 0, fmt.Errorf("malformed verse key %q: %w", v.VerseKey, err)
	}
	return chapter, verse, nil
}

type translationsResponse struct {
	Translations []Translation `json:"translations"`
}

type tajweedResponse struct {
	Verses []TajweedVerse `json:"verses"`
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	log         *logger.Logger
}

// NewClient builds a client allowing rps requests per second. rps <= 0 means
// no limit.
func NewClient(baseURL string, rps float64, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logger.NewNop()
	}
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimiter: rate.NewLimiter(limit, 1),
		log:         log,
	}
}

// Translations fetches one chapter of translation resource id.
func (c *Client) Translations(ctx context.Context, resourceID, chapter int) ([]Translation, error) {
	params := url.Values{}
	params.Set("chapter_number", strconv.Itoa(chapter))

	var resp translationsResponse
	path := fmt.Sprintf("/quran/translations/%d", resourceID)
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	return resp.Translations, nil
}

// Tajweed fetches one chapter of uthmani tajweed text.
func (c *Client) Tajweed(ctx context.Context, chapter int) ([]TajweedVerse, error) {
	params := url.Values{}
	params.Set("chapter_number", strconv.Itoa(chapter))

	var resp tajweedResponse
	if err := c.get(ctx, "/quran/verses/uthmani_tajweed", params, &resp); err != nil {
		return nil, err
	}
	return resp.Verses, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	reqURL := c.baseURL + path + "?" + params.Encode()
	c.log.Debug("quran api request", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}
