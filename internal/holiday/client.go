package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// Holiday is one national holiday as returned by the calendar API.
type Holiday struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Calendar contract for national holiday lookups.
type Calendar interface {
	NationalHolidays(ctx context.Context, year int) ([]Holiday, error)
}

const cacheTTL = 24 * time.Hour

// Client fetches holidays over HTTP from a BrasilAPI compatible endpoint
// ({baseURL}{year}). Calls go through a circuit breaker and successful
// years are cached.
type Client struct {
	client  *http.Client
	baseURL string
	cb      *gobreaker.CircuitBreaker
	cache   *ristretto.Cache
}

// NewClient new holiday Client
func NewClient(baseURL string) (*Client, error) {
	settings := gobreaker.Settings{
		Name:        "Holiday-API",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is at least 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
		// A caller giving up says nothing about the upstream's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("Circuit breaker state changed")
		},
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create holiday cache: %w", err)
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		cb:      gobreaker.NewCircuitBreaker(settings),
		cache:   cache,
	}, nil
}

// Close releases the cache goroutines.
func (c *Client) Close() {
	c.cache.Close()
}

// NationalHolidays returns the national holidays for year.
func (c *Client) NationalHolidays(ctx context.Context, year int) ([]Holiday, error) {
	key := strconv.Itoa(year)
	if v, ok := c.cache.Get(key); ok {
		return slices.Clone(v.([]Holiday)), nil
	}

	res, err := c.cb.Execute(func() (interface{}, error) {
		return c.fetch(ctx, year)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays for %d: %w", year, err)
	}

	holidays := res.([]Holiday)
	c.cache.SetWithTTL(key, slices.Clone(holidays), int64(len(holidays))+1, cacheTTL)
	c.cache.Wait()
	return holidays, nil
}

func (c *Client) fetch(ctx context.Context, year int) ([]Holiday, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+strconv.Itoa(year), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create holiday api request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call holiday api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("holiday api returned non-successful status code: %d", resp.StatusCode)
	}

	holidays := []Holiday{}
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("failed to decode holiday api response: %w", err)
	}
	return holidays, nil
}

// IsHoliday reports whether date (YYYY-MM-DD) is in holidays.
func IsHoliday(holidays []Holiday, date string) bool {
	for _, h := range holidays {
		if h.Date == date {
			return true
		}
	}
	return false
}
