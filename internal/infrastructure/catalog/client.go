package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/domain"
	"golang.org/x/time/rate"
)

// DefaultStoreURL is the Bio Valley storefront the product feed and product
// links are built from
const DefaultStoreURL = "https://bio-valley.com"

// Client fetches the store's public products.json feed
type Client struct {
	httpClient  *http.Client
	baseURL     string
	pageLimit   int
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new catalog feed client.
// pageLimit bounds how many products one fetch requests; values outside
// Shopify's 1..250 window fall back to 250.
func NewClient(baseURL string, pageLimit int) *Client {
	if baseURL == "" {
		baseURL = DefaultStoreURL
	}
	if pageLimit <= 0 || pageLimit > 250 {
		pageLimit = 250
	}

	// The feed is refreshed at most once per cache window, so a conservative
	// limiter is plenty
	limiter := rate.NewLimiter(rate.Limit(1), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:     baseURL,
		pageLimit:   pageLimit,
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// FetchProducts retrieves the product feed.
// Retries up to 3 times for transient failures with linear backoff.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.ShopifyProduct, error) {
	endpoint := fmt.Sprintf("%s/products.json", c.baseURL)
	params := url.Values{}
	params.Add("limit", strconv.Itoa(c.pageLimit))
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "BioValleyScanner/1.0")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[CATALOG] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[CATALOG] Feed error (attempt %d) - Status: %d", attempt, resp.StatusCode)
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		var feed domain.ShopifyFeed
		if err := json.Unmarshal(body, &feed); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}

		if len(feed.Products) == 0 {
			return nil, domain.ErrCatalogEmpty
		}

		if c.debug {
			log.Printf("[CATALOG] Fetched %d products from %s", len(feed.Products), c.baseURL)
		}
		return feed.Products, nil
	}

	return nil, lastErr
}
