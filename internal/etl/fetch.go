package etl

import (
	"context"
	"fmt"
	"time"

	"github.com/BartekS5/gdpetl/pkg/logger"
	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "gdpetl/1.0 (+https://github.com/BartekS5/gdpetl)"

// HTTPFetcher issues a single GET per call. It does not retry.
type HTTPFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	client := resty.New().
		SetHeader("User-Agent", defaultUserAgent).
		SetHeader("Accept", "text/html")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	start := time.Now()

	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.IsError() {
		body := res.String()
		if len(body) > 512 {
			body = body[:512]
		}
		return "", fmt.Errorf("fetch %s: http %d: %s", url, res.StatusCode(), body)
	}

	logger.Debugf("Fetched %s (%d bytes) in %s", url, len(res.Body()), time.Since(start))
	return res.String(), nil
}
