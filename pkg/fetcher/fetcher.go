package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	resty "gopkg.in/resty.v1"
)

const (
	DefaultUserAgent     = "fremantleline (+https://github.com/fremantleline/fremantleline)"
	DefaultTimeout       = 30 * time.Second
	DefaultRetryInterval = 500 * time.Millisecond
)

// Fetcher performs a blocking GET and returns the raw response body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Options struct {
	UserAgent string
	Timeout   time.Duration

	// Retries is the number of extra attempts made after a failed fetch. Zero disables retrying.
	Retries       uint64
	RetryInterval time.Duration
}

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s: HTTP %d", e.URL, e.StatusCode)
}

// Temporary reports whether the request is worth repeating.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}

type HTTPFetcher struct {
	client *resty.Client

	retries       uint64
	retryInterval time.Duration
}

func NewHTTPFetcher(options Options) *HTTPFetcher {
	if options.UserAgent == "" {
		options.UserAgent = DefaultUserAgent
	}
	if options.Timeout == 0 {
		options.Timeout = DefaultTimeout
	}
	if options.RetryInterval == 0 {
		options.RetryInterval = DefaultRetryInterval
	}

	client := resty.New().
		SetTimeout(options.Timeout).
		SetHeader("User-Agent", options.UserAgent)

	return &HTTPFetcher{
		client:        client,
		retries:       options.Retries,
		retryInterval: options.RetryInterval,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.retries == 0 {
		return f.fetchOnce(ctx, url)
	}

	exponentialBackOff := backoff.NewExponentialBackOff()
	exponentialBackOff.InitialInterval = f.retryInterval

	retryBackOff := backoff.WithContext(backoff.WithMaxRetries(exponentialBackOff, f.retries), ctx)

	return backoff.RetryNotifyWithData(
		func() ([]byte, error) {
			body, err := f.fetchOnce(ctx, url)
			if statusErr, ok := err.(*StatusError); ok && !statusErr.Temporary() {
				return nil, backoff.Permanent(err)
			}

			return body, err
		},
		retryBackOff,
		func(err error, wait time.Duration) {
			log.Warn().Err(err).Str("url", url).Str("wait", wait.String()).Msg("Fetch failed, retrying")
		},
	)
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	log.Debug().Str("url", url).Msg("Fetching page")

	response, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		errorCount.Inc()
		return nil, err
	}

	if !response.IsSuccess() {
		errorCount.Inc()
		return nil, &StatusError{
			URL:        url,
			StatusCode: response.StatusCode(),
			Status:     response.Status(),
		}
	}

	downloadCount.Inc()
	downloadDuration.Observe(response.Time().Seconds())

	return response.Body(), nil
}
