package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler func(attempt int32, w http.ResponseWriter, r *http.Request)) (*httptest.Server, *int32) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(atomic.AddInt32(&attempts, 1), w, r)
	}))
	t.Cleanup(server.Close)

	return server, &attempts
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	var userAgent string
	server, attempts := newTestServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>ok</body></html>"))
	})

	downloadsBefore := testutil.ToFloat64(downloadCount)

	f := NewHTTPFetcher(Options{UserAgent: "fremantleline-test"})
	body, err := f.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html><body>ok</body></html>", string(body))
	assert.Equal(t, "fremantleline-test", userAgent)
	assert.Equal(t, int32(1), atomic.LoadInt32(attempts))
	assert.Equal(t, downloadsBefore+1, testutil.ToFloat64(downloadCount))
}

func TestHTTPFetcher_DefaultUserAgent(t *testing.T) {
	var userAgent string
	server, _ := newTestServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
	})

	_, err := NewHTTPFetcher(Options{}).Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, userAgent)
}

func TestHTTPFetcher_StatusErrors(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		retries        uint64
		expectAttempts int32
	}{
		{
			name:           "server error without retries",
			status:         http.StatusInternalServerError,
			retries:        0,
			expectAttempts: 1,
		},
		{
			name:           "not found is never retried",
			status:         http.StatusNotFound,
			retries:        3,
			expectAttempts: 1,
		},
		{
			name:           "server error retried until exhausted",
			status:         http.StatusServiceUnavailable,
			retries:        2,
			expectAttempts: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server, attempts := newTestServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			})

			errorsBefore := testutil.ToFloat64(errorCount)

			f := NewHTTPFetcher(Options{Retries: tc.retries, RetryInterval: time.Millisecond})
			body, err := f.Fetch(context.Background(), server.URL)

			assert.Nil(t, body)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tc.status, statusErr.StatusCode)
			assert.Equal(t, server.URL, statusErr.URL)

			assert.Equal(t, tc.expectAttempts, atomic.LoadInt32(attempts))
			assert.Equal(t, errorsBefore+float64(tc.expectAttempts), testutil.ToFloat64(errorCount))
		})
	}
}

func TestHTTPFetcher_RetryRecovers(t *testing.T) {
	server, attempts := newTestServer(t, func(attempt int32, w http.ResponseWriter, r *http.Request) {
		if attempt < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("third time lucky"))
	})

	f := NewHTTPFetcher(Options{Retries: 5, RetryInterval: time.Millisecond})
	body, err := f.Fetch(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "third time lucky", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(attempts))
}

func TestHTTPFetcher_CancelledContext(t *testing.T) {
	server, _ := newTestServer(t, func(_ int32, w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("too late"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPFetcher(Options{}).Fetch(ctx, server.URL)

	assert.Error(t, err)
}

func TestStatusError_Temporary(t *testing.T) {
	assert.True(t, (&StatusError{StatusCode: 503}).Temporary())
	assert.True(t, (&StatusError{StatusCode: 429}).Temporary())
	assert.False(t, (&StatusError{StatusCode: 404}).Temporary())
	assert.Equal(t, "failed to fetch http://example/Live: HTTP 404", (&StatusError{URL: "http://example/Live", StatusCode: 404}).Error())
}
