package scrape

import (
	"math/rand"
	"net/http"
	"sync"
	"time"
)

// HTTPClient is an interface matching the Do method of *http.Client, allowing
// injection of mock clients for testing and custom transports.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ThrottledHTTPClient wraps an HTTPClient with a randomized minimum interval
// between requests, so successive listing-page fetches pause for a jittered
// delay in [minDelay, maxDelay].
type ThrottledHTTPClient struct {
	underlying  HTTPClient
	minDelay    time.Duration
	maxDelay    time.Duration
	lastRequest time.Time
	mu          sync.Mutex
}

// NewThrottledHTTPClient creates a throttled client around underlying. A
// maxDelay at or below minDelay disables the jitter and enforces a fixed
// minDelay interval.
func NewThrottledHTTPClient(underlying HTTPClient, minDelay time.Duration, maxDelay time.Duration) *ThrottledHTTPClient {
	return &ThrottledHTTPClient{
		underlying: underlying,
		minDelay:   minDelay,
		maxDelay:   maxDelay,
	}
}

// Do executes an HTTP request, sleeping first if the previous request was too
// recent.
func (throttledClient *ThrottledHTTPClient) Do(req *http.Request) (*http.Response, error) {
	throttledClient.mu.Lock()

	interval := throttledClient.minDelay
	if throttledClient.maxDelay > throttledClient.minDelay {
		jitter := throttledClient.maxDelay - throttledClient.minDelay
		interval += time.Duration(rand.Int63n(int64(jitter) + 1))
	}

	if !throttledClient.lastRequest.IsZero() {
		elapsed := time.Since(throttledClient.lastRequest)
		if elapsed < interval {
			waitTime := interval - elapsed
			throttledClient.mu.Unlock()
			time.Sleep(waitTime)
			throttledClient.mu.Lock()
		}
	}

	throttledClient.lastRequest = time.Now()
	throttledClient.mu.Unlock()

	return throttledClient.underlying.Do(req)
}
