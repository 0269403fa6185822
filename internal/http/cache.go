package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/dgraph-io/ristretto"

	"vitals-insights/internal/shared/metrics"
)

var metricCacheRequestsTotal = metrics.NewCounterVec(
	metrics.CounterOpts{
		Namespace: metrics.Namespace,
		Subsystem: metrics.SubHTTP,
		Name:      "response_cache_requests_total",
	},
	[]string{"outcome"},
)

// responseCache is a short-TTL read-through cache for successful GET
// responses, keyed by request URI. The query engine below it performs no
// caching of its own; response caching is this layer's concern.
type responseCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

type cachedResponse struct {
	contentType string
	body        []byte
}

func NewResponseCache(maxBytes int64, ttl time.Duration) (*responseCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize response cache: %w", err)
	}
	return &responseCache{cache: cache, ttl: ttl}, nil
}

func (c *responseCache) wrap(next http.HandlerFunc) http.HandlerFunc {
	if c == nil || c.ttl <= 0 {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.RequestURI()
		if entry, ok := c.cache.Get(key); ok {
			cached := entry.(cachedResponse)
			metricCacheRequestsTotal.WithLabelValues("hit").Inc()
			w.Header().Set("Content-Type", cached.contentType)
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached.body)
			return
		}
		metricCacheRequestsTotal.WithLabelValues("miss").Inc()

		rec := &recordingResponseWriter{ResponseWriter: w}
		next(rec, r)

		if rec.status() == http.StatusOK {
			cached := cachedResponse{
				contentType: rec.Header().Get("Content-Type"),
				body:        rec.body.Bytes(),
			}
			c.cache.SetWithTTL(key, cached, int64(len(cached.body)), c.ttl)
		}
	}
}

// recordingResponseWriter tees the response body so a successful response can
// be cached after it is sent.
type recordingResponseWriter struct {
	http.ResponseWriter
	wroteStatus int
	body        bytes.Buffer
}

func (w *recordingResponseWriter) WriteHeader(status int) {
	w.wroteStatus = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingResponseWriter) status() int {
	if w.wroteStatus == 0 {
		return http.StatusOK
	}
	return w.wroteStatus
}
