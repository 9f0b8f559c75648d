package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/trilhaapi/tarefa-api/internal/platform/logger"
	"golang.org/x/sync/singleflight"
)

// CacheStatusHeader reports whether a response came from the cache.
const CacheStatusHeader = "X-Cache"

// CacheBackend stores serialized responses.
type CacheBackend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
}

// ResponseCache sets Cache-Control on cacheable GET responses and, when a
// backend is configured, serves repeated requests from it.
type ResponseCache struct {
	backend      CacheBackend
	cacheControl string
	group        singleflight.Group
	logger       *slog.Logger
}

// NewResponseCache creates a ResponseCache. backend may be nil, in which case
// only the Cache-Control header is applied.
func NewResponseCache(backend CacheBackend, maxAge time.Duration, logger *slog.Logger) *ResponseCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResponseCache{
		backend:      backend,
		cacheControl: fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())),
		logger:       logger.With(slog.String("component", "response_cache")),
	}
}

// cachedResponse is the serialized form of a response kept in the backend.
type cachedResponse struct {
	Status int         `json:"status"`
	Header http.Header `json:"header"`
	Body   []byte      `json:"body"`
}

// Cacheable returns middleware caching GET responses keyed by the request
// path and the varyBy query parameters. Only 200 responses are stored.
func (c *ResponseCache) Cacheable(varyBy ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c.backend == nil || r.Method != http.MethodGet {
				next.ServeHTTP(&cacheControlWriter{ResponseWriter: w, value: c.cacheControl}, r)
				return
			}

			ctx := r.Context()
			log := logger.FromContextOrDefault(ctx, c.logger)
			key := CacheKey(r, varyBy...)

			if entry, ok := c.lookup(ctx, key); ok {
				log.Debug("response served from cache", slog.String("key", key))
				c.replay(w, entry, "HIT")
				return
			}

			v, _, _ := c.group.Do(key, func() (interface{}, error) {
				rec := newRecorder()
				next.ServeHTTP(rec, r)
				entry := rec.result()
				if entry.Status == http.StatusOK {
					c.store(ctx, key, entry)
				}
				return entry, nil
			})
			c.replay(w, v.(*cachedResponse), "MISS")
		})
	}
}

// InvalidateOnSuccess clears the cache after a successful (2xx) response.
func (c *ResponseCache) InvalidateOnSuccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 || (status >= 200 && status < 300) {
			if err := c.Invalidate(r.Context()); err != nil {
				logger.FromContextOrDefault(r.Context(), c.logger).Warn("failed to invalidate response cache",
					slog.String("error", err.Error()))
			}
		}
	})
}

// Invalidate removes every cached response.
func (c *ResponseCache) Invalidate(ctx context.Context) error {
	if c.backend == nil {
		return nil
	}
	return c.backend.Clear(ctx)
}

// CacheKey builds the cache key for r from its path and the named query
// parameters, in sorted order.
func CacheKey(r *http.Request, varyBy ...string) string {
	q := r.URL.Query()
	vary := url.Values{}
	for _, name := range varyBy {
		if values, ok := q[name]; ok {
			vary[name] = values
		}
	}
	if len(vary) == 0 {
		return r.URL.Path
	}
	return r.URL.Path + "?" + vary.Encode()
}

func (c *ResponseCache) lookup(ctx context.Context, key string) (*cachedResponse, bool) {
	data, found, err := c.backend.Get(ctx, key)
	if err != nil {
		logger.FromContextOrDefault(ctx, c.logger).Warn("cache lookup failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, false
	}
	if !found {
		return nil, false
	}

	var entry cachedResponse
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return &entry, true
}

func (c *ResponseCache) store(ctx context.Context, key string, entry *cachedResponse) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := c.backend.Set(ctx, key, data); err != nil {
		logger.FromContextOrDefault(ctx, c.logger).Warn("cache store failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

func (c *ResponseCache) replay(w http.ResponseWriter, entry *cachedResponse, cacheStatus string) {
	h := w.Header()
	for name, values := range entry.Header {
		h[name] = append([]string(nil), values...)
	}
	if isCacheableStatus(entry.Status) {
		h.Set("Cache-Control", c.cacheControl)
	}
	h.Set(CacheStatusHeader, cacheStatus)
	w.WriteHeader(entry.Status)
	_, _ = w.Write(entry.Body)
}

func isCacheableStatus(status int) bool {
	return status == http.StatusOK || status == http.StatusNoContent
}

// cacheControlWriter adds the Cache-Control header to successful responses.
type cacheControlWriter struct {
	http.ResponseWriter
	value       string
	wroteHeader bool
}

func (w *cacheControlWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		if isCacheableStatus(status) {
			w.Header().Set("Cache-Control", w.value)
		}
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *cacheControlWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// recorder buffers a response so it can be stored and replayed.
type recorder struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newRecorder() *recorder {
	return &recorder{header: make(http.Header)}
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.body.Write(b)
}

func (r *recorder) result() *cachedResponse {
	status := r.status
	if status == 0 {
		status = http.StatusOK
	}
	// The trace id belongs to the request that produced the entry.
	header := r.header.Clone()
	header.Del("X-Trace-ID")
	return &cachedResponse{Status: status, Header: header, Body: r.body.Bytes()}
}
