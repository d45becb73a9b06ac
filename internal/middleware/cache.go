package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/lborowski/cinema-tickets/internal/config"
)

// cachedBody caps how large a response the cache will keep.
const cacheMaxBodyBytes = 1 << 20

// CacheResponses returns a middleware that serves successful GET responses
// for public browse endpoints from Redis for cfg.TTL.  The key is the
// request path plus raw query, so every search variant caches separately.
// Misses and Redis failures fall through to the handler.
func CacheResponses(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	ttl := cacheTTLOrDefault(cfg.TTL)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet {
				return next(c)
			}
			key := cfg.Prefix + ":" + req.URL.Path
			if req.URL.RawQuery != "" {
				key += "?" + req.URL.RawQuery
			}

			ctx := req.Context()
			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				c.Response().Header().Set("X-Cache", "HIT")
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
			}

			// Capture the response while it streams to the client.
			rec := &captureWriter{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}
			if rec.status == http.StatusOK && rec.buf.Len() <= cacheMaxBodyBytes {
				rdb.Set(ctx, key, rec.buf.Bytes(), ttl)
			}
			return nil
		}
	}
}

// captureWriter tees the response body so it can be stored after the handler
// finishes.
type captureWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	if w.buf.Len() < cacheMaxBodyBytes {
		w.buf.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// cacheTTLOrDefault guards against a zero TTL wiping entries immediately.
func cacheTTLOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 30 * time.Second
	}
	return ttl
}
