package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vedantadhau820-alt/IdentityOS/internal/ctxutil"
	"github.com/vedantadhau820-alt/IdentityOS/internal/metrics"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/primary"
)

// requestLogger carries the request ID into the context, logs each request
// and counts it by route pattern.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())
			r = r.WithContext(ctxutil.WithRequestID(r.Context(), reqID))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()

			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", time.Since(start),
				"request_id", reqID,
			)
		})
	}
}

// CacheMiddleware answers GET requests for precached files from the asset
// cache and falls through to next on a miss. The cache is never refreshed here.
func CacheMiddleware(assets primary.AssetService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if assets == nil || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
				next.ServeHTTP(w, r)
				return
			}

			cached, err := assets.LookupAsset(r.Context(), r.URL.Path)
			if err != nil {
				logger.Warn("asset cache lookup failed", "path", r.URL.Path, "error", err)
			}
			if err != nil || cached == nil {
				metrics.AssetCacheRequests.WithLabelValues("miss").Inc()
				w.Header().Set("X-Cache", "MISS")
				next.ServeHTTP(w, r)
				return
			}

			metrics.AssetCacheRequests.WithLabelValues("hit").Inc()
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", cached.ContentType)
			w.Header().Set("Content-Length", strconv.Itoa(len(cached.Body)))
			w.WriteHeader(http.StatusOK)
			if r.Method == http.MethodGet {
				w.Write(cached.Body)
			}
		})
	}
}
