// Package relay implements the /rss-proxy endpoint: a CORS-enabled pass-through
// that fetches a remote feed server-side and returns its bytes verbatim.
package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"feedboard/internal/domain/entity"
	"feedboard/internal/handler/http/middleware"
	"feedboard/internal/handler/http/respond"
	"feedboard/internal/infra/transport"
)

// DefaultContentType is sent when the upstream response has none.
const DefaultContentType = "application/xml; charset=utf-8"

// Fetcher fetches the raw upstream payload.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) (entity.Payload, error)
}

// Handler serves GET /rss-proxy?url=<feed>.
type Handler struct {
	Fetcher     Fetcher
	DenyPrivate bool
	Logger      *slog.Logger
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	feedURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if feedURL == "" {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "Missing 'url' query parameter"})
		return
	}
	if err := entity.ValidateURL(feedURL, h.DenyPrivate); err != nil {
		respond.JSON(w, http.StatusBadRequest, map[string]string{
			"error":   "Invalid 'url' query parameter",
			"details": err.Error(),
		})
		return
	}

	payload, err := h.Fetcher.Fetch(r.Context(), feedURL)
	if err != nil {
		h.logger().Warn("relay fetch failed",
			slog.String("url", feedURL),
			slog.String("error", respond.SanitizeError(err)))
		respond.ErrorDetails(w, http.StatusInternalServerError, "Failed to fetch feed", detail(err))
		return
	}

	ct := payload.ContentType
	if ct == "" {
		ct = DefaultContentType
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload.Body)
}

func (h Handler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// detail turns an upstream status into "Fetch failed: <code>" and passes
// other errors through.
func detail(err error) string {
	var sErr *transport.StatusError
	if errors.As(err, &sErr) {
		return fmt.Sprintf("Fetch failed: %d", sErr.Code)
	}
	return err.Error()
}

// Register mounts the relay on mux. CORS headers are set on every response,
// including 4xx, 429 and 5xx.
func Register(mux *http.ServeMux, h Handler, lim *rate.Limiter) {
	handler := middleware.CORS(middleware.PublicCORS())(middleware.RateLimit(lim)(h))
	mux.Handle("GET /rss-proxy", handler)
	mux.Handle("OPTIONS /rss-proxy", handler)
}
