package feed

import (
	"errors"
	"net/http"

	"feedboard/internal/handler/http/respond"
	"feedboard/internal/usecase/aggregate"
)

type RetryHandler struct{ Retrier Retrier }

func (h RetryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := h.Retrier.RetrySingle(r.Context(), id)
	switch {
	case err == nil:
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, aggregate.ErrFeedNotFound):
		respond.SafeError(w, http.StatusNotFound, err)
	default:
		respond.Upstream(w, http.StatusBadGateway, err)
	}
}
