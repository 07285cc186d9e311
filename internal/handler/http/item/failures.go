package item

import (
	"net/http"

	"feedboard/internal/handler/http/respond"
)

type FailuresHandler struct{ Snapshots Snapshotter }

func (h FailuresHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	snap := h.Snapshots.Snapshot()
	out := make([]FailureDTO, 0, len(snap.Failures))
	for _, f := range snap.Failures {
		out = append(out, FailureDTO{
			FeedID:  f.FeedID,
			Title:   f.Title,
			URL:     f.URL,
			Message: respond.SanitizeMessage(f.Message),
		})
	}
	respond.JSON(w, http.StatusOK, map[string]any{"failures": out})
}
