package item

import (
	"net/http"

	"feedboard/internal/handler/http/respond"
)

type RefreshHandler struct{ Refresher Refresher }

func (h RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !h.Refresher.TriggerRefresh() {
		respond.JSON(w, http.StatusConflict, map[string]string{"status": "in_progress"})
		return
	}
	respond.JSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}
