package item

import (
	"net/http"

	"feedboard/internal/handler/http/respond"
	"feedboard/internal/usecase/query"
)

type ListHandler struct{ Snapshots Snapshotter }

// ServeHTTP handles GET /api/items?tag=&q=. total counts the filtered items.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := query.ParseCriteria(r.URL.Query().Get("tag"), r.URL.Query().Get("q"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	snap := h.Snapshots.Snapshot()
	filtered := query.Filter(snap.Items, c)

	resp := ListResponse{Items: make([]DTO, 0, len(filtered)), Total: len(filtered)}
	for _, it := range filtered {
		resp.Items = append(resp.Items, toDTO(it))
	}
	if !snap.RefreshedAt.IsZero() {
		at := snap.RefreshedAt.UTC()
		resp.RefreshedAt = &at
	}
	respond.JSON(w, http.StatusOK, resp)
}
