package feed

import (
	"net/http"

	"feedboard/internal/handler/http/respond"
)

type ListHandler struct{ Registry Registry }

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	feeds := h.Registry.List()
	out := make([]DTO, 0, len(feeds))
	for _, f := range feeds {
		out = append(out, toDTO(f))
	}
	respond.JSON(w, http.StatusOK, map[string]any{"feeds": out})
}
