package feed

import (
	"encoding/json"
	"errors"
	"net/http"

	"feedboard/internal/domain/entity"
	"feedboard/internal/handler/http/respond"
	srcUC "feedboard/internal/usecase/source"
)

// maxCreateBody bounds the JSON request body.
const maxCreateBody = 16 << 10

var errInvalidBody = errors.New("invalid JSON body")

type CreateHandler struct {
	Registry   Registry
	Background BackgroundRetrier
}

func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL   string `json:"url"`
		Title string `json:"title"`
		Tag   string `json:"tag"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCreateBody)).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	created, err := h.Registry.Add(srcUC.AddInput{URL: req.URL, Title: req.Title, Tag: req.Tag})
	if err != nil {
		var vErr *entity.ValidationError
		switch {
		case errors.Is(err, srcUC.ErrDuplicateSource):
			respond.SafeError(w, http.StatusConflict, err)
		case errors.As(err, &vErr):
			respond.SafeError(w, http.StatusBadRequest, err)
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	// 追加したフィードはバックグラウンドで即時取得する
	if h.Background != nil {
		h.Background.RetryInBackground(created.ID)
	}

	respond.JSON(w, http.StatusCreated, toDTO(created))
}
