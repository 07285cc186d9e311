package item

import (
	"time"

	"feedboard/internal/domain/entity"
)

type DTO struct {
	ID          string     `json:"id"`
	FeedID      string     `json:"feed_id"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description"`
	Excerpt     string     `json:"excerpt"`
	PubDate     *time.Time `json:"pub_date"`
	SourceTitle string     `json:"source_title"`
	Tag         string     `json:"tag"`
	ImageURL    string     `json:"image_url"`
}

type ListResponse struct {
	Items       []DTO      `json:"items"`
	RefreshedAt *time.Time `json:"refreshed_at"`
	Total       int        `json:"total"`
}

type FailureDTO struct {
	FeedID  string `json:"feed_id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

func toDTO(it entity.Item) DTO {
	return DTO{
		ID:          it.ID,
		FeedID:      it.FeedID,
		Title:       it.Title,
		Link:        it.Link,
		Description: it.DescriptionHTML,
		Excerpt:     it.Excerpt,
		PubDate:     it.PubDate,
		SourceTitle: it.SourceTitle,
		Tag:         string(it.Tag),
		ImageURL:    it.ImageURL,
	}
}
