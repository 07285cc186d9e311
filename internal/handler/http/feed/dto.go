package feed

import "feedboard/internal/domain/entity"

type DTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	Tag           string `json:"tag"`
	FallbackImage string `json:"fallback_image,omitempty"`
}

func toDTO(f entity.FeedConfig) DTO {
	return DTO{ID: f.ID, Title: f.Title, URL: f.URL, Tag: string(f.Tag), FallbackImage: f.FallbackImage}
}
