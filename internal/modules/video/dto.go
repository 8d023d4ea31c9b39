package video

import (
	"time"

	"vidtube/internal/domain"
)

type PublishRequest struct {
	Title       string  `form:"title" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Duration    float64 `form:"duration"`
}

type UpdateRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

type ListQuery struct {
	Query    string `form:"query"`
	OwnerID  int64  `form:"userId"`
	SortBy   string `form:"sortBy"`
	SortType string `form:"sortType"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type View struct {
	ID           int64     `json:"id"`
	OwnerID      int64     `json:"ownerId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoFile"`
	ThumbnailURL string    `json:"thumbnail"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewView(v *domain.Video) View {
	return View{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		Views:        v.Views,
		IsPublished:  v.IsPublished,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func NewViews(videos []*domain.Video) []View {
	views := make([]View, 0, len(videos))
	for _, v := range videos {
		views = append(views, NewView(v))
	}
	return views
}
