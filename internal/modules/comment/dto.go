package comment

import (
	"time"

	"vidtube/internal/domain"
)

type AddRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdateRequest struct {
	Content string `json:"content" binding:"required"`
}

type View struct {
	ID        int64     `json:"id"`
	VideoID   int64     `json:"videoId"`
	OwnerID   int64     `json:"ownerId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewView(c *domain.Comment) View {
	return View{
		ID:        c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func NewViews(comments []*domain.Comment) []View {
	views := make([]View, 0, len(comments))
	for _, c := range comments {
		views = append(views, NewView(c))
	}
	return views
}
