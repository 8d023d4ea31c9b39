package domain

import "time"

// Comment is a single comment on a video.
type Comment struct {
	ID        int64
	VideoID   int64
	OwnerID   int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
