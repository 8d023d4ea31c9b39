package domain

import "time"

// Video is a published (or draft) piece of media owned by a user.
// VideoURL and ThumbnailURL point at durable blob-store locations.
type Video struct {
	ID           int64
	OwnerID      int64
	Title        string
	Description  string
	VideoURL     string
	ThumbnailURL string
	Duration     float64
	Views        int64
	IsPublished  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
