package channel

import "time"

// Profile is the aggregated channel view for GET /c/:username.
type Profile struct {
	ID               int64  `json:"id"`
	Username         string `json:"username"`
	FullName         string `json:"fullName"`
	AvatarURL        string `json:"avatar"`
	CoverImageURL    string `json:"coverImage,omitempty"`
	SubscriberCount  int64  `json:"subscriberCount"`
	SubscribedToCount int64 `json:"subscribedToCount"`
	IsSubscribed     bool   `json:"isSubscribed"`
}

// HistoryItem is one watched video in the caller's history.
type HistoryItem struct {
	VideoID      int64     `json:"videoId"`
	Title        string    `json:"title"`
	ThumbnailURL string    `json:"thumbnail"`
	Duration     float64   `json:"duration"`
	WatchedAt    time.Time `json:"watchedAt"`
}
