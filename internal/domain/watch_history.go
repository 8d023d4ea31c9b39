package domain

import "time"

// WatchHistoryEntry records that a user watched a video. Re-watching the
// same video bumps WatchedAt instead of inserting a second row.
type WatchHistoryEntry struct {
	ID        int64
	UserID    int64
	VideoID   int64
	WatchedAt time.Time
}
