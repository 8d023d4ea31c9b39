package domain

import "time"

// Subscription links a subscriber to a channel (both are users).
// The (SubscriberID, ChannelID) pair is unique.
type Subscription struct {
	ID           int64
	SubscriberID int64
	ChannelID    int64
	CreatedAt    time.Time
}
