package subscription

import "errors"

var (
	ErrSelfSubscription = errors.New("cannot subscribe to your own channel")
	ErrChannelNotFound  = errors.New("channel not found")
)
