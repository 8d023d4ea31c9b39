package channel

import (
	"context"
	"errors"

	"vidtube/internal/domain"

	"gorm.io/gorm"
)

var ErrChannelNotFound = errors.New("channel not found")

type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type SubscriptionCounter interface {
	Get(ctx context.Context, subscriberID, channelID int64) (*domain.Subscription, error)
	CountSubscribers(ctx context.Context, channelID int64) (int64, error)
	CountSubscribedTo(ctx context.Context, subscriberID int64) (int64, error)
}

type HistoryReader interface {
	ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.WatchHistoryEntry, error)
}

type VideoReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Video, error)
}

// Service assembles the derived social-graph views: channel profiles and
// watch history. Pure reads, no mutations.
type Service struct {
	users   UserReader
	subs    SubscriptionCounter
	history HistoryReader
	videos  VideoReader
}

func NewService(users UserReader, subs SubscriptionCounter, history HistoryReader, videos VideoReader) *Service {
	return &Service{users: users, subs: subs, history: history, videos: videos}
}

// Profile returns the channel view for username as seen by callerID
// (callerID 0 means anonymous; IsSubscribed is then always false).
func (s *Service) Profile(ctx context.Context, callerID int64, username string) (*Profile, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	subscribers, err := s.subs.CountSubscribers(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	subscribedTo, err := s.subs.CountSubscribedTo(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	isSubscribed := false
	if callerID != 0 && callerID != user.ID {
		if _, err := s.subs.Get(ctx, callerID, user.ID); err == nil {
			isSubscribed = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return &Profile{
		ID:                user.ID,
		Username:          user.Username,
		FullName:          user.FullName,
		AvatarURL:         user.AvatarURL,
		CoverImageURL:     user.CoverImageURL,
		SubscriberCount:   subscribers,
		SubscribedToCount: subscribedTo,
		IsSubscribed:      isSubscribed,
	}, nil
}

// WatchHistory lists the caller's recently watched videos, newest first.
// Videos deleted since watching are skipped.
func (s *Service) WatchHistory(ctx context.Context, userID int64, limit int) ([]HistoryItem, error) {
	entries, err := s.history.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		v, err := s.videos.GetByID(ctx, e.VideoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, HistoryItem{
			VideoID:      v.ID,
			Title:        v.Title,
			ThumbnailURL: v.ThumbnailURL,
			Duration:     v.Duration,
			WatchedAt:    e.WatchedAt,
		})
	}
	return items, nil
}
