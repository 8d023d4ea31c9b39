package subscription

import (
	"context"
	"errors"

	"vidtube/internal/domain"

	"gorm.io/gorm"
)

type SubscriptionRepositoryInterface interface {
	Create(ctx context.Context, s *domain.Subscription) error
	Get(ctx context.Context, subscriberID, channelID int64) (*domain.Subscription, error)
	Delete(ctx context.Context, id int64) error
	ListSubscriberIDs(ctx context.Context, channelID int64) ([]int64, error)
	ListChannelIDs(ctx context.Context, subscriberID int64) ([]int64, error)
}

// UserReader resolves channel users for listings and existence checks.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetManyByIDs(ctx context.Context, ids []int64) ([]*domain.User, error)
}

type Service struct {
	subs  SubscriptionRepositoryInterface
	users UserReader
}

func NewService(subs SubscriptionRepositoryInterface, users UserReader) *Service {
	return &Service{subs: subs, users: users}
}

// Toggle subscribes when no subscription exists and unsubscribes when one
// does. Returns the resulting subscribed state.
func (s *Service) Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error) {
	if subscriberID == channelID {
		return false, ErrSelfSubscription
	}

	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrChannelNotFound
		}
		return false, err
	}

	existing, err := s.subs.Get(ctx, subscriberID, channelID)
	if err == nil {
		if err := s.subs.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	sub := &domain.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	if err := s.subs.Create(ctx, sub); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Subscribers(ctx context.Context, channelID int64) ([]*domain.User, error) {
	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	ids, err := s.subs.ListSubscriberIDs(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return s.users.GetManyByIDs(ctx, ids)
}

func (s *Service) SubscribedChannels(ctx context.Context, subscriberID int64) ([]*domain.User, error) {
	ids, err := s.subs.ListChannelIDs(ctx, subscriberID)
	if err != nil {
		return nil, err
	}
	return s.users.GetManyByIDs(ctx, ids)
}
