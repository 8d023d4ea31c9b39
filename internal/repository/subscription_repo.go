package repository

import (
	"context"
	"time"

	"vidtube/internal/domain"

	"gorm.io/gorm"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

type subscriptionModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	SubscriberID int64     `gorm:"column:subscriber_id;uniqueIndex:idx_sub_channel"`
	ChannelID    int64     `gorm:"column:channel_id;uniqueIndex:idx_sub_channel"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (subscriptionModel) TableName() string { return "subscriptions" }

func toDomainSubscription(m subscriptionModel) *domain.Subscription {
	return &domain.Subscription{
		ID:           m.ID,
		SubscriberID: m.SubscriberID,
		ChannelID:    m.ChannelID,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *domain.Subscription) error {
	m := subscriptionModel{
		SubscriberID: s.SubscriberID,
		ChannelID:    s.ChannelID,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSubscription(m)
	return nil
}

func (r *SubscriptionRepository) Get(ctx context.Context, subscriberID, channelID int64) (*domain.Subscription, error) {
	var m subscriptionModel
	tx := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSubscription(m), nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&subscriptionModel{}, id).Error
}

func (r *SubscriptionRepository) CountSubscribers(ctx context.Context, channelID int64) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&subscriptionModel{}).
		Where("channel_id = ?", channelID).Count(&count)
	return count, tx.Error
}

func (r *SubscriptionRepository) CountSubscribedTo(ctx context.Context, subscriberID int64) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&subscriptionModel{}).
		Where("subscriber_id = ?", subscriberID).Count(&count)
	return count, tx.Error
}

func (r *SubscriptionRepository) ListSubscriberIDs(ctx context.Context, channelID int64) ([]int64, error) {
	var ids []int64
	tx := r.db.WithContext(ctx).Model(&subscriptionModel{}).
		Where("channel_id = ?", channelID).Pluck("subscriber_id", &ids)
	return ids, tx.Error
}

func (r *SubscriptionRepository) ListChannelIDs(ctx context.Context, subscriberID int64) ([]int64, error) {
	var ids []int64
	tx := r.db.WithContext(ctx).Model(&subscriptionModel{}).
		Where("subscriber_id = ?", subscriberID).Pluck("channel_id", &ids)
	return ids, tx.Error
}
