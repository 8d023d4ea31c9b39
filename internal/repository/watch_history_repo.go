package repository

import (
	"context"
	"errors"
	"time"

	"vidtube/internal/domain"

	"gorm.io/gorm"
)

type WatchHistoryRepository struct {
	db *gorm.DB
}

func NewWatchHistoryRepository(db *gorm.DB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: db}
}

type watchHistoryModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex:idx_user_video"`
	VideoID   int64     `gorm:"column:video_id;uniqueIndex:idx_user_video"`
	WatchedAt time.Time `gorm:"column:watched_at"`
}

func (watchHistoryModel) TableName() string { return "watch_history" }

// Record upserts the (user, video) pair, bumping watched_at on re-watch.
func (r *WatchHistoryRepository) Record(ctx context.Context, userID, videoID int64) error {
	now := time.Now()

	tx := r.db.WithContext(ctx).Model(&watchHistoryModel{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Update("watched_at", now)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected > 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Create(&watchHistoryModel{
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: now,
	}).Error
	// Lost the insert race to a concurrent view of the same video; the
	// other row already carries a fresh watched_at.
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

func (r *WatchHistoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.WatchHistoryEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var models []watchHistoryModel
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("watched_at DESC").
		Limit(limit).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	entries := make([]*domain.WatchHistoryEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, &domain.WatchHistoryEntry{
			ID:        m.ID,
			UserID:    m.UserID,
			VideoID:   m.VideoID,
			WatchedAt: m.WatchedAt,
		})
	}
	return entries, nil
}
