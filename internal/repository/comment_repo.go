package repository

import (
	"context"
	"time"

	"vidtube/internal/domain"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

type commentModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	VideoID   int64     `gorm:"column:video_id;index"`
	OwnerID   int64     `gorm:"column:owner_id;index"`
	Content   string    `gorm:"column:content"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (commentModel) TableName() string { return "comments" }

func toDomainComment(m commentModel) *domain.Comment {
	return &domain.Comment{
		ID:        m.ID,
		VideoID:   m.VideoID,
		OwnerID:   m.OwnerID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	m := commentModel{
		VideoID: c.VideoID,
		OwnerID: c.OwnerID,
		Content: c.Content,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainComment(m)
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var m commentModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainComment(m), nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID int64, page, limit int) ([]*domain.Comment, int64, error) {
	q := r.db.WithContext(ctx).Model(&commentModel{}).Where("video_id = ?", videoID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var models []commentModel
	tx := q.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&models)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	comments := make([]*domain.Comment, 0, len(models))
	for _, m := range models {
		comments = append(comments, toDomainComment(m))
	}
	return comments, total, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	return r.db.WithContext(ctx).Model(&commentModel{}).Where("id = ?", id).
		Update("content", content).Error
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&commentModel{}, id).Error
}
