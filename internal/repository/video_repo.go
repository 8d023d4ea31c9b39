package repository

import (
	"context"
	"strings"
	"time"

	"vidtube/internal/domain"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

type videoModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	OwnerID      int64     `gorm:"column:owner_id;index"`
	Title        string    `gorm:"column:title"`
	Description  string    `gorm:"column:description"`
	VideoURL     string    `gorm:"column:video_url"`
	ThumbnailURL string    `gorm:"column:thumbnail_url"`
	Duration     float64   `gorm:"column:duration"`
	Views        int64     `gorm:"column:views"`
	IsPublished  bool      `gorm:"column:is_published"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (videoModel) TableName() string { return "videos" }

func toDomainVideo(m videoModel) *domain.Video {
	return &domain.Video{
		ID:           m.ID,
		OwnerID:      m.OwnerID,
		Title:        m.Title,
		Description:  m.Description,
		VideoURL:     m.VideoURL,
		ThumbnailURL: m.ThumbnailURL,
		Duration:     m.Duration,
		Views:        m.Views,
		IsPublished:  m.IsPublished,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toVideoModel(v *domain.Video) videoModel {
	return videoModel{
		ID:           v.ID,
		OwnerID:      v.OwnerID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		Views:        v.Views,
		IsPublished:  v.IsPublished,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// VideoListFilter narrows List results. Zero values mean "no constraint".
type VideoListFilter struct {
	Query         string
	OwnerID       int64
	OnlyPublished bool
	SortBy        string
	SortDesc      bool
	Page          int
	Limit         int
}

func (r *VideoRepository) Create(ctx context.Context, v *domain.Video) error {
	m := toVideoModel(v)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVideo(m)
	return nil
}

func (r *VideoRepository) GetByID(ctx context.Context, id int64) (*domain.Video, error) {
	var m videoModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainVideo(m), nil
}

func (r *VideoRepository) List(ctx context.Context, f VideoListFilter) ([]*domain.Video, int64, error) {
	q := r.db.WithContext(ctx).Model(&videoModel{})

	if f.Query != "" {
		like := "%" + strings.TrimSpace(f.Query) + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if f.OwnerID != 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if f.OnlyPublished {
		q = q.Where("is_published = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := f.SortBy
	switch sortBy {
	case "title", "views", "duration", "created_at":
	default:
		sortBy = "created_at"
	}
	order := sortBy
	if f.SortDesc {
		order += " DESC"
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var models []videoModel
	tx := q.Order(order).Offset((page - 1) * limit).Limit(limit).Find(&models)
	if tx.Error != nil {
		return nil, 0, tx.Error
	}

	videos := make([]*domain.Video, 0, len(models))
	for _, m := range models {
		videos = append(videos, toDomainVideo(m))
	}
	return videos, total, nil
}

func (r *VideoRepository) Update(ctx context.Context, v *domain.Video) error {
	return r.db.WithContext(ctx).Model(&videoModel{}).Where("id = ?", v.ID).Updates(map[string]any{
		"title":         v.Title,
		"description":   v.Description,
		"thumbnail_url": v.ThumbnailURL,
		"is_published":  v.IsPublished,
	}).Error
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&videoModel{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *VideoRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&videoModel{}, id).Error
}
