package video

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidtube/internal/domain"
	"vidtube/internal/pkg/storage"
	"vidtube/internal/repository"

	"gorm.io/gorm"
)

type VideoRepositoryInterface interface {
	Create(ctx context.Context, v *domain.Video) error
	GetByID(ctx context.Context, id int64) (*domain.Video, error)
	List(ctx context.Context, f repository.VideoListFilter) ([]*domain.Video, int64, error)
	Update(ctx context.Context, v *domain.Video) error
	IncrementViews(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// HistoryRecorder appends a watched video to the viewer's history.
type HistoryRecorder interface {
	Record(ctx context.Context, userID, videoID int64) error
}

type Service struct {
	videos   VideoRepositoryInterface
	history  HistoryRecorder
	uploader storage.Uploader
}

func NewService(videos VideoRepositoryInterface, history HistoryRecorder, uploader storage.Uploader) *Service {
	return &Service{videos: videos, history: history, uploader: uploader}
}

// Publish uploads the media files and creates the video record. Both the
// video file and the thumbnail are required.
func (s *Service) Publish(ctx context.Context, ownerID int64, req PublishRequest, videoPath, thumbnailPath string) (*domain.Video, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrValidation)
	}
	if videoPath == "" || thumbnailPath == "" {
		return nil, fmt.Errorf("%w: video file and thumbnail are required", ErrValidation)
	}

	thumbnailURL, err := s.uploader.Upload(ctx, thumbnailPath)
	if err != nil {
		return nil, err
	}
	videoURL, err := s.uploader.Upload(ctx, videoPath)
	if err != nil {
		// Don't leave the thumbnail blob orphaned.
		_ = s.uploader.Remove(ctx, thumbnailURL)
		return nil, err
	}

	v := &domain.Video{
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     req.Duration,
		IsPublished:  true,
	}
	if err := s.videos.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Get returns a video and, for an authenticated viewer, bumps the view
// counter and records the watch-history entry. Drafts are visible only to
// their owner.
func (s *Service) Get(ctx context.Context, viewerID, id int64) (*domain.Video, error) {
	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if !v.IsPublished && v.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}

	if viewerID != 0 && v.OwnerID != viewerID {
		// View bookkeeping must not fail the read.
		_ = s.videos.IncrementViews(ctx, id)
		_ = s.history.Record(ctx, viewerID, id)
		v.Views++
	}

	return v, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]*domain.Video, int64, error) {
	return s.videos.List(ctx, repository.VideoListFilter{
		Query:         q.Query,
		OwnerID:       q.OwnerID,
		OnlyPublished: true,
		SortBy:        q.SortBy,
		SortDesc:      q.SortType != "asc",
		Page:          q.Page,
		Limit:         q.Limit,
	})
}

// Update changes title/description and optionally replaces the thumbnail.
func (s *Service) Update(ctx context.Context, userID, id int64, req UpdateRequest, thumbnailPath string) (*domain.Video, error) {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Description) == "" && thumbnailPath == "" {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidation)
	}

	v, err := s.ownedVideo(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if t := strings.TrimSpace(req.Title); t != "" {
		v.Title = t
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		v.Description = d
	}
	if thumbnailPath != "" {
		url, err := s.uploader.Upload(ctx, thumbnailPath)
		if err != nil {
			return nil, err
		}
		v.ThumbnailURL = url
	}

	if err := s.videos.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.ownedVideo(ctx, userID, id); err != nil {
		return err
	}
	return s.videos.Delete(ctx, id)
}

func (s *Service) TogglePublish(ctx context.Context, userID, id int64) (*domain.Video, error) {
	v, err := s.ownedVideo(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	v.IsPublished = !v.IsPublished
	if err := s.videos.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) ownedVideo(ctx context.Context, userID, id int64) (*domain.Video, error) {
	v, err := s.videos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	if v.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return v, nil
}
