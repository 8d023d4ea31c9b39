package comment

import (
	"context"
	"errors"
	"strings"

	"vidtube/internal/domain"

	"gorm.io/gorm"
)

type CommentRepositoryInterface interface {
	Create(ctx context.Context, c *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByVideo(ctx context.Context, videoID int64, page, limit int) ([]*domain.Comment, int64, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	Delete(ctx context.Context, id int64) error
}

// VideoChecker confirms the target video exists before a comment is added.
type VideoChecker interface {
	GetByID(ctx context.Context, id int64) (*domain.Video, error)
}

type Service struct {
	comments CommentRepositoryInterface
	videos   VideoChecker
}

func NewService(comments CommentRepositoryInterface, videos VideoChecker) *Service {
	return &Service{comments: comments, videos: videos}
}

func (s *Service) ListByVideo(ctx context.Context, videoID int64, page, limit int) ([]*domain.Comment, int64, error) {
	return s.comments.ListByVideo(ctx, videoID, page, limit)
}

func (s *Service) Add(ctx context.Context, ownerID, videoID int64, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if _, err := s.videos.GetByID(ctx, videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	c := &domain.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, userID, commentID int64, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	c, err := s.ownedComment(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	if err := s.comments.UpdateContent(ctx, commentID, content); err != nil {
		return nil, err
	}
	c.Content = content
	return c, nil
}

func (s *Service) Delete(ctx context.Context, userID, commentID int64) error {
	if _, err := s.ownedComment(ctx, userID, commentID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *Service) ownedComment(ctx context.Context, userID, commentID int64) (*domain.Comment, error) {
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if c.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return c, nil
}
