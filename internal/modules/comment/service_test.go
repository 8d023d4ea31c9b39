package comment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vidtube/internal/domain"
)

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *mockCommentRepo) ListByVideo(ctx context.Context, videoID int64, page, limit int) ([]*domain.Comment, int64, error) {
	args := m.Called(ctx, videoID, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *mockCommentRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	args := m.Called(ctx, id, content)
	return args.Error(0)
}

func (m *mockCommentRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockVideoChecker struct {
	mock.Mock
}

func (m *mockVideoChecker) GetByID(ctx context.Context, id int64) (*domain.Video, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Video), args.Error(1)
}

func TestService_Add_Success(t *testing.T) {
	comments := new(mockCommentRepo)
	videos := new(mockVideoChecker)

	videos.On("GetByID", mock.Anything, int64(5)).Return(&domain.Video{ID: 5}, nil)
	comments.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Comment).ID = 1
	}).Return(nil)

	service := NewService(comments, videos)

	c, err := service.Add(context.Background(), 10, 5, "  nice video  ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)
	assert.Equal(t, "nice video", c.Content)
	assert.Equal(t, int64(10), c.OwnerID)
	assert.Equal(t, int64(5), c.VideoID)
}

func TestService_Add_EmptyContent(t *testing.T) {
	service := NewService(new(mockCommentRepo), new(mockVideoChecker))

	_, err := service.Add(context.Background(), 10, 5, "   ")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestService_Add_MissingVideo(t *testing.T) {
	comments := new(mockCommentRepo)
	videos := new(mockVideoChecker)
	videos.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(comments, videos)

	_, err := service.Add(context.Background(), 10, 5, "hello")
	assert.ErrorIs(t, err, ErrVideoNotFound)
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Update_NotOwner(t *testing.T) {
	comments := new(mockCommentRepo)
	comments.On("GetByID", mock.Anything, int64(3)).Return(&domain.Comment{ID: 3, OwnerID: 99}, nil)

	service := NewService(comments, new(mockVideoChecker))

	_, err := service.Update(context.Background(), 10, 3, "edited")
	assert.ErrorIs(t, err, ErrNotOwner)
	comments.AssertNotCalled(t, "UpdateContent", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Update_Success(t *testing.T) {
	comments := new(mockCommentRepo)
	comments.On("GetByID", mock.Anything, int64(3)).Return(&domain.Comment{ID: 3, OwnerID: 10, Content: "old"}, nil)
	comments.On("UpdateContent", mock.Anything, int64(3), "edited").Return(nil)

	service := NewService(comments, new(mockVideoChecker))

	c, err := service.Update(context.Background(), 10, 3, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", c.Content)
}

func TestService_Delete_NotOwner(t *testing.T) {
	comments := new(mockCommentRepo)
	comments.On("GetByID", mock.Anything, int64(3)).Return(&domain.Comment{ID: 3, OwnerID: 99}, nil)

	service := NewService(comments, new(mockVideoChecker))

	err := service.Delete(context.Background(), 10, 3)
	assert.ErrorIs(t, err, ErrNotOwner)
	comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_Delete_Missing(t *testing.T) {
	comments := new(mockCommentRepo)
	comments.On("GetByID", mock.Anything, int64(3)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(comments, new(mockVideoChecker))

	err := service.Delete(context.Background(), 10, 3)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
