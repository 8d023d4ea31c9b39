package subscription

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vidtube/internal/domain"
)

type mockSubRepo struct {
	mock.Mock
}

func (m *mockSubRepo) Create(ctx context.Context, s *domain.Subscription) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSubRepo) Get(ctx context.Context, subscriberID, channelID int64) (*domain.Subscription, error) {
	args := m.Called(ctx, subscriberID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}

func (m *mockSubRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSubRepo) ListSubscriberIDs(ctx context.Context, channelID int64) ([]int64, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockSubRepo) ListChannelIDs(ctx context.Context, subscriberID int64) ([]int64, error) {
	args := m.Called(ctx, subscriberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type mockUserReader struct {
	mock.Mock
}

func (m *mockUserReader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserReader) GetManyByIDs(ctx context.Context, ids []int64) ([]*domain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func TestService_Toggle_SelfSubscription(t *testing.T) {
	service := NewService(new(mockSubRepo), new(mockUserReader))

	_, err := service.Toggle(context.Background(), 10, 10)
	assert.ErrorIs(t, err, ErrSelfSubscription)
}

func TestService_Toggle_MissingChannel(t *testing.T) {
	users := new(mockUserReader)
	users.On("GetByID", mock.Anything, int64(20)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(mockSubRepo), users)

	_, err := service.Toggle(context.Background(), 10, 20)
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestService_Toggle_Subscribe(t *testing.T) {
	subs := new(mockSubRepo)
	users := new(mockUserReader)

	users.On("GetByID", mock.Anything, int64(20)).Return(&domain.User{ID: 20}, nil)
	subs.On("Get", mock.Anything, int64(10), int64(20)).Return(nil, gorm.ErrRecordNotFound)
	subs.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Subscription) bool {
		return s.SubscriberID == 10 && s.ChannelID == 20
	})).Return(nil)

	service := NewService(subs, users)

	subscribed, err := service.Toggle(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.True(t, subscribed)
	subs.AssertExpectations(t)
}

func TestService_Toggle_Unsubscribe(t *testing.T) {
	subs := new(mockSubRepo)
	users := new(mockUserReader)

	users.On("GetByID", mock.Anything, int64(20)).Return(&domain.User{ID: 20}, nil)
	subs.On("Get", mock.Anything, int64(10), int64(20)).Return(&domain.Subscription{ID: 77, SubscriberID: 10, ChannelID: 20}, nil)
	subs.On("Delete", mock.Anything, int64(77)).Return(nil)

	service := NewService(subs, users)

	subscribed, err := service.Toggle(context.Background(), 10, 20)
	require.NoError(t, err)
	assert.False(t, subscribed)
	subs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Subscribers(t *testing.T) {
	subs := new(mockSubRepo)
	users := new(mockUserReader)

	users.On("GetByID", mock.Anything, int64(20)).Return(&domain.User{ID: 20}, nil)
	subs.On("ListSubscriberIDs", mock.Anything, int64(20)).Return([]int64{1, 2}, nil)
	users.On("GetManyByIDs", mock.Anything, []int64{1, 2}).Return([]*domain.User{{ID: 1}, {ID: 2}}, nil)

	service := NewService(subs, users)

	got, err := service.Subscribers(context.Background(), 20)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestService_SubscribedChannels_Empty(t *testing.T) {
	subs := new(mockSubRepo)
	users := new(mockUserReader)

	subs.On("ListChannelIDs", mock.Anything, int64(10)).Return([]int64{}, nil)
	users.On("GetManyByIDs", mock.Anything, []int64{}).Return([]*domain.User{}, nil)

	service := NewService(subs, users)

	got, err := service.SubscribedChannels(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
