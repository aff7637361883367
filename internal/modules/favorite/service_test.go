package favorite

import (
	"context"
	"testing"

	"eventbooking/internal/domain"
	"eventbooking/internal/modules/event"
	"eventbooking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockFavoriteRepo struct {
	mock.Mock
}

func (m *mockFavoriteRepo) Add(ctx context.Context, userID, eventID int64) (*domain.Favorite, error) {
	args := m.Called(ctx, userID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

func (m *mockFavoriteRepo) Remove(ctx context.Context, userID, eventID int64) error {
	return m.Called(ctx, userID, eventID).Error(0)
}

func (m *mockFavoriteRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Favorite), args.Error(1)
}

func (m *mockFavoriteRepo) EventIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type mockEvents struct {
	mock.Mock
}

func (m *mockEvents) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func TestService_AddFavorite(t *testing.T) {
	ctx := context.Background()
	favs := new(mockFavoriteRepo)
	events := new(mockEvents)
	events.On("GetEvent", mock.Anything, int64(1)).Return(&domain.Event{ID: 1}, nil)
	events.On("GetEvent", mock.Anything, int64(404)).Return(nil, event.ErrEventNotFound)

	eventID := int64(1)
	favs.On("Add", mock.Anything, int64(5), int64(1)).Return(&domain.Favorite{ID: 9, EventID: &eventID}, nil).Once()
	favs.On("Add", mock.Anything, int64(5), int64(1)).Return(nil, repository.ErrAlreadyExists).Once()

	svc := NewService(favs, events)

	fav, err := svc.AddFavorite(ctx, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(9), fav.ID)

	_, err = svc.AddFavorite(ctx, 5, 1)
	assert.ErrorIs(t, err, ErrDuplicateFavorite)

	_, err = svc.AddFavorite(ctx, 5, 404)
	assert.ErrorIs(t, err, event.ErrEventNotFound)
	favs.AssertNumberOfCalls(t, "Add", 2)
}

func TestService_RemoveFavorite(t *testing.T) {
	favs := new(mockFavoriteRepo)
	favs.On("Remove", mock.Anything, int64(5), int64(1)).Return(nil)
	favs.On("Remove", mock.Anything, int64(5), int64(2)).Return(repository.ErrNotFound)

	svc := NewService(favs, new(mockEvents))

	assert.NoError(t, svc.RemoveFavorite(context.Background(), 5, 1))
	assert.ErrorIs(t, svc.RemoveFavorite(context.Background(), 5, 2), ErrFavoriteNotFound)
}

func TestService_FavoriteEventIDs_NeverNil(t *testing.T) {
	favs := new(mockFavoriteRepo)
	favs.On("EventIDsByUser", mock.Anything, int64(5)).Return(nil, nil)

	ids, err := NewService(favs, new(mockEvents)).FavoriteEventIDs(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{}, ids)
}
