package event

import (
	"context"
	"errors"
	"testing"

	"eventbooking/internal/domain"
	"eventbooking/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *mockEventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func TestService_ListEvents_EmptyIsNotNil(t *testing.T) {
	repo := new(mockEventRepo)
	repo.On("List", mock.Anything).Return(nil, nil)

	events, err := NewService(repo).ListEvents(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestService_GetEvent(t *testing.T) {
	repo := new(mockEventRepo)
	repo.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Event{ID: 1, Title: "Gala", Price: decimal.NewFromInt(500)}, nil)
	repo.On("GetByID", mock.Anything, int64(2)).Return(nil, repository.ErrNotFound)
	repo.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.New("db down"))

	svc := NewService(repo)

	e, err := svc.GetEvent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Gala", e.Title)

	_, err = svc.GetEvent(context.Background(), 2)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = svc.GetEvent(context.Background(), 3)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEventNotFound)
}
