package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"eventbooking/internal/database"
	"eventbooking/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect("file::memory:", database.Options{LogLevel: logger.Silent}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	u := &domain.User{Name: "User", Email: email, Role: domain.RoleUser, PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func seedEvent(t *testing.T, db *gorm.DB, location string, price int64) *domain.Event {
	t.Helper()
	e := &domain.Event{Title: "Event " + location, Date: "2025-08-01", Location: location, Price: decimal.NewFromInt(price)}
	require.NoError(t, db.Create(e).Error)
	return e
}

func newBooking(userID, eventID int64, rating *int) *domain.Booking {
	return &domain.Booking{
		UserID:         &userID,
		EventID:        &eventID,
		BookingDate:    time.Now(),
		Quantity:       1,
		PricePerTicket: decimal.NewFromInt(100),
		TotalPrice:     decimal.NewFromInt(100),
		Rating:         rating,
	}
}

func intPtr(v int) *int { return &v }

func TestUserRepository_EmailUniqueCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, db, "a@x.com")

	err := repo.Create(ctx, &domain.User{Name: "Dup", Email: "A@X.com", Role: domain.RoleUser, PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	u, err := repo.GetByEmail(ctx, "  A@x.COM ")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	exists, err := repo.ExistsByEmail(ctx, "a@X.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := newTestDB(t)
	_, err := NewUserRepository(db).GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_DeleteNullsDependents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserRepository(db)

	u := seedUser(t, db, "gone@x.com")
	e := seedEvent(t, db, "Delhi", 100)
	require.NoError(t, NewBookingRepository(db).CreateIfAbsent(ctx, newBooking(u.ID, e.ID, nil)))
	_, err := NewFavoriteRepository(db).Add(ctx, u.ID, e.ID)
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, u.ID))
	assert.ErrorIs(t, users.Delete(ctx, u.ID), ErrNotFound)

	var b domain.Booking
	require.NoError(t, db.First(&b).Error)
	assert.Nil(t, b.UserID)
	require.NotNil(t, b.EventID)
	assert.Equal(t, e.ID, *b.EventID)

	var f domain.Favorite
	require.NoError(t, db.First(&f).Error)
	assert.Nil(t, f.UserID)
}

func TestUserRepository_UpdateAndPassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)
	u := seedUser(t, db, "old@x.com")

	u.Name = "Renamed"
	u.Email = "New@X.com"
	u.Role = domain.RoleAdmin
	require.NoError(t, repo.Update(ctx, u))
	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "new-hash"))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "new@x.com", got.Email)
	assert.Equal(t, domain.RoleAdmin, got.Role)
	assert.Equal(t, "new-hash", got.PasswordHash)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, 404, "x"), ErrNotFound)
}

func TestEventRepository_UpsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewEventRepository(db)

	events := []domain.Event{
		{ID: 1, Title: "Wedding", Date: "2025-07-28", Location: "Udaipur", Price: decimal.NewFromInt(150000)},
		{ID: 2, Title: "Engagement", Date: "2025-07-29", Location: "Mumbai", Price: decimal.NewFromInt(75000)},
	}
	require.NoError(t, repo.Upsert(ctx, events))
	events[1].Title = "Engagement Party"
	require.NoError(t, repo.Upsert(ctx, events))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Engagement Party", list[1].Title)
	assert.True(t, decimal.NewFromInt(75000).Equal(list[1].Price))

	_, err = repo.GetByID(ctx, 3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventRepository_DeleteNullsDependents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	u := seedUser(t, db, "u@x.com")
	e := seedEvent(t, db, "Chennai", 100)
	require.NoError(t, NewBookingRepository(db).CreateIfAbsent(ctx, newBooking(u.ID, e.ID, nil)))

	require.NoError(t, NewEventRepository(db).Delete(ctx, e.ID))

	var b domain.Booking
	require.NoError(t, db.First(&b).Error)
	assert.Nil(t, b.EventID)
	require.NotNil(t, b.UserID)
}

func TestFavoriteRepository_AddRemoveList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewFavoriteRepository(db)
	u := seedUser(t, db, "fav@x.com")
	e1 := seedEvent(t, db, "Delhi", 100)
	e2 := seedEvent(t, db, "Mumbai", 200)

	fav, err := repo.Add(ctx, u.ID, e1.ID)
	require.NoError(t, err)
	require.NotNil(t, fav.Event)
	assert.Equal(t, "Delhi", fav.Event.Location)

	_, err = repo.Add(ctx, u.ID, e1.ID)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = repo.Add(ctx, u.ID, e2.ID)
	require.NoError(t, err)

	ids, err := repo.EventIDsByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{e1.ID, e2.ID}, ids)

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, repo.Remove(ctx, u.ID, e1.ID))
	assert.ErrorIs(t, repo.Remove(ctx, u.ID, e1.ID), ErrNotFound)
}

func TestBookingRepository_CreateIfAbsent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewBookingRepository(db)
	u := seedUser(t, db, "b@x.com")
	e := seedEvent(t, db, "Delhi", 100)

	require.NoError(t, repo.CreateIfAbsent(ctx, newBooking(u.ID, e.ID, nil)))
	assert.ErrorIs(t, repo.CreateIfAbsent(ctx, newBooking(u.ID, e.ID, nil)), ErrAlreadyExists)

	var count int64
	require.NoError(t, db.Model(&domain.Booking{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBookingRepository_ConcurrentDuplicates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewBookingRepository(db)
	u := seedUser(t, db, "race@x.com")
	e := seedEvent(t, db, "Delhi", 100)

	const attempts = 10
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.CreateIfAbsent(ctx, newBooking(u.ID, e.ID, nil))
		}()
	}
	wg.Wait()
	close(results)

	var created, duplicates int
	for err := range results {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrAlreadyExists):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, duplicates)
}

func TestBookingRepository_DeleteScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewBookingRepository(db)
	owner := seedUser(t, db, "owner@x.com")
	other := seedUser(t, db, "other@x.com")
	e := seedEvent(t, db, "Delhi", 100)

	b := newBooking(owner.ID, e.ID, nil)
	require.NoError(t, repo.CreateIfAbsent(ctx, b))

	n, err := repo.Delete(ctx, b.ID, &other.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = repo.Delete(ctx, b.ID, &owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, b.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBookingRepository_UpdateRating(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewBookingRepository(db)
	u := seedUser(t, db, "r@x.com")
	e := seedEvent(t, db, "Delhi", 100)
	require.NoError(t, repo.CreateIfAbsent(ctx, newBooking(u.ID, e.ID, nil)))

	require.NoError(t, repo.UpdateRating(ctx, u.ID, e.ID, 4))
	assert.ErrorIs(t, repo.UpdateRating(ctx, u.ID, e.ID+100, 4), ErrNotFound)

	b, err := repo.GetByUserAndEvent(ctx, u.ID, e.ID)
	require.NoError(t, err)
	require.NotNil(t, b.Rating)
	assert.Equal(t, 4, *b.Rating)
	require.NotNil(t, b.Event)
	assert.Equal(t, e.ID, b.Event.ID)
}

func TestBookingRepository_AverageRatingsSkipsUnratedAndZero(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewBookingRepository(db)
	e1 := seedEvent(t, db, "Delhi", 100)
	e2 := seedEvent(t, db, "Mumbai", 100)
	e3 := seedEvent(t, db, "Pune", 100)

	ratings := []struct {
		event  int64
		rating *int
	}{
		{e1.ID, intPtr(5)},
		{e1.ID, intPtr(4)},
		{e1.ID, intPtr(5)},
		{e1.ID, intPtr(0)},
		{e1.ID, nil},
		{e2.ID, intPtr(2)},
		{e3.ID, nil},
	}
	for i, r := range ratings {
		u := seedUser(t, db, fmt.Sprintf("rater%d@x.com", i))
		require.NoError(t, repo.CreateIfAbsent(ctx, newBooking(u.ID, r.event, r.rating)))
	}

	avgs, err := repo.AverageRatings(ctx)
	require.NoError(t, err)
	require.Len(t, avgs, 2)

	assert.Equal(t, e1.ID, avgs[0].EventID)
	assert.Equal(t, "4.67", avgs[0].AverageRating.StringFixed(2))
	assert.Equal(t, e2.ID, avgs[1].EventID)
	assert.True(t, decimal.NewFromInt(2).Equal(avgs[1].AverageRating))
}

func TestBookingRepository_CountsByLocation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewBookingRepository(db)
	delhi := seedEvent(t, db, "Delhi", 100)
	mumbai := seedEvent(t, db, "Mumbai", 100)
	seedEvent(t, db, "Pune", 100)

	for i, ev := range []int64{delhi.ID, delhi.ID, mumbai.ID} {
		u := seedUser(t, db, fmt.Sprintf("loc%d@x.com", i))
		require.NoError(t, repo.CreateIfAbsent(ctx, newBooking(u.ID, ev, nil)))
	}

	counts, err := repo.CountsByLocation(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.LocationCount{
		{Location: "Delhi", Count: 2},
		{Location: "Mumbai", Count: 1},
	}, counts)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrap: %w", errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email"`))))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}
