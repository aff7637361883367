package database

import (
	"testing"

	"eventbooking/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestConnect_SQLiteMigrates(t *testing.T) {
	db, err := Connect("file::memory:", Options{LogLevel: logger.Silent}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, Ping(db))

	for _, table := range []string{"users", "events", "favorites", "bookings"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&domain.Booking{}, "idx_bookings_user_event"))
	assert.True(t, db.Migrator().HasIndex(&domain.Favorite{}, "idx_favorites_user_event"))
}

func TestBookingUniqueIndex(t *testing.T) {
	db, err := Connect("file::memory:", Options{LogLevel: logger.Silent}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	user := domain.User{Name: "A", Email: "a@x.com", Role: domain.RoleUser, PasswordHash: "x"}
	event := domain.Event{Title: "Gala", Date: "2025-07-28", Location: "Udaipur", Price: decimal.NewFromInt(500)}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&event).Error)

	newBooking := func() *domain.Booking {
		return &domain.Booking{
			UserID: &user.ID, EventID: &event.ID, Quantity: 1,
			PricePerTicket: event.Price, TotalPrice: event.Price,
		}
	}
	require.NoError(t, db.Create(newBooking()).Error)
	assert.Error(t, db.Create(newBooking()).Error)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_pragma=foreign_keys(1)", sqliteDSN("file::memory:"))
	assert.Equal(t, "app.db?cache=shared&_pragma=foreign_keys(1)", sqliteDSN("app.db?cache=shared"))
	assert.Equal(t, "app.db?_pragma=foreign_keys(0)", sqliteDSN("app.db?_pragma=foreign_keys(0)"))
}

func TestConnect_SQLiteEnforcesForeignKeys(t *testing.T) {
	db, err := Connect("file::memory:", Options{LogLevel: logger.Silent}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)

	missing := int64(404)
	err = db.Create(&domain.Favorite{UserID: &missing, EventID: &missing}).Error
	assert.Error(t, err)
}

func TestIsPostgres(t *testing.T) {
	assert.True(t, IsPostgres("postgres://u:p@localhost/db"))
	assert.True(t, IsPostgres("postgresql://localhost/db"))
	assert.False(t, IsPostgres("file::memory:"))
}
