package seed

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"eventbooking/internal/domain"
	"eventbooking/internal/pkg/validator"
	"eventbooking/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Admin describes the bootstrap administrator. An empty Email skips it.
// The password follows the same rules as accounts created through the API.
type Admin struct {
	Name     string `validate:"omitempty,trimmed_len"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=8,max=72,has_upper"`
}

// Events is the fixed event catalog. Ids are stable so reseeding updates
// rows in place.
func Events() []domain.Event {
	return []domain.Event{
		{
			ID:          1,
			Title:       "Traditional Wedding Ceremony",
			Date:        "2025-07-28",
			Location:    "Lake Palace, Udaipur",
			Description: "A grand traditional Indian wedding with vibrant rituals, music, dance, and exquisite cuisine.",
			Price:       decimal.NewFromInt(150000),
			ImageURL:    "/wedding.jpg",
			Rating:      5,
		},
		{
			ID:          2,
			Title:       "Engagement Party",
			Date:        "2025-07-29",
			Location:    "Taj Mahal Palace, Mumbai",
			Description: "Celebrate the joyful union with close family and friends in a luxurious engagement party.",
			Price:       decimal.NewFromInt(75000),
			ImageURL:    "/engagement.jpg",
			Rating:      2,
		},
		{
			ID:          3,
			Title:       "Sangeet Night",
			Date:        "2025-07-30",
			Location:    "Royal Orchid Resort, Bangalore",
			Description: "An evening full of music, dance performances, and colorful celebrations before the wedding day.",
			Price:       decimal.NewFromInt(50000),
			ImageURL:    "/sangeet.webp",
			Rating:      3,
		},
		{
			ID:          4,
			Title:       "Mehndi Ceremony",
			Date:        "2025-07-31",
			Location:    "ITC Grand Chola, Chennai",
			Description: "Traditional Mehndi ceremony with henna application, folk songs, and vibrant décor.",
			Price:       decimal.NewFromInt(40000),
			ImageURL:    "/mehendi.jpeg",
			Rating:      4,
		},
		{
			ID:          5,
			Title:       "Reception Dinner",
			Date:        "2025-08-01",
			Location:    "The Oberoi, Delhi",
			Description: "A formal reception dinner to welcome guests with fine dining and cultural performances.",
			Price:       decimal.NewFromInt(120000),
			ImageURL:    "/reception.jpeg",
			Rating:      5,
		},
		{
			ID:          6,
			Title:       "Haldi Ceremony",
			Date:        "2025-08-02",
			Location:    "Leela Palace, Hyderabad",
			Description: "A joyful ceremony where turmeric paste is applied to bride and groom with fun rituals and music.",
			Price:       decimal.NewFromInt(35000),
			ImageURL:    "/haldi.jpg",
			Rating:      5,
		},
		{
			ID:          7,
			Title:       "Pre-Wedding Photoshoot",
			Date:        "2025-08-03",
			Location:    "Udaipur City Palace, Udaipur",
			Description: "A romantic pre-wedding photoshoot in picturesque locations celebrating the couple's journey.",
			Price:       decimal.NewFromInt(20000),
			ImageURL:    "/prewedding.webp",
			Rating:      1,
		},
	}
}

// Run upserts the event catalog and creates the admin when it does not exist
// yet. It is safe to run repeatedly.
func Run(ctx context.Context, db *gorm.DB, admin Admin, bcryptCost int, log zerolog.Logger) error {
	events := Events()
	if err := repository.NewEventRepository(db).Upsert(ctx, events); err != nil {
		return fmt.Errorf("seed events: %w", err)
	}
	log.Info().Int("count", len(events)).Msg("events seeded")

	if strings.TrimSpace(admin.Email) == "" {
		log.Info().Msg("ADMIN_EMAIL not set, skipping admin user")
		return nil
	}
	return seedAdmin(ctx, repository.NewUserRepository(db), admin, bcryptCost, log)
}

func seedAdmin(ctx context.Context, users *repository.UserRepository, admin Admin, bcryptCost int, log zerolog.Logger) error {
	if invalid := validator.Validate(admin); invalid != nil {
		fields := make([]string, 0, len(invalid))
		for field, rule := range invalid {
			fields = append(fields, field+" ("+rule+")")
		}
		sort.Strings(fields)
		return fmt.Errorf("invalid admin settings: %s", strings.Join(fields, ", "))
	}

	exists, err := users.ExistsByEmail(ctx, admin.Email)
	if err != nil {
		return fmt.Errorf("check admin: %w", err)
	}
	if exists {
		log.Info().Str("email", admin.Email).Msg("admin already present")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	name := strings.TrimSpace(admin.Name)
	if name == "" {
		name = "Administrator"
	}
	u := &domain.User{
		Name:         name,
		Email:        admin.Email,
		Role:         domain.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := users.Create(ctx, u); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Info().Str("email", u.Email).Int64("user_id", u.ID).Msg("admin created")
	return nil
}
