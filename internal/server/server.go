package server

import (
	"net/http"

	"eventbooking/internal/config"
	"eventbooking/internal/database"
	"eventbooking/internal/metrics"
	"eventbooking/internal/middleware"
	"eventbooking/internal/modules/auth"
	"eventbooking/internal/modules/booking"
	"eventbooking/internal/modules/event"
	"eventbooking/internal/modules/favorite"
	"eventbooking/internal/pkg/jwt"
	"eventbooking/internal/pkg/response"
	"eventbooking/internal/ratelimit"
	"eventbooking/internal/repository"
	"eventbooking/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Deps are the long lived resources the router is built on. Redis is
// optional; without it revocations and rate limits stay in process.
type Deps struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Log      zerolog.Logger
	Notifier auth.ResetNotifier
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Register()

	var (
		sessions auth.SessionStore
		limiter  ratelimit.Limiter
	)
	if deps.Redis != nil {
		sessions = session.NewRedisStore(deps.Redis)
		limiter = ratelimit.NewRedisLimiter(deps.Redis, cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)
	} else {
		sessions = session.NewMemoryStore()
		limiter = ratelimit.NewLocalLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)
	}

	notifier := deps.Notifier
	if notifier == nil {
		notifier = auth.NewLogResetNotifier(deps.Log)
	}

	userRepo := repository.NewUserRepository(deps.DB)
	eventRepo := repository.NewEventRepository(deps.DB)
	favoriteRepo := repository.NewFavoriteRepository(deps.DB)
	bookingRepo := repository.NewBookingRepository(deps.DB)

	tokens := jwt.New(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.SessionTTL, cfg.Auth.ResetTokenTTL)

	authService := auth.NewService(userRepo, tokens, sessions, notifier, cfg.Auth.BcryptCost)
	authHandler := auth.NewHandler(authService, auth.CookieConfig{
		Name:     cfg.Auth.CookieName,
		Path:     cfg.Auth.CookiePath,
		Domain:   cfg.Auth.CookieDomain,
		Secure:   cfg.Auth.CookieSecure,
		SameSite: auth.ParseSameSite(cfg.Auth.CookieSameSite),
	})

	eventService := event.NewService(eventRepo)
	eventHandler := event.NewHandler(eventService)

	favoriteHandler := favorite.NewHandler(favorite.NewService(favoriteRepo, eventService))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, eventService))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Log),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		if err := database.Ping(deps.DB); err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, response.CodeInternal, "Database unavailable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics",
		middleware.InternalTokenAuth(cfg.Metrics.Token, cfg.Metrics.AllowedIPs, deps.Log),
		gin.WrapH(metrics.Handler()))

	requireSession := middleware.SessionAuth(authService, cfg.Auth.CookieName)
	loginLimit := middleware.RateLimit(limiter, deps.Log)

	authHandler.RegisterRoutes(r, requireSession, loginLimit)
	eventHandler.RegisterRoutes(r)
	favoriteHandler.RegisterRoutes(r, requireSession)
	bookingHandler.RegisterRoutes(r, requireSession)

	return r
}
