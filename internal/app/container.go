package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/courtside/booking-backend/internal/api"
	"github.com/courtside/booking-backend/internal/auth"
	"github.com/courtside/booking-backend/internal/booking"
	"github.com/courtside/booking-backend/internal/court"
	"github.com/courtside/booking-backend/internal/credit"
	"github.com/courtside/booking-backend/internal/notification"
	"github.com/courtside/booking-backend/internal/notify"
	"github.com/courtside/booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       zerolog.Logger

	JWTSecret  string
	JWTTTL     time.Duration
	BcryptCost int

	StartingCredits int64

	// Dispatcher delivers lifecycle events to the push pipeline. Leave nil
	// to only write in-app inbox rows and log.
	Dispatcher notify.Dispatcher

	// Redis enables the court read cache when non-nil.
	Redis         *redis.Client
	CourtCacheTTL time.Duration

	BookingRate  float64
	BookingBurst int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Credit ledger
	creditRepo := credit.NewPgxRepository(cfg.DBPool)
	creditService := credit.NewService(creditRepo)

	// User module; the ledger records the starting grant on registration
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, creditService, cfg.StartingCredits)

	// Court module, optionally fronted by the Redis cache
	courtRepo := court.NewPgxRepository(cfg.DBPool)
	if cfg.Redis != nil {
		courtRepo = court.NewCachedRepository(courtRepo, cfg.Redis, cfg.CourtCacheTTL, cfg.Logger)
	}
	courtService := court.NewService(courtRepo, court.NewPgxPackageRepository(cfg.DBPool))

	// Notification inbox + dispatcher fan-out
	notificationRepo := notification.NewPgxRepository(cfg.DBPool)
	notificationService := notification.NewService(notificationRepo)

	dispatchers := notify.Fanout{notification.NewInboxDispatcher(notificationRepo)}
	if cfg.Dispatcher != nil {
		dispatchers = append(dispatchers, cfg.Dispatcher)
	} else {
		dispatchers = append(dispatchers, notify.NewLogDispatcher(cfg.Logger))
	}

	// Booking lifecycle manager
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, courtService, creditService, dispatchers, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		CourtService:        courtService,
		CreditService:       creditService,
		BookingService:      bookingService,
		NotificationService: notificationService,
		JWTManager:          jwtManager,
		BookingRate:         cfg.BookingRate,
		BookingBurst:        cfg.BookingBurst,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		BookingService: bookingService,
	}
}
