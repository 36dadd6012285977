package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/courtside/booking-backend/internal/auth"
	"github.com/courtside/booking-backend/internal/booking"
	bookingHttp "github.com/courtside/booking-backend/internal/booking/http"
	"github.com/courtside/booking-backend/internal/court"
	courtHttp "github.com/courtside/booking-backend/internal/court/http"
	"github.com/courtside/booking-backend/internal/credit"
	creditHttp "github.com/courtside/booking-backend/internal/credit/http"
	"github.com/courtside/booking-backend/internal/metrics"
	"github.com/courtside/booking-backend/internal/notification"
	notificationHttp "github.com/courtside/booking-backend/internal/notification/http"
	"github.com/courtside/booking-backend/internal/user"
	userHttp "github.com/courtside/booking-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService         user.Service
	CourtService        court.Service
	CreditService       credit.Service
	BookingService      booking.Service
	NotificationService notification.Service
	JWTManager          *auth.JWTManager

	BookingRate  float64
	BookingBurst int
}

// NewRouter assembles middleware and registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"}
	r.Use(cors.New(corsConfig))

	metrics.Register()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	rateLimit := RateLimit(cfg.BookingRate, cfg.BookingBurst)

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	courtHandler := courtHttp.NewHandler(cfg.CourtService)
	creditHandler := creditHttp.NewHandler(cfg.CreditService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	notificationHandler := notificationHttp.NewHandler(cfg.NotificationService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		courtHttp.RegisterRoutes(v1, courtHandler, authMiddleware)
		creditHttp.RegisterRoutes(v1, creditHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, rateLimit)
		notificationHttp.RegisterRoutes(v1, notificationHandler, authMiddleware)
	}

	return r
}
