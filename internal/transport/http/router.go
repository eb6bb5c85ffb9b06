package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig bundles everything the HTTP surface depends on. Handlers
// see the services through narrow interfaces so tests can swap in fakes.
type RouterConfig struct {
	Booking      bookingService
	Events       eventsService
	Availability availabilityService
	Slots        slotLister
	Auth         authService
	Users        usersService

	Log            *slog.Logger
	RequestTimeout time.Duration
	AllowedOrigins []string
}

// NewRouter wires middleware, handlers and routes into a gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestTimeout(cfg.RequestTimeout))

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	schedules := NewSchedulesHandler(cfg.Booking, log)
	authH := NewAuthHandler(cfg.Auth, log)
	usersH := NewUsersHandler(cfg.Users, log)
	eventsH := NewEventsHandler(cfg.Events, cfg.Slots, log)
	availabilitiesH := NewAvailabilitiesHandler(cfg.Availability, log)

	api := r.Group("/api")

	api.POST("/auth/login", authH.Login)

	// Public booking surface: clients hold only the serial.
	api.POST("/schedules", schedules.Create)
	api.GET("/schedules/:serial", schedules.Show)
	api.PUT("/schedules/:serial", schedules.Update)
	api.POST("/schedules/:serial/cancel", schedules.Cancel)

	authed := api.Group("")
	authed.Use(RequireAuth(cfg.Auth))

	authed.POST("/auth/logout", authH.Logout)
	authed.POST("/auth/refresh", authH.Refresh)

	authed.GET("/user/profile", usersH.Profile)
	authed.GET("/user/preference", usersH.Preference)
	authed.PUT("/user/preference", usersH.SetPreference)

	authed.POST("/events", eventsH.Create)
	authed.GET("/events", eventsH.List)
	authed.GET("/events/:id", eventsH.Show)
	authed.PUT("/events/:id", eventsH.Update)
	authed.DELETE("/events/:id", eventsH.Delete)
	authed.GET("/events/:id/slots", eventsH.Slots)

	authed.POST("/availabilities", availabilitiesH.Create)
	authed.GET("/availabilities", availabilitiesH.List)
	authed.GET("/availabilities/:id", availabilitiesH.Show)
	authed.PUT("/availabilities/:id", availabilitiesH.Update)
	authed.DELETE("/availabilities/:id", availabilitiesH.Delete)

	return r
}
