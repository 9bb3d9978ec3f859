package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/invitation-backend/api/controllers"
	"github.com/angelmondragon/invitation-backend/api/middleware"
	"github.com/angelmondragon/invitation-backend/internal/admin"
	"github.com/angelmondragon/invitation-backend/internal/eligibility"
	"github.com/angelmondragon/invitation-backend/internal/gifts"
	"github.com/angelmondragon/invitation-backend/internal/messages"
	"github.com/angelmondragon/invitation-backend/internal/rsvp"
	"github.com/angelmondragon/invitation-backend/pkg/config"
	"github.com/angelmondragon/invitation-backend/pkg/logger"
	"github.com/angelmondragon/invitation-backend/pkg/metrics"
	"github.com/angelmondragon/invitation-backend/pkg/redis"
	"github.com/angelmondragon/invitation-backend/pkg/sheets"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	store sheets.Pinger,
	redisClient *redis.Client,
	giftService gifts.Service,
	rsvpService rsvp.Service,
	messageService messages.Service,
	eligibilityService eligibility.Service,
	adminService admin.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(httpMetrics),
	)

	// A nil *redis.Client must reach the middleware as a nil interface.
	var (
		limiter     redis.RateLimiter
		idempotency redis.IdempotencyStore
	)
	checks := []controllers.ReadinessCheck{}
	if store != nil {
		checks = append(checks, controllers.ReadinessCheck{Name: "store", Ping: store.Ping})
	}
	if redisClient != nil {
		limiter = redisClient
		idempotency = redisClient
		checks = append(checks, controllers.ReadinessCheck{Name: "redis", Ping: redisClient.Ping})
	}

	writePolicy := middleware.NewRateLimitPolicy("write", cfg.RateLimit.Window, cfg.RateLimit.WriteLimit)
	adminPolicy := middleware.NewRateLimitPolicy("admin", cfg.RateLimit.Window, cfg.RateLimit.AdminLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, checks...))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/gifts", controllers.GiftList(giftService, logg))
		r.Get("/rsvp-names", controllers.RSVPNames(eligibilityService, logg))
		r.Get("/messages", controllers.MessageList(messageService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(writePolicy, limiter, logg))
			r.Use(middleware.Idempotency(idempotency, cfg.Idempotency.TTL, logg))

			r.Post("/gifts/claim", controllers.GiftClaim(giftService, logg))
			r.Post("/gifts/unclaim", controllers.GiftUnclaim(giftService, logg))
			r.Post("/messages", controllers.MessageCreate(messageService, logg))
			r.Post("/rsvp", controllers.RSVPCreate(rsvpService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(adminPolicy, limiter, logg))
			r.Use(middleware.AdminToken(cfg.Admin.Password, logg))

			r.Get("/admin/{tab}", controllers.AdminRawTab(adminService, logg))
		})
	})

	return r
}
