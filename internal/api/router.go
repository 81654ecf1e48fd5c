package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/woiya/marketplace/internal/api/handler"
	"github.com/woiya/marketplace/internal/api/middleware"
	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
	infrahttp "github.com/woiya/marketplace/internal/infrastructure/http"
	"github.com/woiya/marketplace/internal/infrastructure/http/handlers"
)

// Services bundles the use cases the HTTP layer depends on.
type Services struct {
	Auth     ports.AuthService
	Jobs     ports.JobService
	Payments ports.PaymentService
	Messages ports.MessageService
	Ratings  ports.RatingService
	Accounts ports.AccountService
}

// Options tunes the router. The zero value is usable: no rate limit, no
// readiness checkers, default Prometheus registry.
type Options struct {
	Logger zerolog.Logger
	// AuthRateLimit is the per-IP request rate allowed on /api/auth, in requests per second.
	AuthRateLimit float64
	Checkers      []handlers.Checker
	// Registry receives the HTTP request metrics and backs /metrics. Nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Logger))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:                 "woiya",
		Subsystem:                 "http",
		Registerer:                registerer,
		DoNotUseRequestPathFor404: true,
	}))

	// --- Operational routes (no auth required) ---
	infrahttp.RegisterOperational(e, gatherer, opts.Checkers...)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	accountHandler := handler.NewAccountHandler(svc.Accounts)
	jobHandler := handler.NewJobHandler(svc.Jobs)
	paymentHandler := handler.NewPaymentHandler(svc.Payments)
	messageHandler := handler.NewMessageHandler(svc.Messages)
	ratingHandler := handler.NewRatingHandler(svc.Ratings)

	api := e.Group("/api")

	// --- Auth routes, rate limited per client IP ---
	authGroup := api.Group("/auth")
	if opts.AuthRateLimit > 0 {
		authGroup.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStore(rate.Limit(opts.AuthRateLimit))))
	}
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	// Payment confirmation is the gateway's return hook and carries no token.
	api.POST("/payments/:id/confirm", paymentHandler.Confirm)

	// --- Protected routes ---
	protected := api.Group("", middleware.Auth(svc.Auth))

	protected.GET("/user/profile", accountHandler.Profile)
	protected.GET("/wallet", accountHandler.Wallet)
	protected.GET("/dashboard/stats", accountHandler.Dashboard)

	protected.POST("/jobs", jobHandler.Create, middleware.RBACWithError(domain.ErrSeekerOnly, domain.RoleSeeker))
	protected.GET("/jobs", jobHandler.List)
	protected.GET("/jobs/:id", jobHandler.Get)
	protected.POST("/jobs/:id/bids", jobHandler.PlaceBid, middleware.RBACWithError(domain.ErrProviderOnly, domain.RoleProvider))
	protected.POST("/jobs/:id/select-bid/:bid_id", jobHandler.SelectBid, middleware.RBACWithError(domain.ErrNotJobCreator, domain.RoleSeeker))

	protected.POST("/payments/create", paymentHandler.Create, middleware.RBACWithError(domain.ErrNotPaymentCreator, domain.RoleSeeker))
	protected.POST("/payments/:id/release", paymentHandler.Release)

	protected.POST("/messages", messageHandler.Send)
	protected.GET("/messages/:other_user_id", messageHandler.Conversation)

	protected.POST("/ratings", ratingHandler.Submit)

	return e
}
