package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"booking-platform/internal/domain/user"
	"booking-platform/internal/handler/api"
	"booking-platform/internal/handler/middleware"
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/pkg/metrics"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups the API handlers mounted under /api.
type Handlers struct {
	Auth        *api.AuthHandler
	Business    *api.BusinessHandler
	Service     *api.ServiceHandler
	Reservation *api.ReservationHandler
}

// Observability carries the request logger and the collectors exposed on /metrics.
type Observability struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, obs Observability, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, obs)
	setupRoutes(engine, cfg, h, obs, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, obs Observability) {
	logger := obs.Logger
	if logger == nil {
		logger = slog.Default()
	}
	// request id is assigned before recovery so panics are logged with it
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	if obs.Metrics != nil {
		engine.Use(middleware.PrometheusMiddleware(obs.Metrics))
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, obs Observability, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)
	if obs.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(obs.Gatherer, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := authMiddleware.RequireAuth()
	optionalAuth := authMiddleware.OptionalAuth()
	ownerOrAdmin := authMiddleware.RequireRoleAtLeast(user.RoleOwner)
	adminOnly := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)

	apiGroup := engine.Group("/api")
	if cfg.RateLimit.Enabled {
		apiGroup.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware())
	}
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/register", Handler: h.Auth.Register},
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(requireAuth)
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		businesses := apiGroup.Group("/businesses")
		{
			addRoutes(businesses, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Business.Create, Mw: []gin.HandlerFunc{requireAuth, ownerOrAdmin}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Business.Get},
				{Method: http.MethodPut, Path: "/:id/hours", Handler: h.Business.ReplaceHours, Mw: []gin.HandlerFunc{requireAuth, ownerOrAdmin}},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Business.Availability},
				{Method: http.MethodGet, Path: "/:id/reservations", Handler: h.Business.ListReservations, Mw: []gin.HandlerFunc{requireAuth, ownerOrAdmin}},
				{Method: http.MethodPost, Path: "/:id/services", Handler: h.Service.Create, Mw: []gin.HandlerFunc{requireAuth, ownerOrAdmin}},
				{Method: http.MethodGet, Path: "/:id/services", Handler: h.Service.ListPublic},
			})
		}

		services := apiGroup.Group("/services")
		{
			addRoutes(services, []route{
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Service.Delete, Mw: []gin.HandlerFunc{requireAuth, ownerOrAdmin}},
			})
		}

		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Reservation.Create, Mw: []gin.HandlerFunc{optionalAuth}},
				{Method: http.MethodGet, Path: "", Handler: h.Reservation.ListByGuestEmail, Mw: []gin.HandlerFunc{requireAuth, adminOnly}},
				{Method: http.MethodGet, Path: "/me", Handler: h.Reservation.ListMine, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reservation.Get, Mw: []gin.HandlerFunc{optionalAuth}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Reservation.ChangeStatus, Mw: []gin.HandlerFunc{requireAuth}},
				{Method: http.MethodPatch, Path: "/:id/payment", Handler: h.Reservation.RecordPayment, Mw: []gin.HandlerFunc{requireAuth}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
